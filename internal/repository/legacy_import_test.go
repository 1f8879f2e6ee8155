package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/pkg/database"
)

func writeSnapshot(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入快照文件失败: %v", err)
	}
	return path
}

const sampleSnapshot = `{
	"merchants": [
		{"id": "m-1", "name": "旧商家", "warehouse1": "一号仓", "warehouse2": "二号仓", "defaultWarehouse": "一号仓", "groupName": "旧群"}
	],
	"users": [
		{"id": "u-1", "username": "admin", "displayName": "管理员", "isActive": true},
		{"id": "u-2", "username": "frozen", "displayName": "停用账号", "isActive": false}
	],
	"dailyDeliveries": [
		{"id": "d-1", "merchantName": "旧商家", "productName": "旧商品", "deliveryDate": "2026-01-01"}
	]
}`

func newImportManager(t *testing.T) *database.Manager {
	db := setupQueryTestDB(t)
	mgr := database.NewManager(db, model.MigrationSteps())
	if err := mgr.Init(); err != nil {
		t.Fatalf("初始化表结构失败: %v", err)
	}
	return mgr
}

func TestImportLegacySnapshot_ImportsOnce(t *testing.T) {
	mgr := newImportManager(t)
	path := writeSnapshot(t, sampleSnapshot)

	if err := ImportLegacySnapshot(mgr, path); err != nil {
		t.Fatalf("首次导入失败: %v", err)
	}
	// 文件还在，二次启动也不会重复导入
	if err := ImportLegacySnapshot(mgr, path); err != nil {
		t.Fatalf("二次导入失败: %v", err)
	}

	applied, err := mgr.Applied(LegacyImportMarker)
	if err != nil {
		t.Fatalf("查询导入标记失败: %v", err)
	}
	if !applied {
		t.Error("导入完成后应写入标记")
	}
}

func TestImportLegacySnapshot_PreservesIDs(t *testing.T) {
	db := setupQueryTestDB(t)
	mgr := database.NewManager(db, model.MigrationSteps())
	if err := mgr.Init(); err != nil {
		t.Fatalf("初始化表结构失败: %v", err)
	}
	path := writeSnapshot(t, sampleSnapshot)

	if err := ImportLegacySnapshot(mgr, path); err != nil {
		t.Fatalf("导入失败: %v", err)
	}

	merchant, err := NewMerchantRepository(db).GetByID(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("回查商家失败: %v", err)
	}
	// 旧库主键原样保留，不重新生成
	if merchant == nil || merchant.Name != "旧商家" {
		t.Fatalf("按旧主键查商家 = %+v, want 旧商家", merchant)
	}

	delivery, err := NewDeliveryRepository(db).GetByID(context.Background(), "d-1")
	if err != nil || delivery == nil {
		t.Fatalf("按旧主键查发货记录失败: %v %v", delivery, err)
	}

	// 快照里的停用标记原样落库，不被列默认值顶掉
	frozen, err := NewUserRepository(db).GetByID(context.Background(), "u-2")
	if err != nil || frozen == nil {
		t.Fatalf("按旧主键查账号失败: %v %v", frozen, err)
	}
	if frozen.IsActive == nil || *frozen.IsActive {
		t.Error("停用账号导入后仍为启用状态")
	}
}

func TestImportLegacySnapshot_MissingFileIsNoop(t *testing.T) {
	mgr := newImportManager(t)

	if err := ImportLegacySnapshot(mgr, filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Fatalf("文件缺失不应报错: %v", err)
	}

	applied, err := mgr.Applied(LegacyImportMarker)
	if err != nil {
		t.Fatalf("查询导入标记失败: %v", err)
	}
	// 不写标记，文件日后出现仍可导入
	if applied {
		t.Error("文件缺失时不应写入标记")
	}
}

func TestImportLegacySnapshot_SkipsNonEmptyTables(t *testing.T) {
	db := setupQueryTestDB(t)
	mgr := database.NewManager(db, model.MigrationSteps())
	if err := mgr.Init(); err != nil {
		t.Fatalf("初始化表结构失败: %v", err)
	}

	// 线上已有商家数据
	live := model.Merchant{Name: "线上商家", Warehouse1: "a", Warehouse2: "b", DefaultWarehouse: "a", GroupName: "g"}
	if err := db.Create(&live).Error; err != nil {
		t.Fatalf("写入线上数据失败: %v", err)
	}

	path := writeSnapshot(t, sampleSnapshot)
	if err := ImportLegacySnapshot(mgr, path); err != nil {
		t.Fatalf("导入失败: %v", err)
	}

	var merchantCount int64
	db.Model(&model.Merchant{}).Count(&merchantCount)
	if merchantCount != 1 {
		t.Errorf("非空的商家表被覆盖, count = %d, want 1", merchantCount)
	}

	// 空表照常导入
	var userCount int64
	db.Model(&model.SysUser{}).Count(&userCount)
	if userCount != 2 {
		t.Errorf("账号表导入 %d 条, want 2", userCount)
	}
}

func TestImportLegacySnapshot_InvalidJSON(t *testing.T) {
	mgr := newImportManager(t)
	path := writeSnapshot(t, "{not-json")

	if err := ImportLegacySnapshot(mgr, path); err == nil {
		t.Fatal("损坏的快照应报错")
	}
	applied, _ := mgr.Applied(LegacyImportMarker)
	if applied {
		t.Error("失败导入不应写入标记")
	}
}
