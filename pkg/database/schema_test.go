package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ==================== 测试模型 ====================

type testItem struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:50"`
	Note string `gorm:"size:100"`
}

func (testItem) TableName() string { return "test_items" }

func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	return db
}

// ==================== 单元测试 ====================

func TestManager_InitIdempotent(t *testing.T) {
	db := openTestDB(t)

	runs := 0
	steps := []MigrationStep{
		{Name: "0001_counting", Run: func(db *gorm.DB) error {
			runs++
			return db.AutoMigrate(&testItem{})
		}},
	}

	mgr := NewManager(db, steps)
	if err := mgr.Init(); err != nil {
		t.Fatalf("首次初始化失败: %v", err)
	}
	if err := mgr.Init(); err != nil {
		t.Fatalf("二次初始化失败: %v", err)
	}
	if runs != 1 {
		t.Errorf("迁移步骤执行 %d 次, want 1", runs)
	}

	applied, err := mgr.Applied("0001_counting")
	if err != nil {
		t.Fatalf("查询迁移记录失败: %v", err)
	}
	if !applied {
		t.Error("迁移步骤应已记录")
	}
}

func TestManager_AppliedStepsSkippedAcrossInstances(t *testing.T) {
	db := openTestDB(t)

	runs := 0
	step := MigrationStep{Name: "0001_once", Run: func(db *gorm.DB) error {
		runs++
		return db.AutoMigrate(&testItem{})
	}}

	if err := NewManager(db, []MigrationStep{step}).Init(); err != nil {
		t.Fatalf("首次初始化失败: %v", err)
	}
	// 模拟进程重启：新实例面对同一个库
	if err := NewManager(db, []MigrationStep{step}).Init(); err != nil {
		t.Fatalf("重启后初始化失败: %v", err)
	}
	if runs != 1 {
		t.Errorf("已记录的步骤被重复执行, runs = %d", runs)
	}
}

func TestManager_AddColumnStep(t *testing.T) {
	db := openTestDB(t)

	// 先建一张缺 note 列的旧表
	if err := db.Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, name TEXT)").Error; err != nil {
		t.Fatalf("建旧表失败: %v", err)
	}

	mgr := NewManager(db, []MigrationStep{
		AddColumnStep("0002_item_note", &testItem{}, "Note"),
	})
	if err := mgr.Init(); err != nil {
		t.Fatalf("补列迁移失败: %v", err)
	}

	if !db.Migrator().HasColumn(&testItem{}, "note") {
		t.Error("note 列未补上")
	}

	// 列已存在时重复执行也不报错
	mgr2 := NewManager(db, []MigrationStep{
		AddColumnStep("0003_item_note_again", &testItem{}, "Note"),
	})
	if err := mgr2.Init(); err != nil {
		t.Errorf("已存在列的补列步骤应为无操作, err = %v", err)
	}
}

func TestManager_ImportOnce(t *testing.T) {
	db := openTestDB(t)

	mgr := NewManager(db, []MigrationStep{
		AutoMigrateStep("0001_base", &testItem{}),
	})
	if err := mgr.Init(); err != nil {
		t.Fatalf("初始化失败: %v", err)
	}

	imports := 0
	apply := func(tx *gorm.DB) error {
		imports++
		return tx.Create(&testItem{Name: "导入数据"}).Error
	}

	if err := mgr.ImportOnce("import:test-v1", apply); err != nil {
		t.Fatalf("首次导入失败: %v", err)
	}
	if err := mgr.ImportOnce("import:test-v1", apply); err != nil {
		t.Fatalf("二次导入失败: %v", err)
	}
	if imports != 1 {
		t.Errorf("导入执行 %d 次, want 1", imports)
	}

	var count int64
	db.Model(&testItem{}).Count(&count)
	if count != 1 {
		t.Errorf("导入数据 %d 条, want 1", count)
	}
}

func TestManager_ImportOnceRollsBackOnFailure(t *testing.T) {
	db := openTestDB(t)

	mgr := NewManager(db, []MigrationStep{
		AutoMigrateStep("0001_base", &testItem{}),
	})
	if err := mgr.Init(); err != nil {
		t.Fatalf("初始化失败: %v", err)
	}

	err := mgr.ImportOnce("import:broken-v1", func(tx *gorm.DB) error {
		if err := tx.Create(&testItem{Name: "部分数据"}).Error; err != nil {
			return err
		}
		return gorm.ErrInvalidData
	})
	if err == nil {
		t.Fatal("失败的导入应返回错误")
	}

	// 数据和标记都不应落库
	var count int64
	db.Model(&testItem{}).Count(&count)
	if count != 0 {
		t.Errorf("失败导入残留 %d 条数据", count)
	}
	applied, _ := mgr.Applied("import:broken-v1")
	if applied {
		t.Error("失败导入不应写入标记")
	}

	// 修好之后可以重新导入
	if err := mgr.ImportOnce("import:broken-v1", func(tx *gorm.DB) error {
		return tx.Create(&testItem{Name: "完整数据"}).Error
	}); err != nil {
		t.Fatalf("修复后导入失败: %v", err)
	}
	db.Model(&testItem{}).Count(&count)
	if count != 1 {
		t.Errorf("修复后导入 %d 条, want 1", count)
	}
}
