package repository

import (
	"context"
	"testing"

	"pdd_wms_v1/internal/model"
)

func seedDelivery(t *testing.T, repo DeliveryRepository, merchant, product, date string) *model.DailyDelivery {
	d := &model.DailyDelivery{
		MerchantName: merchant,
		ProductName:  product,
		DeliveryDate: date,
	}
	if err := repo.Create(context.Background(), d); err != nil {
		t.Fatalf("写入发货记录失败: %v", err)
	}
	return d
}

func TestDeliveryRepository_ExistingKeys(t *testing.T) {
	db := setupQueryTestDB(t)
	repo := NewDeliveryRepository(db)
	ctx := context.Background()

	seedDelivery(t, repo, "商家A", "商品1", "2026-08-28")
	seedDelivery(t, repo, "商家B", "商品2", "2026-08-28")

	keys := []DeliveryKey{
		{MerchantName: "商家A", ProductName: "商品1", DeliveryDate: "2026-08-28"},
		{MerchantName: "商家A", ProductName: "商品1", DeliveryDate: "2026-08-29"}, // 日期不同，不算重复
		{MerchantName: "商家C", ProductName: "商品3", DeliveryDate: "2026-08-28"},
		{MerchantName: "商家B", ProductName: "商品2", DeliveryDate: "2026-08-28"},
	}

	existing, err := repo.ExistingKeys(ctx, keys)
	if err != nil {
		t.Fatalf("查询去重键失败: %v", err)
	}

	want := []string{"商家A|商品1|2026-08-28", "商家B|商品2|2026-08-28"}
	if len(existing) != len(want) {
		t.Fatalf("命中 %d 个键, want %d", len(existing), len(want))
	}
	// 返回顺序跟随入参顺序
	for i := range want {
		if existing[i] != want[i] {
			t.Errorf("existing[%d] = %s, want %s", i, existing[i], want[i])
		}
	}
}

func TestDeliveryRepository_ExistingKeysEmptyInput(t *testing.T) {
	db := setupQueryTestDB(t)
	repo := NewDeliveryRepository(db)

	existing, err := repo.ExistingKeys(context.Background(), nil)
	if err != nil {
		t.Fatalf("空入参查询失败: %v", err)
	}
	if existing == nil || len(existing) != 0 {
		t.Errorf("空入参应返回空切片, got %v", existing)
	}
}

func TestDeliveryRepository_MarkDistributedOnlyOnce(t *testing.T) {
	db := setupQueryTestDB(t)
	repo := NewDeliveryRepository(db)
	ctx := context.Background()

	d := seedDelivery(t, repo, "商家A", "商品1", "2026-08-28")

	ok, err := repo.MarkDistributed(ctx, d.ID, model.StringList{"ZS1"})
	if err != nil {
		t.Fatalf("首次配货失败: %v", err)
	}
	if !ok {
		t.Fatal("首次配货应成功")
	}

	// 状态已不是待配货，条件更新不命中任何行
	ok, err = repo.MarkDistributed(ctx, d.ID, model.StringList{"ZS2"})
	if err != nil {
		t.Fatalf("重复配货执行失败: %v", err)
	}
	if ok {
		t.Error("重复配货应返回未命中")
	}

	got, err := repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("回查失败: %v", err)
	}
	if got.DistributionStatus != model.DistributionDone {
		t.Errorf("distributionStatus = %d, want %d", got.DistributionStatus, model.DistributionDone)
	}
	if len(got.Operators) != 1 || got.Operators[0] != "ZS1" {
		t.Errorf("operators = %v, want [ZS1]", got.Operators)
	}
}

func TestDeliveryRepository_MarkWarehousedRequiresDistributed(t *testing.T) {
	db := setupQueryTestDB(t)
	repo := NewDeliveryRepository(db)
	ctx := context.Background()

	d := seedDelivery(t, repo, "商家A", "商品1", "2026-08-28")

	// 未配货直接入库不允许
	ok, err := repo.MarkWarehoused(ctx, d.ID, model.StringList{"ZS1"})
	if err != nil {
		t.Fatalf("入库执行失败: %v", err)
	}
	if ok {
		t.Error("未配货的记录不应入库成功")
	}

	if _, err := repo.MarkDistributed(ctx, d.ID, model.StringList{"ZS1"}); err != nil {
		t.Fatalf("配货失败: %v", err)
	}
	ok, err = repo.MarkWarehoused(ctx, d.ID, model.StringList{"ZS1", "LS1"})
	if err != nil {
		t.Fatalf("入库执行失败: %v", err)
	}
	if !ok {
		t.Fatal("已配货的记录入库应成功")
	}
}

func TestDeliveryRepository_PendingCounts(t *testing.T) {
	db := setupQueryTestDB(t)
	repo := NewDeliveryRepository(db)
	ctx := context.Background()

	date := "2026-08-28"
	d1 := seedDelivery(t, repo, "商家A", "商品1", date)
	d2 := seedDelivery(t, repo, "商家A", "商品2", date)
	seedDelivery(t, repo, "商家A", "商品3", date)
	seedDelivery(t, repo, "商家A", "商品1", "2026-08-27") // 其他日期不计入

	repo.MarkDistributed(ctx, d1.ID, model.StringList{"ZS1"})
	repo.MarkDistributed(ctx, d2.ID, model.StringList{"ZS1"})
	repo.MarkWarehoused(ctx, d1.ID, model.StringList{"ZS1"})

	pick, err := repo.CountPendingPick(ctx, date)
	if err != nil {
		t.Fatalf("统计待配货失败: %v", err)
	}
	if pick != 1 {
		t.Errorf("待配货 = %d, want 1", pick)
	}

	stock, err := repo.CountPendingStock(ctx, date)
	if err != nil {
		t.Fatalf("统计待入库失败: %v", err)
	}
	if stock != 1 {
		t.Errorf("待入库 = %d, want 1", stock)
	}
}
