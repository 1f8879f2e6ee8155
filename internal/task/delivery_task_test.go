package task

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
	"pdd_wms_v1/internal/service"
)

type gatewayCall struct {
	GroupName     string   `json:"groupName"`
	Content       string   `json:"content"`
	MentionedList []string `json:"mentionedList"`
}

func TestDeliveryReminder_Run(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(model.Models()...); err != nil {
		t.Fatalf("建表失败: %v", err)
	}

	var mu sync.Mutex
	var calls []gatewayCall
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var call gatewayCall
		if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
			t.Errorf("解析网关请求失败: %v", err)
		}
		mu.Lock()
		calls = append(calls, call)
		mu.Unlock()
	}))
	defer server.Close()

	merchantRepo := repository.NewMerchantRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	returnRepo := repository.NewReturnRepository(db)
	workflowSvc := service.NewWorkflowService(deliveryRepo, returnRepo)
	notifySvc := service.NewNotifyService(server.URL, true)

	ctx := context.Background()

	// 开通知的商家有两条未配货，不开通知的商家不提醒
	merchantRepo.Create(ctx, &model.Merchant{
		Name: "要通知", GroupName: "通知群", SendMessage: true,
		MentionList: model.StringList{"@张三"},
		Warehouse1:  "a", Warehouse2: "b", DefaultWarehouse: "a",
	})
	merchantRepo.Create(ctx, &model.Merchant{
		Name: "不通知", GroupName: "静默群", SendMessage: false,
		Warehouse1: "a", Warehouse2: "b", DefaultWarehouse: "a",
	})

	today := time.Now().Format("2006-01-02")
	for _, d := range []model.DailyDelivery{
		{MerchantName: "要通知", ProductName: "商品1", DeliveryDate: today},
		{MerchantName: "要通知", ProductName: "商品2", DeliveryDate: today},
		{MerchantName: "不通知", ProductName: "商品3", DeliveryDate: today},
	} {
		delivery := d
		if err := deliveryRepo.Create(ctx, &delivery); err != nil {
			t.Fatalf("写入发货记录失败: %v", err)
		}
	}

	reminder := NewDeliveryReminder("0 0 18 * * *", workflowSvc, notifySvc, merchantRepo)
	reminder.Run()

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 {
		t.Fatalf("网关收到 %d 次调用, want 1", len(calls))
	}
	if calls[0].GroupName != "通知群" {
		t.Errorf("群名 = %s, want 通知群", calls[0].GroupName)
	}
	if len(calls[0].MentionedList) != 1 || calls[0].MentionedList[0] != "@张三" {
		t.Errorf("mentionedList = %v", calls[0].MentionedList)
	}
}

func TestDeliveryReminder_NoPendingNoCalls(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(model.Models()...); err != nil {
		t.Fatalf("建表失败: %v", err)
	}

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	merchantRepo := repository.NewMerchantRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	returnRepo := repository.NewReturnRepository(db)
	workflowSvc := service.NewWorkflowService(deliveryRepo, returnRepo)
	notifySvc := service.NewNotifyService(server.URL, true)

	reminder := NewDeliveryReminder("0 0 18 * * *", workflowSvc, notifySvc, merchantRepo)
	reminder.Run()

	if calls != 0 {
		t.Errorf("无待配货时仍发送 %d 次", calls)
	}
}

func TestDeliveryReminder_BadCronSpec(t *testing.T) {
	reminder := NewDeliveryReminder("not-a-cron", nil, nil, nil)
	if err := reminder.Start(); err == nil {
		t.Fatal("非法 cron 表达式应报错")
	}
}
