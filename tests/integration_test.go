package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pdd_wms_v1/internal/controller"
	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
	"pdd_wms_v1/internal/router"
	"pdd_wms_v1/internal/service"
	"pdd_wms_v1/pkg/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试环境 ====================

const testOpenKey = "open-key-123"

type testEnv struct {
	engine *gin.Engine
	db     *gorm.DB
	repos  struct {
		employee repository.EmployeeRepository
		delivery repository.DeliveryRepository
		setting  repository.SettingRepository
	}
}

func setupEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	mgr := database.NewManager(db, model.MigrationSteps())
	if err := mgr.Init(); err != nil {
		t.Fatalf("初始化表结构失败: %v", err)
	}

	merchantRepo := repository.NewMerchantRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewSalesOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	returnRepo := repository.NewReturnRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	authSvc := service.NewAuthService(userRepo, employeeRepo, "integration-secret", time.Hour)
	merchantSvc := service.NewMerchantService(merchantRepo, productRepo)
	productSvc := service.NewProductService(productRepo, merchantRepo)
	orderSvc := service.NewSalesOrderService(orderRepo)
	userSvc := service.NewUserService(userRepo)
	employeeSvc := service.NewEmployeeService(employeeRepo)
	workflowSvc := service.NewWorkflowService(deliveryRepo, returnRepo)
	settingSvc := service.NewSettingService(settingRepo)

	ctls := &router.Controllers{
		Auth:     controller.NewAuthController(authSvc),
		Merchant: controller.NewMerchantController(merchantSvc),
		Product:  controller.NewProductController(productSvc),
		User:     controller.NewUserController(userSvc),
		Employee: controller.NewEmployeeController(employeeSvc),
		Delivery: controller.NewDeliveryController(workflowSvc),
		Return:   controller.NewReturnController(workflowSvc),
		Order:    controller.NewOrderController(orderSvc),
		Setting:  controller.NewSettingController(settingSvc),
		Open:     controller.NewOpenController(productSvc, merchantSvc, orderSvc),
	}

	engine := gin.New()
	router.Setup(engine, ctls, authSvc, settingRepo, testOpenKey)

	// 预置后台账号
	if _, err := userSvc.Create(context.Background(), "admin", "admin123", "管理员"); err != nil {
		t.Fatalf("预置账号失败: %v", err)
	}

	env := &testEnv{engine: engine, db: db}
	env.repos.employee = employeeRepo
	env.repos.delivery = deliveryRepo
	env.repos.setting = settingRepo
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("编码请求体失败: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v body=%s", err, w.Body.String())
	}
	var data map[string]interface{}
	if len(resp.Data) > 0 && string(resp.Data) != "null" {
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			t.Fatalf("解析 data 失败: %v data=%s", err, resp.Data)
		}
	}
	return data
}

func (e *testEnv) adminToken(t *testing.T) string {
	w := e.do(t, http.MethodPost, "/api/auth/login", gin.H{"username": "admin", "password": "admin123"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("管理员登录失败: %d %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("登录响应缺少 Token")
	}
	return token
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// ==================== 集成场景 ====================

func TestIntegration_MerchantProductFlow(t *testing.T) {
	env := setupEnv(t)
	auth := bearer(env.adminToken(t))

	// 未携带 Token 的后台请求被拒
	if w := env.do(t, http.MethodGet, "/api/merchants", nil, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("无 Token 请求状态 = %d, want 401", w.Code)
	}

	w := env.do(t, http.MethodPost, "/api/merchants", gin.H{
		"name": "测试商家", "warehouse1": "一号仓", "warehouse2": "二号仓",
		"defaultWarehouse": "一号仓", "groupName": "测试群", "mallId": "mall-1",
	}, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("创建商家失败: %d %s", w.Code, w.Body.String())
	}
	merchantID, _ := decodeData(t, w)["id"].(string)
	if merchantID == "" {
		t.Fatal("创建商家响应缺少 id")
	}

	// 缺仓库信息的创建被拒
	w = env.do(t, http.MethodPost, "/api/merchants", gin.H{"name": "残缺商家"}, auth)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("残缺商家创建状态 = %d, want 400", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/products", gin.H{
		"name": "测试商品", "goodsId": "g-1", "merchantId": merchantID,
	}, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("创建商品失败: %d %s", w.Code, w.Body.String())
	}

	// 名下有商品时删除商家冲突
	w = env.do(t, http.MethodDelete, "/api/merchants/"+merchantID, nil, auth)
	if w.Code != http.StatusConflict {
		t.Fatalf("删除有商品的商家状态 = %d, want 409", w.Code)
	}

	// 名称过滤命中
	w = env.do(t, http.MethodGet, "/api/merchants?name=测试", nil, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("筛选商家失败: %d", w.Code)
	}
	if total := decodeData(t, w)["total"].(float64); total != 1 {
		t.Errorf("筛选 total = %v, want 1", total)
	}
}

func TestIntegration_EmployeeDeliveryFlow(t *testing.T) {
	env := setupEnv(t)
	auth := bearer(env.adminToken(t))

	// 注册员工并用登录码登录
	w := env.do(t, http.MethodPost, "/api/employee/register", gin.H{
		"name": "张三", "phone": "13800000001", "password": "secret123",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("员工注册失败: %d %s", w.Code, w.Body.String())
	}
	regData := decodeData(t, w)
	loginCode, _ := regData["loginCode"].(string)
	if regData["employeeNumber"] != "ZS1" {
		t.Errorf("工号 = %v, want ZS1", regData["employeeNumber"])
	}

	// 后台批量录入今日发货
	today := time.Now().Format("2006-01-02")
	w = env.do(t, http.MethodPost, "/api/deliveries/batch", gin.H{
		"deliveries": []gin.H{
			{"merchantName": "测试商家", "productName": "商品1", "deliveryDate": today},
			{"merchantName": "测试商家", "productName": "商品1", "deliveryDate": today}, // 批内重复
		},
	}, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("批量录入失败: %d %s", w.Code, w.Body.String())
	}
	if created := decodeData(t, w)["created"].(float64); created != 1 {
		t.Errorf("created = %v, want 1", created)
	}

	// 去重查询只回报已存在的键，按入参顺序
	w = env.do(t, http.MethodPost, "/api/deliveries/check-duplicates", gin.H{
		"keys": []gin.H{
			{"merchantName": "测试商家", "productName": "商品1", "deliveryDate": today},
			{"merchantName": "测试商家", "productName": "商品9", "deliveryDate": today},
		},
	}, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("去重查询失败: %d %s", w.Code, w.Body.String())
	}
	dupKeys, _ := decodeData(t, w)["duplicateKeys"].([]any)
	if len(dupKeys) != 1 || dupKeys[0] != "测试商家|商品1|"+today {
		t.Errorf("duplicateKeys = %v", dupKeys)
	}

	// 员工用登录码头访问待配货列表
	codeHeader := map[string]string{"X-Login-Code": loginCode}
	w = env.do(t, http.MethodGet, "/api/deliveries/pending", nil, codeHeader)
	if w.Code != http.StatusOK {
		t.Fatalf("待配货列表失败: %d %s", w.Code, w.Body.String())
	}
	var listResp struct {
		Data []model.DailyDelivery `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("解析列表失败: %v", err)
	}
	if len(listResp.Data) != 1 {
		t.Fatalf("待配货 %d 条, want 1", len(listResp.Data))
	}
	deliveryID := listResp.Data[0].ID

	// 确认配货，重复确认得 409
	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/deliveries/%s/pick", deliveryID), nil, codeHeader)
	if w.Code != http.StatusOK {
		t.Fatalf("确认配货失败: %d %s", w.Code, w.Body.String())
	}
	w = env.do(t, http.MethodPost, fmt.Sprintf("/api/deliveries/%s/pick", deliveryID), nil, codeHeader)
	if w.Code != http.StatusConflict {
		t.Fatalf("重复配货状态 = %d, want 409", w.Code)
	}

	// 非法登录码头是参数错误
	w = env.do(t, http.MethodGet, "/api/deliveries/pending", nil, map[string]string{"X-Login-Code": "bad"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("非法登录码状态 = %d, want 400", w.Code)
	}

	// 看板
	w = env.do(t, http.MethodGet, "/api/deliveries/dashboard", nil, codeHeader)
	if w.Code != http.StatusOK {
		t.Fatalf("看板失败: %d", w.Code)
	}
	counts := decodeData(t, w)
	if counts["pendingPick"].(float64) != 0 || counts["pendingStock"].(float64) != 1 {
		t.Errorf("看板 = %v", counts)
	}
}

func TestIntegration_OpenAPIFlow(t *testing.T) {
	env := setupEnv(t)
	auth := bearer(env.adminToken(t))

	// 准备带店铺 ID 的商家和商品
	w := env.do(t, http.MethodPost, "/api/merchants", gin.H{
		"name": "测试商家", "warehouse1": "一号仓", "warehouse2": "二号仓",
		"defaultWarehouse": "一号仓", "groupName": "测试群", "mallId": "mall-1",
	}, auth)
	merchantID, _ := decodeData(t, w)["id"].(string)
	env.do(t, http.MethodPost, "/api/products", gin.H{
		"name": "测试商品", "goodsId": "g-1", "merchantId": merchantID,
	}, auth)

	// 无 Key 的对外请求被拒
	w = env.do(t, http.MethodGet, "/open/api/product?goodsId=g-1&mallId=mall-1", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("无 Key 状态 = %d, want 401", w.Code)
	}

	openKey := map[string]string{"X-Api-Key": testOpenKey}
	w = env.do(t, http.MethodGet, "/open/api/product?goodsId=g-1&mallId=mall-1", nil, openKey)
	if w.Code != http.StatusOK {
		t.Fatalf("对外查商品失败: %d %s", w.Code, w.Body.String())
	}
	if name := decodeData(t, w)["name"]; name != "测试商品" {
		t.Errorf("name = %v, want 测试商品", name)
	}

	// Cookie 回写走设置表里的 apiKey，未配置前一律拒绝
	w = env.do(t, http.MethodPut, "/open/api/merchant/cookie", gin.H{"mallId": "mall-1", "cookie": "s=1"}, openKey)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("未配置设置 Key 状态 = %d, want 401", w.Code)
	}

	// 后台配置 apiKey 后生效
	w = env.do(t, http.MethodPut, "/api/settings", gin.H{"apiKey": "setting-key"}, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("保存设置失败: %d %s", w.Code, w.Body.String())
	}
	w = env.do(t, http.MethodPut, "/open/api/merchant/cookie",
		gin.H{"mallId": "mall-1", "cookie": "s=1"},
		map[string]string{"X-Api-Key": "setting-key"})
	if w.Code != http.StatusOK {
		t.Fatalf("Cookie 回写失败: %d %s", w.Code, w.Body.String())
	}
	if cookie := decodeData(t, w)["cookie"]; cookie != "s=1" {
		t.Errorf("cookie = %v, want s=1", cookie)
	}

	// 只读商家列表不暴露 Cookie 等凭证字段
	w = env.do(t, http.MethodGet, "/open/api/merchants", nil, openKey)
	if w.Code != http.StatusOK {
		t.Fatalf("对外商家列表失败: %d %s", w.Code, w.Body.String())
	}
	items, _ := decodeData(t, w)["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("对外商家数 = %d, want 1", len(items))
	}
	item, _ := items[0].(map[string]any)
	if item["cookie"] != "" {
		t.Errorf("对外列表 cookie = %v, 应为空", item["cookie"])
	}
	if item["name"] != "测试商家" {
		t.Errorf("对外列表 name = %v, want 测试商家", item["name"])
	}
}
