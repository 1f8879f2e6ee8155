package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pdd_wms_v1/internal/config"
	"pdd_wms_v1/internal/controller"
	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
	"pdd_wms_v1/internal/router"
	"pdd_wms_v1/internal/service"
	"pdd_wms_v1/internal/task"
	"pdd_wms_v1/pkg/database"
	"pdd_wms_v1/pkg/logger"
)

// ==================== 依赖装配 ====================

// Repositories 仓库集合
type Repositories struct {
	Merchant repository.MerchantRepository
	Product  repository.ProductRepository
	Order    repository.SalesOrderRepository
	User     repository.UserRepository
	Employee repository.EmployeeRepository
	Delivery repository.DeliveryRepository
	Return   repository.ReturnRepository
	Setting  repository.SettingRepository
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	Merchant *service.MerchantService
	Product  *service.ProductService
	Order    *service.SalesOrderService
	User     *service.UserService
	Employee *service.EmployeeService
	Workflow *service.WorkflowService
	Setting  *service.SettingService
	Notify   *service.NotifyService
}

func buildRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Merchant: repository.NewMerchantRepository(db),
		Product:  repository.NewProductRepository(db),
		Order:    repository.NewSalesOrderRepository(db),
		User:     repository.NewUserRepository(db),
		Employee: repository.NewEmployeeRepository(db),
		Delivery: repository.NewDeliveryRepository(db),
		Return:   repository.NewReturnRepository(db),
		Setting:  repository.NewSettingRepository(db),
	}
}

func buildServices(cfg *config.Config, repos *Repositories) *Services {
	return &Services{
		Auth:     service.NewAuthService(repos.User, repos.Employee, cfg.JWTSecret, cfg.TokenTTL),
		Merchant: service.NewMerchantService(repos.Merchant, repos.Product),
		Product:  service.NewProductService(repos.Product, repos.Merchant),
		Order:    service.NewSalesOrderService(repos.Order),
		User:     service.NewUserService(repos.User),
		Employee: service.NewEmployeeService(repos.Employee),
		Workflow: service.NewWorkflowService(repos.Delivery, repos.Return),
		Setting:  service.NewSettingService(repos.Setting),
		Notify:   service.NewNotifyService(cfg.NotifyGatewayURL, cfg.NotifyEnabled),
	}
}

func buildControllers(svcs *Services) *router.Controllers {
	return &router.Controllers{
		Auth:     controller.NewAuthController(svcs.Auth),
		Merchant: controller.NewMerchantController(svcs.Merchant),
		Product:  controller.NewProductController(svcs.Product),
		User:     controller.NewUserController(svcs.User),
		Employee: controller.NewEmployeeController(svcs.Employee),
		Delivery: controller.NewDeliveryController(svcs.Workflow),
		Return:   controller.NewReturnController(svcs.Workflow),
		Order:    controller.NewOrderController(svcs.Order),
		Setting:  controller.NewSettingController(svcs.Setting),
		Open:     controller.NewOpenController(svcs.Product, svcs.Merchant, svcs.Order),
	}
}

// seedAdminUser 空库时播种默认后台账号
// 默认密码以明文落库，首次登录成功后会被原地升级为 bcrypt 哈希
func seedAdminUser(userRepo repository.UserRepository) error {
	ctx := context.Background()
	count, err := userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	active := true
	admin := &model.SysUser{
		Username:    "admin",
		Password:    "admin123",
		DisplayName: "管理员",
		IsActive:    &active,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}
	logger.L().Warn("已创建默认后台账号 admin/admin123，请尽快修改密码")
	return nil
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.ServerMode)
	defer logger.Sync()

	db := database.MustOpen(cfg.DBPath)

	// 表结构初始化 + 一次性旧库导入
	schemaMgr := database.NewManager(db, model.MigrationSteps())
	if err := schemaMgr.Init(); err != nil {
		logger.L().Fatal("表结构初始化失败", zap.Error(err))
	}
	database.SetGlobal(schemaMgr)

	if err := repository.ImportLegacySnapshot(schemaMgr, cfg.LegacyJSON); err != nil {
		logger.L().Fatal("旧版数据导入失败", zap.Error(err))
	}

	repos := buildRepositories(db)
	svcs := buildServices(cfg, repos)
	ctls := buildControllers(svcs)

	if err := seedAdminUser(repos.User); err != nil {
		logger.L().Fatal("默认账号播种失败", zap.Error(err))
	}

	// 每日发货提醒
	reminder := task.NewDeliveryReminder(cfg.NotifyCron, svcs.Workflow, svcs.Notify, repos.Merchant)
	if err := reminder.Start(); err != nil {
		logger.L().Fatal("定时任务启动失败", zap.Error(err))
	}

	gin.SetMode(cfg.ServerMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	router.Setup(engine, ctls, svcs.Auth, repos.Setting, cfg.OpenAPIKey)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: engine,
	}

	go func() {
		logger.L().Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("服务启动失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("收到退出信号，开始优雅关闭")
	reminder.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Error("服务关闭异常", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.L().Error("数据库关闭异常", zap.Error(err))
		}
	}
	logger.L().Info("服务已退出")
}
