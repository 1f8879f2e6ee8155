package router

import (
	"github.com/gin-gonic/gin"

	"pdd_wms_v1/internal/controller"
	"pdd_wms_v1/internal/middleware"
	"pdd_wms_v1/internal/repository"
	"pdd_wms_v1/internal/service"
)

// ==================== 路由注册 ====================

// Controllers 控制器集合
type Controllers struct {
	Auth     *controller.AuthController
	Merchant *controller.MerchantController
	Product  *controller.ProductController
	User     *controller.UserController
	Employee *controller.EmployeeController
	Delivery *controller.DeliveryController
	Return   *controller.ReturnController
	Order    *controller.OrderController
	Setting  *controller.SettingController
	Open     *controller.OpenController
}

// Setup 注册全部路由
// /api 走账号体系；/open/api 走 API Key：
// 只读对接用静态配置的 Key，Cookie 回写用设置表里的 apiKey
func Setup(engine *gin.Engine, ctls *Controllers, authSvc *service.AuthService, settingRepo repository.SettingRepository, staticAPIKey string) {
	engine.Use(middleware.RequestLog())

	api := engine.Group("/api")
	{
		api.POST("/auth/login", ctls.Auth.AdminLogin)
		api.POST("/employee/login", ctls.Auth.EmployeeLogin)
		api.POST("/employee/register", ctls.Auth.EmployeeRegister)

		// 后台管理，后台账号 Token
		admin := api.Group("", middleware.AdminAuth(authSvc))
		{
			admin.GET("/merchants", ctls.Merchant.List)
			admin.GET("/merchants/:id", ctls.Merchant.Get)
			admin.POST("/merchants", ctls.Merchant.Create)
			admin.PUT("/merchants/:id", ctls.Merchant.Update)
			admin.DELETE("/merchants/:id", ctls.Merchant.Delete)

			admin.GET("/products", ctls.Product.List)
			admin.GET("/products/:id", ctls.Product.Get)
			admin.POST("/products", ctls.Product.Create)
			admin.PUT("/products/:id", ctls.Product.Update)
			admin.DELETE("/products/:id", ctls.Product.Delete)

			admin.GET("/users", ctls.User.List)
			admin.GET("/users/:id", ctls.User.Get)
			admin.POST("/users", ctls.User.Create)
			admin.PUT("/users/:id", ctls.User.Update)
			admin.DELETE("/users/:id", ctls.User.Delete)

			admin.GET("/employees", ctls.Employee.List)
			admin.GET("/employees/:id", ctls.Employee.Get)
			admin.PUT("/employees/:id", ctls.Employee.Update)
			admin.DELETE("/employees/:id", ctls.Employee.Delete)

			admin.GET("/deliveries", ctls.Delivery.List)
			admin.POST("/deliveries/check-duplicates", ctls.Delivery.CheckDuplicates)
			admin.POST("/deliveries/batch", ctls.Delivery.Ingest)

			admin.GET("/returns", ctls.Return.List)
			admin.POST("/returns", ctls.Return.Create)
			admin.DELETE("/returns/:id", ctls.Return.Delete)

			admin.GET("/orders", ctls.Order.List)
			admin.GET("/orders/:id", ctls.Order.Get)

			admin.GET("/settings", ctls.Setting.GetAll)
			admin.PUT("/settings", ctls.Setting.Save)
		}

		// 仓库作业，员工凭证（Token / 工号头 / 登录码头）
		work := api.Group("", middleware.EmployeeAuth(authSvc))
		{
			work.GET("/deliveries/pending", ctls.Delivery.PendingList)
			work.GET("/deliveries/stock", ctls.Delivery.StockList)
			work.GET("/deliveries/dashboard", ctls.Delivery.Dashboard)
			work.POST("/deliveries/:id/pick", ctls.Delivery.ConfirmPick)
			work.POST("/deliveries/:id/stock", ctls.Delivery.ConfirmStock)
			work.PUT("/returns/:id/retrieval", ctls.Return.UpdateRetrieval)
		}
	}

	open := engine.Group("/open/api")
	{
		collect := open.Group("", middleware.APIKeyAuth(middleware.StaticKey(staticAPIKey)))
		{
			collect.GET("/merchants", ctls.Open.ListMerchants)
			collect.GET("/products", ctls.Open.ListProducts)
			collect.GET("/product", ctls.Open.GetProduct)
			collect.GET("/orders", ctls.Open.ListOrders)
			collect.POST("/orders", ctls.Open.CreateOrder)
		}

		cookie := open.Group("", middleware.APIKeyAuth(middleware.SettingKey(settingRepo)))
		{
			cookie.PUT("/merchant/cookie", ctls.Open.UpdateCookie)
		}
	}
}
