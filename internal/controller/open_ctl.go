package controller

import (
	"github.com/gin-gonic/gin"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
	"pdd_wms_v1/internal/service"
)

// ==================== OpenController 对外接口控制器 ====================
// 供外部采集端对接：查商品、回写销售单、回写店铺 Cookie
// 鉴权走 API Key 中间件，不经过账号体系

// OpenController 对外接口控制器
type OpenController struct {
	productSvc  *service.ProductService
	merchantSvc *service.MerchantService
	orderSvc    *service.SalesOrderService
}

// NewOpenController 创建对外接口控制器
func NewOpenController(productSvc *service.ProductService, merchantSvc *service.MerchantService, orderSvc *service.SalesOrderService) *OpenController {
	return &OpenController{
		productSvc:  productSvc,
		merchantSvc: merchantSvc,
		orderSvc:    orderSvc,
	}
}

// ListMerchants 商家只读列表
// 会话 Cookie 和店铺密码属于采集端写入的敏感字段，响应里一律抹掉
// @Summary 商家只读列表
// @Tags Open
// @Produce json
// @Router /open/api/merchants [get]
func (ctl *OpenController) ListMerchants(c *gin.Context) {
	var filter repository.MerchantFilter
	var pq repository.PageQuery
	if err := c.ShouldBindQuery(&filter); err != nil {
		BadRequest(c, err)
		return
	}
	if err := c.ShouldBindQuery(&pq); err != nil {
		BadRequest(c, err)
		return
	}

	page, err := ctl.merchantSvc.List(c.Request.Context(), filter, pq)
	if err != nil {
		Fail(c, err)
		return
	}
	for i := range page.Items {
		page.Items[i].Cookie = ""
		page.Items[i].PddPassword = ""
	}
	OK(c, page)
}

// ListProducts 商品只读列表
// @Summary 商品只读列表
// @Tags Open
// @Produce json
// @Router /open/api/products [get]
func (ctl *OpenController) ListProducts(c *gin.Context) {
	var filter repository.ProductFilter
	var pq repository.PageQuery
	if err := c.ShouldBindQuery(&filter); err != nil {
		BadRequest(c, err)
		return
	}
	if err := c.ShouldBindQuery(&pq); err != nil {
		BadRequest(c, err)
		return
	}

	page, err := ctl.productSvc.List(c.Request.Context(), filter, pq)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, page)
}

// ListOrders 销售单只读列表
// @Summary 销售单只读列表
// @Tags Open
// @Produce json
// @Router /open/api/orders [get]
func (ctl *OpenController) ListOrders(c *gin.Context) {
	var filter repository.SalesOrderFilter
	var pq repository.PageQuery
	if err := c.ShouldBindQuery(&filter); err != nil {
		BadRequest(c, err)
		return
	}
	if err := c.ShouldBindQuery(&pq); err != nil {
		BadRequest(c, err)
		return
	}

	page, err := ctl.orderSvc.List(c.Request.Context(), filter, pq)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, page)
}

// GetProduct 按 (商品ID, 店铺ID) 查询商品
// @Summary 按商品 ID 和店铺 ID 查询商品
// @Tags Open
// @Produce json
// @Param goodsId query string true "商品 ID"
// @Param mallId query string true "店铺 ID"
// @Router /open/api/product [get]
func (ctl *OpenController) GetProduct(c *gin.Context) {
	product, err := ctl.productSvc.GetByGoodsAndMall(c.Request.Context(), c.Query("goodsId"), c.Query("mallId"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, product)
}

// CreateOrder 回写销售单
// @Summary 回写销售单
// @Tags Open
// @Accept json
// @Produce json
// @Router /open/api/orders [post]
func (ctl *OpenController) CreateOrder(c *gin.Context) {
	var order model.ProductSalesOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		BadRequest(c, err)
		return
	}

	created, err := ctl.orderSvc.Create(c.Request.Context(), &order)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "创建成功", created)
}

// UpdateCookieRequest 店铺 Cookie 回写请求
type UpdateCookieRequest struct {
	MallID string `json:"mallId" binding:"required"`
	Cookie string `json:"cookie" binding:"required"`
}

// UpdateCookie 按店铺 ID 回写会话 Cookie
// @Summary 按店铺 ID 回写会话 Cookie
// @Tags Open
// @Accept json
// @Produce json
// @Router /open/api/merchant/cookie [put]
func (ctl *OpenController) UpdateCookie(c *gin.Context) {
	var req UpdateCookieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	merchant, err := ctl.merchantSvc.UpdateCookie(c.Request.Context(), req.MallID, req.Cookie)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "更新成功", merchant)
}
