package controller

import (
	"github.com/gin-gonic/gin"

	"pdd_wms_v1/internal/repository"
	"pdd_wms_v1/internal/service"
)

// ==================== OrderController 销售单控制器 ====================

// OrderController 销售单控制器
type OrderController struct {
	orderSvc *service.SalesOrderService
}

// NewOrderController 创建销售单控制器
func NewOrderController(orderSvc *service.SalesOrderService) *OrderController {
	return &OrderController{orderSvc: orderSvc}
}

// List 销售单分页列表
// @Summary 销售单分页列表
// @Tags SalesOrder
// @Produce json
// @Router /api/orders [get]
func (ctl *OrderController) List(c *gin.Context) {
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

// Get 销售单详情
func (ctl *OrderController) Get(c *gin.Context) {
	order, err := ctl.orderSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, order)
}
