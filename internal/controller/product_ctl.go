package controller

import (
	"github.com/gin-gonic/gin"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
	"pdd_wms_v1/internal/service"
)

// ==================== ProductController 商品控制器 ====================

// ProductController 商品控制器
type ProductController struct {
	productSvc *service.ProductService
}

// NewProductController 创建商品控制器
func NewProductController(productSvc *service.ProductService) *ProductController {
	return &ProductController{productSvc: productSvc}
}

// List 商品分页列表
// @Summary 商品分页列表
// @Tags Product
// @Produce json
// @Router /api/products [get]
func (ctl *ProductController) List(c *gin.Context) {
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

// Get 商品详情
func (ctl *ProductController) Get(c *gin.Context) {
	product, err := ctl.productSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, product)
}

// Create 创建商品
func (ctl *ProductController) Create(c *gin.Context) {
	var product model.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		BadRequest(c, err)
		return
	}

	created, err := ctl.productSvc.Create(c.Request.Context(), &product)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "创建成功", created)
}

// Update 更新商品
func (ctl *ProductController) Update(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		BadRequest(c, err)
		return
	}

	product, err := ctl.productSvc.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "更新成功", product)
}

// Delete 删除商品
func (ctl *ProductController) Delete(c *gin.Context) {
	if err := ctl.productSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "删除成功", nil)
}
