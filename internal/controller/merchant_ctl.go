package controller

import (
	"github.com/gin-gonic/gin"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
	"pdd_wms_v1/internal/service"
)

// ==================== MerchantController 商家控制器 ====================

// MerchantController 商家控制器
type MerchantController struct {
	merchantSvc *service.MerchantService
}

// NewMerchantController 创建商家控制器
func NewMerchantController(merchantSvc *service.MerchantService) *MerchantController {
	return &MerchantController{merchantSvc: merchantSvc}
}

// List 商家分页列表
// @Summary 商家分页列表
// @Tags Merchant
// @Produce json
// @Router /api/merchants [get]
func (ctl *MerchantController) List(c *gin.Context) {
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
	OK(c, page)
}

// Get 商家详情
func (ctl *MerchantController) Get(c *gin.Context) {
	merchant, err := ctl.merchantSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, merchant)
}

// Create 创建商家
func (ctl *MerchantController) Create(c *gin.Context) {
	var merchant model.Merchant
	if err := c.ShouldBindJSON(&merchant); err != nil {
		BadRequest(c, err)
		return
	}

	created, err := ctl.merchantSvc.Create(c.Request.Context(), &merchant)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "创建成功", created)
}

// Update 更新商家
func (ctl *MerchantController) Update(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		BadRequest(c, err)
		return
	}

	merchant, err := ctl.merchantSvc.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "更新成功", merchant)
}

// Delete 删除商家
func (ctl *MerchantController) Delete(c *gin.Context) {
	if err := ctl.merchantSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "删除成功", nil)
}
