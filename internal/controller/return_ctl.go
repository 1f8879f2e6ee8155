package controller

import (
	"github.com/gin-gonic/gin"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
	"pdd_wms_v1/internal/service"
)

// ==================== ReturnController 退货控制器 ====================

// ReturnController 退货控制器
type ReturnController struct {
	workflowSvc *service.WorkflowService
}

// NewReturnController 创建退货控制器
func NewReturnController(workflowSvc *service.WorkflowService) *ReturnController {
	return &ReturnController{workflowSvc: workflowSvc}
}

// List 退货明细分页列表
// @Summary 退货明细分页列表
// @Tags Return
// @Produce json
// @Router /api/returns [get]
func (ctl *ReturnController) List(c *gin.Context) {
	var filter repository.ReturnFilter
	var pq repository.PageQuery
	if err := c.ShouldBindQuery(&filter); err != nil {
		BadRequest(c, err)
		return
	}
	if err := c.ShouldBindQuery(&pq); err != nil {
		BadRequest(c, err)
		return
	}

	page, err := ctl.workflowSvc.ListReturns(c.Request.Context(), filter, pq)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, page)
}

// Create 创建退货明细
func (ctl *ReturnController) Create(c *gin.Context) {
	var detail model.ReturnDetail
	if err := c.ShouldBindJSON(&detail); err != nil {
		BadRequest(c, err)
		return
	}

	created, err := ctl.workflowSvc.CreateReturn(c.Request.Context(), &detail)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "创建成功", created)
}

// UpdateRetrievalRequest 取件状态更新请求
type UpdateRetrievalRequest struct {
	RetrievalStatus *int `json:"retrievalStatus" binding:"required"`
}

// UpdateRetrieval 更新取件状态（0待取件/1已取件）
// @Summary 更新取件状态
// @Tags Return
// @Accept json
// @Produce json
// @Param id path string true "退货明细 ID"
// @Router /api/returns/{id}/retrieval [put]
func (ctl *ReturnController) UpdateRetrieval(c *gin.Context) {
	var req UpdateRetrievalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	detail, err := ctl.workflowSvc.UpdateRetrievalStatus(c.Request.Context(), c.Param("id"), *req.RetrievalStatus)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "更新成功", detail)
}

// Delete 删除退货明细
func (ctl *ReturnController) Delete(c *gin.Context) {
	if err := ctl.workflowSvc.DeleteReturn(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "删除成功", nil)
}
