package controller

import (
	"github.com/gin-gonic/gin"

	"pdd_wms_v1/internal/middleware"
	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
	"pdd_wms_v1/internal/service"
)

// ==================== DeliveryController 发货控制器 ====================

// DeliveryController 发货控制器
type DeliveryController struct {
	workflowSvc *service.WorkflowService
}

// NewDeliveryController 创建发货控制器
func NewDeliveryController(workflowSvc *service.WorkflowService) *DeliveryController {
	return &DeliveryController{workflowSvc: workflowSvc}
}

// List 发货记录分页列表（后台）
// @Summary 发货记录分页列表
// @Tags Delivery
// @Produce json
// @Router /api/deliveries [get]
func (ctl *DeliveryController) List(c *gin.Context) {
	var filter repository.DeliveryFilter
	var pq repository.PageQuery
	if err := c.ShouldBindQuery(&filter); err != nil {
		BadRequest(c, err)
		return
	}
	if err := c.ShouldBindQuery(&pq); err != nil {
		BadRequest(c, err)
		return
	}

	page, err := ctl.workflowSvc.ListDeliveries(c.Request.Context(), filter, pq)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, page)
}

// PendingList 当日待配货列表（员工端）
// @Summary 当日待配货列表
// @Tags Delivery
// @Produce json
// @Param date query string false "日期 yyyy-MM-dd，缺省为当天"
// @Router /api/deliveries/pending [get]
func (ctl *DeliveryController) PendingList(c *gin.Context) {
	deliveries, err := ctl.workflowSvc.TodayPendingList(c.Request.Context(), c.Query("date"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, deliveries)
}

// StockList 当日已配货列表（员工端）
// @Summary 当日已配货列表
// @Tags Delivery
// @Produce json
// @Param date query string false "日期 yyyy-MM-dd，缺省为当天"
// @Router /api/deliveries/stock [get]
func (ctl *DeliveryController) StockList(c *gin.Context) {
	deliveries, err := ctl.workflowSvc.TodayStockList(c.Request.Context(), c.Query("date"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, deliveries)
}

// Dashboard 当日看板统计
// @Summary 当日看板统计
// @Tags Delivery
// @Produce json
// @Router /api/deliveries/dashboard [get]
func (ctl *DeliveryController) Dashboard(c *gin.Context) {
	counts, err := ctl.workflowSvc.Dashboard(c.Request.Context(), c.Query("date"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, counts)
}

// ConfirmPick 确认配货
// @Summary 确认配货
// @Tags Delivery
// @Produce json
// @Param id path string true "发货记录 ID"
// @Router /api/deliveries/{id}/pick [post]
func (ctl *DeliveryController) ConfirmPick(c *gin.Context) {
	employee := middleware.GetEmployee(c)
	delivery, err := ctl.workflowSvc.ConfirmPick(c.Request.Context(), c.Param("id"), employee)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "配货成功", delivery)
}

// ConfirmStock 确认入库
// @Summary 确认入库
// @Tags Delivery
// @Produce json
// @Param id path string true "发货记录 ID"
// @Router /api/deliveries/{id}/stock [post]
func (ctl *DeliveryController) ConfirmStock(c *gin.Context) {
	employee := middleware.GetEmployee(c)
	delivery, err := ctl.workflowSvc.ConfirmStock(c.Request.Context(), c.Param("id"), employee)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "入库成功", delivery)
}

// CheckDuplicatesRequest 去重查询请求
type CheckDuplicatesRequest struct {
	Keys []repository.DeliveryKey `json:"keys" binding:"required"`
}

// CheckDuplicates 批量查询已存在的发货记录键
// @Summary 批量查询已存在的发货记录键
// @Tags Delivery
// @Accept json
// @Produce json
// @Router /api/deliveries/check-duplicates [post]
func (ctl *DeliveryController) CheckDuplicates(c *gin.Context) {
	var req CheckDuplicatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	existing, err := ctl.workflowSvc.CheckDuplicates(c.Request.Context(), req.Keys)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"duplicateKeys": existing})
}

// IngestRequest 批量录入请求
type IngestRequest struct {
	Deliveries []model.DailyDelivery `json:"deliveries" binding:"required"`
}

// Ingest 批量录入发货记录，已存在的跳过
// @Summary 批量录入发货记录
// @Tags Delivery
// @Accept json
// @Produce json
// @Router /api/deliveries/batch [post]
func (ctl *DeliveryController) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	result, err := ctl.workflowSvc.IngestDeliveries(c.Request.Context(), req.Deliveries)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "录入完成", result)
}
