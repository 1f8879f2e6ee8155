package controller

import (
	"github.com/gin-gonic/gin"

	"pdd_wms_v1/internal/repository"
	"pdd_wms_v1/internal/service"
)

// ==================== EmployeeController 员工管理控制器 ====================

// EmployeeController 员工管理控制器
type EmployeeController struct {
	employeeSvc *service.EmployeeService
}

// NewEmployeeController 创建员工管理控制器
func NewEmployeeController(employeeSvc *service.EmployeeService) *EmployeeController {
	return &EmployeeController{employeeSvc: employeeSvc}
}

// List 员工分页列表
// @Summary 员工分页列表
// @Tags Employee
// @Produce json
// @Router /api/employees [get]
func (ctl *EmployeeController) List(c *gin.Context) {
	var filter repository.EmployeeFilter
	var pq repository.PageQuery
	if err := c.ShouldBindQuery(&filter); err != nil {
		BadRequest(c, err)
		return
	}
	if err := c.ShouldBindQuery(&pq); err != nil {
		BadRequest(c, err)
		return
	}

	page, err := ctl.employeeSvc.List(c.Request.Context(), filter, pq)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, page)
}

// Get 员工详情
func (ctl *EmployeeController) Get(c *gin.Context) {
	employee, err := ctl.employeeSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, employee)
}

// Update 更新员工
func (ctl *EmployeeController) Update(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		BadRequest(c, err)
		return
	}

	employee, err := ctl.employeeSvc.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "更新成功", employee)
}

// Delete 删除员工
func (ctl *EmployeeController) Delete(c *gin.Context) {
	if err := ctl.employeeSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "删除成功", nil)
}
