package controller

import (
	"github.com/gin-gonic/gin"

	"pdd_wms_v1/internal/repository"
	"pdd_wms_v1/internal/service"
)

// ==================== UserController 后台账号控制器 ====================

// UserController 后台账号控制器
type UserController struct {
	userSvc *service.UserService
}

// NewUserController 创建后台账号控制器
func NewUserController(userSvc *service.UserService) *UserController {
	return &UserController{userSvc: userSvc}
}

// CreateUserRequest 创建账号请求
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
}

// List 账号分页列表
// @Summary 账号分页列表
// @Tags User
// @Produce json
// @Router /api/users [get]
func (ctl *UserController) List(c *gin.Context) {
	var filter repository.UserFilter
	var pq repository.PageQuery
	if err := c.ShouldBindQuery(&filter); err != nil {
		BadRequest(c, err)
		return
	}
	if err := c.ShouldBindQuery(&pq); err != nil {
		BadRequest(c, err)
		return
	}

	page, err := ctl.userSvc.List(c.Request.Context(), filter, pq)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, page)
}

// Get 账号详情
func (ctl *UserController) Get(c *gin.Context) {
	user, err := ctl.userSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, user)
}

// Create 创建账号
func (ctl *UserController) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	user, err := ctl.userSvc.Create(c.Request.Context(), req.Username, req.Password, req.DisplayName)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "创建成功", user)
}

// Update 更新账号
func (ctl *UserController) Update(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		BadRequest(c, err)
		return
	}

	user, err := ctl.userSvc.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "更新成功", user)
}

// Delete 删除账号，最后一个账号不允许删除
func (ctl *UserController) Delete(c *gin.Context) {
	if err := ctl.userSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "删除成功", nil)
}
