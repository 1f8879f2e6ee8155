package controller

import (
	"github.com/gin-gonic/gin"

	"pdd_wms_v1/internal/service"
)

// ==================== AuthController 登录控制器 ====================

// AuthController 登录控制器
type AuthController struct {
	authSvc *service.AuthService
}

// NewAuthController 创建登录控制器
func NewAuthController(authSvc *service.AuthService) *AuthController {
	return &AuthController{authSvc: authSvc}
}

// AdminLoginRequest 后台登录请求
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin 后台账号登录
// @Summary 后台账号登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "登录信息"
// @Router /api/auth/login [post]
func (ctl *AuthController) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	user, err := ctl.authSvc.VerifyAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}

	token, err := ctl.authSvc.GenerateToken("admin", user.ID)
	if err != nil {
		Fail(c, err)
		return
	}

	OKMessage(c, "登录成功", gin.H{
		"token": token,
		"user":  user,
	})
}

// EmployeeLogin 员工登录：手机号+密码，或 8 位登录码
// @Summary 员工登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body service.EmployeeLoginRequest true "登录信息"
// @Router /api/employee/login [post]
func (ctl *AuthController) EmployeeLogin(c *gin.Context) {
	var req service.EmployeeLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	employee, token, err := ctl.authSvc.EmployeeLogin(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	OKMessage(c, "登录成功", gin.H{
		"token":    token,
		"employee": employee,
	})
}

// EmployeeRegister 员工注册
// @Summary 员工注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body service.RegisterEmployeeRequest true "注册信息"
// @Router /api/employee/register [post]
func (ctl *AuthController) EmployeeRegister(c *gin.Context) {
	var req service.RegisterEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}

	employee, err := ctl.authSvc.RegisterEmployee(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err)
		return
	}

	OKMessage(c, "注册成功", employee)
}
