package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/service"
)

// ==================== 鉴权中间件 ====================

// Context Keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyEmployee = "employee"
)

// 员工凭证请求头
const (
	HeaderEmployeeID = "X-Employee-Id"
	HeaderLoginCode  = "X-Login-Code"
)

// bearerToken 取出 Authorization 头里的 Bearer Token，没有则为空串
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// AdminAuth 后台账号认证中间件
func AdminAuth(authSvc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "未提供认证信息",
			})
			c.Abort()
			return
		}

		claims, err := authSvc.ParseToken(token)
		if err != nil || claims.Subject != "admin" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Token 无效或已过期",
			})
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UID)
		c.Next()
	}
}

// EmployeeAuth 员工认证中间件
// 凭证解析顺序：Bearer Token → X-Employee-Id → X-Login-Code，首个命中生效
func EmployeeAuth(authSvc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred := service.EmployeeCredential{
			BearerToken: bearerToken(c),
			EmployeeID:  c.GetHeader(HeaderEmployeeID),
			LoginCode:   c.GetHeader(HeaderLoginCode),
		}

		employee, err := authSvc.VerifyEmployee(c.Request.Context(), cred)
		if err != nil {
			status := http.StatusUnauthorized
			if service.KindOf(err) == service.KindValidation {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{
				"code":    status,
				"message": err.Error(),
			})
			c.Abort()
			return
		}

		c.Set(ContextKeyEmployee, employee)
		c.Next()
	}
}

// GetEmployee 从 Context 取当前员工
func GetEmployee(c *gin.Context) *model.Employee {
	if v, exists := c.Get(ContextKeyEmployee); exists {
		return v.(*model.Employee)
	}
	return nil
}

// GetUserID 从 Context 取当前账号 ID
func GetUserID(c *gin.Context) string {
	if v, exists := c.Get(ContextKeyUserID); exists {
		return v.(string)
	}
	return ""
}
