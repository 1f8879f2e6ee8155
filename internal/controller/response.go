package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pdd_wms_v1/internal/service"
	"pdd_wms_v1/pkg/logger"
)

// ==================== 统一响应 ====================
// 错误类别 → 状态码的映射只在这里维护，接口层不看错误文案

// OK 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": data,
	})
}

// OKMessage 带提示语的成功响应
func OKMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

// BadRequest 参数绑定失败
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    400,
		"message": "参数错误: " + err.Error(),
	})
}

var kindStatus = map[service.ErrorKind]int{
	service.KindValidation:   http.StatusBadRequest,
	service.KindUnauthorized: http.StatusUnauthorized,
	service.KindNotFound:     http.StatusNotFound,
	service.KindConflict:     http.StatusConflict,
	service.KindInternal:     http.StatusInternalServerError,
}

// Fail 按错误类别返回固定状态码
// 内部错误的底层原因只进日志，响应里不暴露存储细节
func Fail(c *gin.Context, err error) {
	kind := service.KindOf(err)
	status := kindStatus[kind]

	message := err.Error()
	if kind == service.KindInternal {
		logger.L().Error("请求处理失败",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		message = "系统内部错误"
	}

	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}
