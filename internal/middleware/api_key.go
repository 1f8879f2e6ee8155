package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
)

// ==================== 对外接口 API Key ====================

// HeaderAPIKey 对外接口密钥请求头
const HeaderAPIKey = "X-Api-Key"

// KeyResolver 取期望密钥；不同端点的密钥来源不同（静态配置或设置表）
type KeyResolver func(c *gin.Context) (string, error)

// StaticKey 静态配置密钥
func StaticKey(key string) KeyResolver {
	return func(c *gin.Context) (string, error) {
		return key, nil
	}
}

// SettingKey 设置表里的 apiKey
func SettingKey(settingRepo repository.SettingRepository) KeyResolver {
	return func(c *gin.Context) (string, error) {
		return settingRepo.Get(c.Request.Context(), model.SettingKeyAPIKey)
	}
}

// APIKeyAuth 对外接口鉴权中间件
func APIKeyAuth(resolve KeyResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		expected, err := resolve(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": "系统内部错误",
			})
			c.Abort()
			return
		}
		provided := c.GetHeader(HeaderAPIKey)
		if expected == "" || provided != expected {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "API Key 无效",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
