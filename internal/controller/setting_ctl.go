package controller

import (
	"github.com/gin-gonic/gin"

	"pdd_wms_v1/internal/service"
)

// ==================== SettingController 系统设置控制器 ====================

// SettingController 系统设置控制器
type SettingController struct {
	settingSvc *service.SettingService
}

// NewSettingController 创建系统设置控制器
func NewSettingController(settingSvc *service.SettingService) *SettingController {
	return &SettingController{settingSvc: settingSvc}
}

// GetAll 读取全部设置
// @Summary 读取全部设置
// @Tags Setting
// @Produce json
// @Router /api/settings [get]
func (ctl *SettingController) GetAll(c *gin.Context) {
	settings, err := ctl.settingSvc.GetAll(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, settings)
}

// Save 批量写入设置
// @Summary 批量写入设置
// @Tags Setting
// @Accept json
// @Produce json
// @Router /api/settings [put]
func (ctl *SettingController) Save(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		BadRequest(c, err)
		return
	}

	if err := ctl.settingSvc.Save(c.Request.Context(), values); err != nil {
		Fail(c, err)
		return
	}
	OKMessage(c, "保存成功", nil)
}
