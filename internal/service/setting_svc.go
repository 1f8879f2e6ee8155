package service

import (
	"context"

	"pdd_wms_v1/internal/repository"
)

// ==================== SettingService 系统设置服务 ====================

// SettingService 系统设置服务，键值透传
type SettingService struct {
	settingRepo repository.SettingRepository
}

// NewSettingService 创建系统设置服务
func NewSettingService(settingRepo repository.SettingRepository) *SettingService {
	return &SettingService{settingRepo: settingRepo}
}

// GetAll 读取全部设置
func (s *SettingService) GetAll(ctx context.Context) (map[string]string, error) {
	settings, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		return nil, NewInternal(err)
	}
	return settings, nil
}

// Save 批量写入设置，空键拒绝
func (s *SettingService) Save(ctx context.Context, values map[string]string) error {
	for key := range values {
		if key == "" {
			return NewValidation("设置键不能为空")
		}
	}
	for key, value := range values {
		if err := s.settingRepo.Set(ctx, key, value); err != nil {
			return NewInternal(err)
		}
	}
	return nil
}
