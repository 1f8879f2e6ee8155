package service

import (
	"context"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
)

// ==================== MerchantService 商家服务 ====================

// MerchantService 商家服务
type MerchantService struct {
	merchantRepo repository.MerchantRepository
	productRepo  repository.ProductRepository
}

// NewMerchantService 创建商家服务
func NewMerchantService(merchantRepo repository.MerchantRepository, productRepo repository.ProductRepository) *MerchantService {
	return &MerchantService{merchantRepo: merchantRepo, productRepo: productRepo}
}

// Create 创建商家
// 仓库与群名为必填项，缺失直接拒绝，不产生任何写入
func (s *MerchantService) Create(ctx context.Context, merchant *model.Merchant) (*model.Merchant, error) {
	if merchant.Warehouse1 == "" || merchant.Warehouse2 == "" {
		return nil, NewValidation("一号仓和二号仓不能为空")
	}
	if merchant.DefaultWarehouse == "" {
		return nil, NewValidation("默认仓不能为空")
	}
	if merchant.GroupName == "" {
		return nil, NewValidation("通知群名称不能为空")
	}

	merchant.ID = ""
	if err := s.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, NewInternal(err)
	}
	return merchant, nil
}

// Get 查询商家
func (s *MerchantService) Get(ctx context.Context, id string) (*model.Merchant, error) {
	merchant, err := s.merchantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternal(err)
	}
	if merchant == nil {
		return nil, NewNotFound("商家不存在")
	}
	return merchant, nil
}

// Update 部分更新商家字段
func (s *MerchantService) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Merchant, error) {
	fields, err := repository.NormalizeUpdates(&model.Merchant{}, fields)
	if err != nil {
		return nil, fieldError(err)
	}

	merchant, err := s.merchantRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, NewInternal(err)
	}
	if merchant == nil {
		return nil, NewNotFound("商家不存在")
	}
	return merchant, nil
}

// Delete 删除商家
// 名下还有商品时拒绝删除（引用检查，不做级联删除）
func (s *MerchantService) Delete(ctx context.Context, id string) error {
	merchant, err := s.merchantRepo.GetByID(ctx, id)
	if err != nil {
		return NewInternal(err)
	}
	if merchant == nil {
		return NewNotFound("商家不存在")
	}

	count, err := s.productRepo.CountByMerchant(ctx, id)
	if err != nil {
		return NewInternal(err)
	}
	if count > 0 {
		return NewConflict("商家名下还有商品，不能删除")
	}

	if err := s.merchantRepo.Delete(ctx, id); err != nil {
		return NewInternal(err)
	}
	return nil
}

// List 分页查询商家
func (s *MerchantService) List(ctx context.Context, filter repository.MerchantFilter, pq repository.PageQuery) (*repository.Page[model.Merchant], error) {
	page, err := s.merchantRepo.List(ctx, filter, pq)
	if err != nil {
		return nil, NewInternal(err)
	}
	return page, nil
}

// UpdateCookie 外部对接：按店铺 ID 更新会话 Cookie
func (s *MerchantService) UpdateCookie(ctx context.Context, mallID, cookie string) (*model.Merchant, error) {
	if mallID == "" {
		return nil, NewValidation("店铺 ID 不能为空")
	}
	merchant, err := s.merchantRepo.GetByMallID(ctx, mallID)
	if err != nil {
		return nil, NewInternal(err)
	}
	if merchant == nil {
		return nil, NewNotFound("店铺不存在")
	}
	return s.Update(ctx, merchant.ID, map[string]interface{}{"cookie": cookie})
}
