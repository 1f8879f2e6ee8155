package service

import (
	"context"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
)

// ==================== ProductService 商品服务 ====================

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	merchantRepo repository.MerchantRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, merchantRepo repository.MerchantRepository) *ProductService {
	return &ProductService{productRepo: productRepo, merchantRepo: merchantRepo}
}

// Create 创建商品，归属商家必须已存在
func (s *ProductService) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.MerchantID == "" {
		return nil, NewValidation("归属商家不能为空")
	}
	merchant, err := s.merchantRepo.GetByID(ctx, product.MerchantID)
	if err != nil {
		return nil, NewInternal(err)
	}
	if merchant == nil {
		return nil, NewValidation("归属商家不存在")
	}

	product.ID = ""
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, NewInternal(err)
	}
	return product, nil
}

// Get 查询商品
func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternal(err)
	}
	if product == nil {
		return nil, NewNotFound("商品不存在")
	}
	return product, nil
}

// GetByGoodsAndMall 外部对接查询：按 (商品ID, 店铺ID) 定位商品
func (s *ProductService) GetByGoodsAndMall(ctx context.Context, goodsID, mallID string) (*model.Product, error) {
	if goodsID == "" || mallID == "" {
		return nil, NewValidation("商品 ID 和店铺 ID 均不能为空")
	}
	product, err := s.productRepo.GetByGoodsAndMall(ctx, goodsID, mallID)
	if err != nil {
		return nil, NewInternal(err)
	}
	if product == nil {
		return nil, NewNotFound("商品不存在")
	}
	return product, nil
}

// Update 部分更新商品字段
// 变更归属商家时校验新商家存在
func (s *ProductService) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Product, error) {
	fields, err := repository.NormalizeUpdates(&model.Product{}, fields)
	if err != nil {
		return nil, fieldError(err)
	}

	if merchantID, ok := fields["merchant_id"].(string); ok {
		merchant, err := s.merchantRepo.GetByID(ctx, merchantID)
		if err != nil {
			return nil, NewInternal(err)
		}
		if merchant == nil {
			return nil, NewValidation("归属商家不存在")
		}
	}

	product, err := s.productRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, NewInternal(err)
	}
	if product == nil {
		return nil, NewNotFound("商品不存在")
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return NewInternal(err)
	}
	if product == nil {
		return NewNotFound("商品不存在")
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return NewInternal(err)
	}
	return nil
}

// List 分页查询商品
func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter, pq repository.PageQuery) (*repository.Page[model.Product], error) {
	page, err := s.productRepo.List(ctx, filter, pq)
	if err != nil {
		return nil, NewInternal(err)
	}
	return page, nil
}
