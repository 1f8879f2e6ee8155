package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pdd_wms_v1/internal/model"
)

// ==================== ProductRepository 商品仓库 ====================

// ProductFilter 商品筛选条件
type ProductFilter struct {
	Name       string `form:"name" search:"contains"`
	PddName    string `form:"pddName" search:"contains"`
	GoodsID    string `form:"goodsId" search:"contains"`
	Spec       string `form:"spec" search:"contains"`
	MerchantID string `form:"merchantId" search:"exact"`
}

// ProductRepository 商品仓库接口
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	GetByGoodsAndMall(ctx context.Context, goodsID, mallID string) (*model.Product, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter, pq PageQuery) (*Page[model.Product], error)
	CountByMerchant(ctx context.Context, merchantID string) (int64, error)
}

var productSortable = sortableColumns("created_at", "name", "goods_id")

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByGoodsAndMall 外部对接查询：按 (商品ID, 店铺ID) 定位商品
// mall_id 在商家表上，这里联表换取一次往返
func (r *productRepository) GetByGoodsAndMall(ctx context.Context, goodsID, mallID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN merchants ON merchants.id = products.merchant_id").
		Where("products.goods_id = ? AND merchants.mall_id = ?", goodsID, mallID).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Product, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	fields, err = NormalizeUpdates(&model.Product{}, fields)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		err = r.db.WithContext(ctx).
			Model(&model.Product{}).
			Where("id = ?", id).
			Updates(fields).Error
		if err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{}).Error
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter, pq PageQuery) (*Page[model.Product], error) {
	return FindPage[model.Product](r.db.WithContext(ctx), MakeCondition(filter), pq, productSortable)
}

// CountByMerchant 统计商家名下商品数（删商家前的引用检查）
func (r *productRepository) CountByMerchant(ctx context.Context, merchantID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("merchant_id = ?", merchantID).
		Count(&count).Error
	return count, err
}
