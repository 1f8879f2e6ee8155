package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pdd_wms_v1/internal/model"
)

// ==================== MerchantRepository 商家仓库 ====================

// MerchantFilter 商家筛选条件
type MerchantFilter struct {
	Name          string `form:"name" search:"contains"`
	MerchantID    string `form:"merchantId" search:"contains"`
	PinduoduoName string `form:"pinduoduoName" search:"contains"`
	Warehouse1    string `form:"warehouse1" search:"contains"`
	GroupName     string `form:"groupName" search:"contains"`
	SendMessage   *bool  `form:"sendMessage" search:"exact"`
}

// MerchantRepository 商家仓库接口
type MerchantRepository interface {
	Create(ctx context.Context, merchant *model.Merchant) error
	GetByID(ctx context.Context, id string) (*model.Merchant, error)
	GetByMallID(ctx context.Context, mallID string) (*model.Merchant, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Merchant, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter MerchantFilter, pq PageQuery) (*Page[model.Merchant], error)
	ListSendMessage(ctx context.Context) ([]model.Merchant, error)
}

var merchantSortable = sortableColumns("created_at", "name", "merchant_id", "group_name")

type merchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository 创建商家仓库
func NewMerchantRepository(db *gorm.DB) MerchantRepository {
	return &merchantRepository{db: db}
}

func (r *merchantRepository) Create(ctx context.Context, merchant *model.Merchant) error {
	return r.db.WithContext(ctx).Create(merchant).Error
}

func (r *merchantRepository) GetByID(ctx context.Context, id string) (*model.Merchant, error) {
	var merchant model.Merchant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&merchant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

func (r *merchantRepository) GetByMallID(ctx context.Context, mallID string) (*model.Merchant, error) {
	var merchant model.Merchant
	err := r.db.WithContext(ctx).Where("mall_id = ?", mallID).First(&merchant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

// Update 合并更新指定字段，id 和 created_at 不允许覆盖
func (r *merchantRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Merchant, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	fields, err = NormalizeUpdates(&model.Merchant{}, fields)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		err = r.db.WithContext(ctx).
			Model(&model.Merchant{}).
			Where("id = ?", id).
			Updates(fields).Error
		if err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *merchantRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Merchant{}).Error
}

func (r *merchantRepository) List(ctx context.Context, filter MerchantFilter, pq PageQuery) (*Page[model.Merchant], error) {
	return FindPage[model.Merchant](r.db.WithContext(ctx), MakeCondition(filter), pq, merchantSortable)
}

// ListSendMessage 查询开启了群通知的商家
func (r *merchantRepository) ListSendMessage(ctx context.Context) ([]model.Merchant, error) {
	var merchants []model.Merchant
	err := r.db.WithContext(ctx).Where("send_message = ?", true).Find(&merchants).Error
	return merchants, err
}
