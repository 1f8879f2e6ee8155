package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pdd_wms_v1/internal/model"
)

// ==================== ReturnRepository 退货明细仓库 ====================

// ReturnFilter 退货明细筛选条件
type ReturnFilter struct {
	MerchantName    string `form:"merchantName" search:"contains"`
	ProductName     string `form:"productName" search:"contains"`
	ReturnDate      string `form:"returnDate" search:"exact"`
	RetrievalStatus *int   `form:"retrievalStatus" search:"exact"`
}

// ReturnRepository 退货明细仓库接口
type ReturnRepository interface {
	Create(ctx context.Context, detail *model.ReturnDetail) error
	GetByID(ctx context.Context, id string) (*model.ReturnDetail, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.ReturnDetail, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ReturnFilter, pq PageQuery) (*Page[model.ReturnDetail], error)
	CountPending(ctx context.Context, date string) (int64, error)
}

var returnSortable = sortableColumns("created_at", "return_date", "merchant_name")

type returnRepository struct {
	db *gorm.DB
}

// NewReturnRepository 创建退货明细仓库
func NewReturnRepository(db *gorm.DB) ReturnRepository {
	return &returnRepository{db: db}
}

func (r *returnRepository) Create(ctx context.Context, detail *model.ReturnDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

func (r *returnRepository) GetByID(ctx context.Context, id string) (*model.ReturnDetail, error) {
	var detail model.ReturnDetail
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&detail).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *returnRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.ReturnDetail, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	fields, err = NormalizeUpdates(&model.ReturnDetail{}, fields)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		err = r.db.WithContext(ctx).
			Model(&model.ReturnDetail{}).
			Where("id = ?", id).
			Updates(fields).Error
		if err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *returnRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ReturnDetail{}).Error
}

func (r *returnRepository) List(ctx context.Context, filter ReturnFilter, pq PageQuery) (*Page[model.ReturnDetail], error) {
	return FindPage[model.ReturnDetail](r.db.WithContext(ctx), MakeCondition(filter), pq, returnSortable)
}

func (r *returnRepository) CountPending(ctx context.Context, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ReturnDetail{}).
		Where("return_date = ? AND retrieval_status = ?", date, model.RetrievalPending).
		Count(&count).Error
	return count, err
}
