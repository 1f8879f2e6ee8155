package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pdd_wms_v1/internal/model"
)

// ==================== DeliveryRepository 发货记录仓库 ====================

// DeliveryFilter 发货记录筛选条件
type DeliveryFilter struct {
	MerchantName       string `form:"merchantName" search:"contains"`
	ProductName        string `form:"productName" search:"contains"`
	DeliveryDate       string `form:"deliveryDate" search:"exact"`
	DistributionStatus *int   `form:"distributionStatus" search:"exact"`
	WarehousingStatus  *int   `form:"warehousingStatus" search:"exact"`
}

// DeliveryKey 发货记录去重键三元组
type DeliveryKey struct {
	MerchantName string `json:"merchantName"`
	ProductName  string `json:"productName"`
	DeliveryDate string `json:"deliveryDate"`
}

// String 拼接为 merchantName|productName|deliveryDate
func (k DeliveryKey) String() string {
	return k.MerchantName + "|" + k.ProductName + "|" + k.DeliveryDate
}

// DeliveryRepository 发货记录仓库接口
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *model.DailyDelivery) error
	BatchCreate(ctx context.Context, deliveries []model.DailyDelivery) error
	GetByID(ctx context.Context, id string) (*model.DailyDelivery, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.DailyDelivery, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter DeliveryFilter, pq PageQuery) (*Page[model.DailyDelivery], error)
	ExistingKeys(ctx context.Context, keys []DeliveryKey) ([]string, error)
	ListByDateAndDistribution(ctx context.Context, date string, status int) ([]model.DailyDelivery, error)
	CountPendingPick(ctx context.Context, date string) (int64, error)
	CountPendingStock(ctx context.Context, date string) (int64, error)
	MarkDistributed(ctx context.Context, id string, operators model.StringList) (bool, error)
	MarkWarehoused(ctx context.Context, id string, operators model.StringList) (bool, error)
}

var deliverySortable = sortableColumns("created_at", "delivery_date", "merchant_name", "product_name")

type deliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository 创建发货记录仓库
func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(ctx context.Context, delivery *model.DailyDelivery) error {
	return r.db.WithContext(ctx).Create(delivery).Error
}

func (r *deliveryRepository) BatchCreate(ctx context.Context, deliveries []model.DailyDelivery) error {
	if len(deliveries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&deliveries).Error
}

func (r *deliveryRepository) GetByID(ctx context.Context, id string) (*model.DailyDelivery, error) {
	var delivery model.DailyDelivery
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&delivery).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (r *deliveryRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.DailyDelivery, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	fields, err = NormalizeUpdates(&model.DailyDelivery{}, fields)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		err = r.db.WithContext(ctx).
			Model(&model.DailyDelivery{}).
			Where("id = ?", id).
			Updates(fields).Error
		if err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *deliveryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DailyDelivery{}).Error
}

func (r *deliveryRepository) List(ctx context.Context, filter DeliveryFilter, pq PageQuery) (*Page[model.DailyDelivery], error) {
	return FindPage[model.DailyDelivery](r.db.WithContext(ctx), MakeCondition(filter), pq, deliverySortable)
}

// ExistingKeys 批量查询已存在的去重键，一次往返代替 N 次单查
// 返回已存在键的 merchantName|productName|deliveryDate 形式子集
func (r *deliveryRepository) ExistingKeys(ctx context.Context, keys []DeliveryKey) ([]string, error) {
	existing := []string{}
	if len(keys) == 0 {
		return existing, nil
	}

	query := r.db.WithContext(ctx).Model(&model.DailyDelivery{})
	cond := r.db.Session(&gorm.Session{NewDB: true})
	for _, k := range keys {
		cond = cond.Or("merchant_name = ? AND product_name = ? AND delivery_date = ?",
			k.MerchantName, k.ProductName, k.DeliveryDate)
	}

	var rows []model.DailyDelivery
	err := query.Where(cond).
		Select("merchant_name", "product_name", "delivery_date").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	found := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		found[row.DuplicateKey()] = struct{}{}
	}
	// 按入参顺序返回，保证响应稳定
	for _, k := range keys {
		if _, ok := found[k.String()]; ok {
			existing = append(existing, k.String())
		}
	}
	return existing, nil
}

// ListByDateAndDistribution 按日期和配货状态查询
func (r *deliveryRepository) ListByDateAndDistribution(ctx context.Context, date string, status int) ([]model.DailyDelivery, error) {
	var deliveries []model.DailyDelivery
	err := r.db.WithContext(ctx).
		Where("delivery_date = ? AND distribution_status = ?", date, status).
		Order("created_at ASC").
		Find(&deliveries).Error
	return deliveries, err
}

func (r *deliveryRepository) CountPendingPick(ctx context.Context, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DailyDelivery{}).
		Where("delivery_date = ? AND distribution_status = ?", date, model.DistributionPending).
		Count(&count).Error
	return count, err
}

func (r *deliveryRepository) CountPendingStock(ctx context.Context, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DailyDelivery{}).
		Where("delivery_date = ? AND distribution_status = ? AND warehousing_status = ?",
			date, model.DistributionDone, model.WarehousingPending).
		Count(&count).Error
	return count, err
}

// MarkDistributed 配货状态 0→1，带状态比较的条件更新
// 单进程下请求串行执行，这里的比较写是为多进程部署兜底：抢不到返回 false
func (r *deliveryRepository) MarkDistributed(ctx context.Context, id string, operators model.StringList) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.DailyDelivery{}).
		Where("id = ? AND distribution_status = ?", id, model.DistributionPending).
		Updates(map[string]interface{}{
			"distribution_status": model.DistributionDone,
			"operators":           operators,
		})
	return result.RowsAffected > 0, result.Error
}

// MarkWarehoused 入库状态 0→1，前提是已配货
func (r *deliveryRepository) MarkWarehoused(ctx context.Context, id string, operators model.StringList) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.DailyDelivery{}).
		Where("id = ? AND distribution_status = ? AND warehousing_status = ?",
			id, model.DistributionDone, model.WarehousingPending).
		Updates(map[string]interface{}{
			"warehousing_status": model.WarehousingDone,
			"operators":          operators,
		})
	return result.RowsAffected > 0, result.Error
}
