package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pdd_wms_v1/internal/model"
)

// ==================== SalesOrderRepository 销售单仓库 ====================
// 销售单由外部采集端写入，本系统侧只读加导入

// SalesOrderFilter 销售单筛选条件
type SalesOrderFilter struct {
	MallName  string `form:"mallName" search:"contains"`
	GoodsName string `form:"goodsName" search:"contains"`
	MallID    string `form:"mallId" search:"exact"`
	GoodsID   string `form:"goodsId" search:"exact"`
	SalesDate string `form:"salesDate" search:"exact"`
}

// SalesOrderRepository 销售单仓库接口
type SalesOrderRepository interface {
	Create(ctx context.Context, order *model.ProductSalesOrder) error
	GetByID(ctx context.Context, id string) (*model.ProductSalesOrder, error)
	List(ctx context.Context, filter SalesOrderFilter, pq PageQuery) (*Page[model.ProductSalesOrder], error)
}

var salesOrderSortable = sortableColumns("created_at", "sales_date", "mall_name", "total_sales")

type salesOrderRepository struct {
	db *gorm.DB
}

// NewSalesOrderRepository 创建销售单仓库
func NewSalesOrderRepository(db *gorm.DB) SalesOrderRepository {
	return &salesOrderRepository{db: db}
}

func (r *salesOrderRepository) Create(ctx context.Context, order *model.ProductSalesOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *salesOrderRepository) GetByID(ctx context.Context, id string) (*model.ProductSalesOrder, error) {
	var order model.ProductSalesOrder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *salesOrderRepository) List(ctx context.Context, filter SalesOrderFilter, pq PageQuery) (*Page[model.ProductSalesOrder], error) {
	return FindPage[model.ProductSalesOrder](r.db.WithContext(ctx), MakeCondition(filter), pq, salesOrderSortable)
}
