package service

import (
	"context"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
)

// ==================== SalesOrderService 销售单服务 ====================

// SalesOrderService 销售单服务，写入来自外部采集端
type SalesOrderService struct {
	orderRepo repository.SalesOrderRepository
}

// NewSalesOrderService 创建销售单服务
func NewSalesOrderService(orderRepo repository.SalesOrderRepository) *SalesOrderService {
	return &SalesOrderService{orderRepo: orderRepo}
}

// Create 创建销售单
func (s *SalesOrderService) Create(ctx context.Context, order *model.ProductSalesOrder) (*model.ProductSalesOrder, error) {
	if order.MallID == "" || order.GoodsID == "" {
		return nil, NewValidation("店铺 ID 和商品 ID 均不能为空")
	}
	order.ID = ""
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, NewInternal(err)
	}
	return order, nil
}

// Get 查询销售单
func (s *SalesOrderService) Get(ctx context.Context, id string) (*model.ProductSalesOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternal(err)
	}
	if order == nil {
		return nil, NewNotFound("销售单不存在")
	}
	return order, nil
}

// List 分页查询销售单
func (s *SalesOrderService) List(ctx context.Context, filter repository.SalesOrderFilter, pq repository.PageQuery) (*repository.Page[model.ProductSalesOrder], error) {
	page, err := s.orderRepo.List(ctx, filter, pq)
	if err != nil {
		return nil, NewInternal(err)
	}
	return page, nil
}
