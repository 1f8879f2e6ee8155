package service

import (
	"context"
	"time"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
	"pdd_wms_v1/pkg/logger"
)

// ==================== WorkflowService 发货流转服务 ====================
// 发货记录状态机：pending → distributed → warehoused
// 退货取件是并行的独立二元状态，只提供直接状态更新

// 状态机事件
const (
	EventConfirmPick  = "confirm_pick"  // 确认配货
	EventConfirmStock = "confirm_stock" // 确认入库
)

// newDeliveryFSM 以当前状态构造发货状态机
func newDeliveryFSM(initial string) *fsm.FSM {
	return fsm.NewFSM(
		initial,
		fsm.Events{
			{Name: EventConfirmPick, Src: []string{model.DeliveryStatePending}, Dst: model.DeliveryStateDistributed},
			{Name: EventConfirmStock, Src: []string{model.DeliveryStateDistributed}, Dst: model.DeliveryStateWarehoused},
		},
		fsm.Callbacks{},
	)
}

// WorkflowService 发货流转服务
type WorkflowService struct {
	deliveryRepo repository.DeliveryRepository
	returnRepo   repository.ReturnRepository
}

// NewWorkflowService 创建发货流转服务
func NewWorkflowService(deliveryRepo repository.DeliveryRepository, returnRepo repository.ReturnRepository) *WorkflowService {
	return &WorkflowService{deliveryRepo: deliveryRepo, returnRepo: returnRepo}
}

// ==================== 状态流转 ====================

// ConfirmPick 确认配货：pending → distributed
// 操作人工号追加进 operators（同一员工不重复）；
// 已配货的记录重复确认返回冲突，不会静默成功
func (s *WorkflowService) ConfirmPick(ctx context.Context, deliveryID string, employee *model.Employee) (*model.DailyDelivery, error) {
	return s.transition(ctx, deliveryID, employee, EventConfirmPick,
		"该记录已配货，请勿重复操作", s.deliveryRepo.MarkDistributed)
}

// ConfirmStock 确认入库：distributed → warehoused
// 与 ConfirmPick 对称
func (s *WorkflowService) ConfirmStock(ctx context.Context, deliveryID string, employee *model.Employee) (*model.DailyDelivery, error) {
	return s.transition(ctx, deliveryID, employee, EventConfirmStock,
		"该记录不满足入库条件，请勿重复操作", s.deliveryRepo.MarkWarehoused)
}

type markFunc = func(ctx context.Context, id string, operators model.StringList) (bool, error)

func (s *WorkflowService) transition(ctx context.Context, deliveryID string, employee *model.Employee, event, conflictMsg string, mark markFunc) (*model.DailyDelivery, error) {
	delivery, err := s.deliveryRepo.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, NewInternal(err)
	}
	if delivery == nil {
		return nil, NewNotFound("发货记录不存在")
	}

	machine := newDeliveryFSM(delivery.State())
	if err := machine.Event(ctx, event); err != nil {
		return nil, NewConflict(conflictMsg)
	}

	operators := delivery.Operators
	if !operators.Contains(employee.EmployeeNumber) {
		operators = append(operators, employee.EmployeeNumber)
	}

	// 带状态比较的条件更新：多进程部署下抢不到的一方拿到冲突而不是双赢
	ok, err := mark(ctx, deliveryID, operators)
	if err != nil {
		return nil, NewInternal(err)
	}
	if !ok {
		return nil, NewConflict(conflictMsg)
	}

	logger.L().Info("发货状态流转",
		zap.String("delivery", deliveryID),
		zap.String("event", event),
		zap.String("operator", employee.EmployeeNumber))

	return s.deliveryRepo.GetByID(ctx, deliveryID)
}

// ==================== 读侧查询 ====================

// normalizeDate 日期为空时取当天
func normalizeDate(date string) string {
	if date == "" {
		return time.Now().Format("2006-01-02")
	}
	return date
}

// TodayPendingList 当日未配货列表
func (s *WorkflowService) TodayPendingList(ctx context.Context, date string) ([]model.DailyDelivery, error) {
	deliveries, err := s.deliveryRepo.ListByDateAndDistribution(ctx, normalizeDate(date), model.DistributionPending)
	if err != nil {
		return nil, NewInternal(err)
	}
	return deliveries, nil
}

// TodayStockList 当日已配货列表（无论是否已入库）
func (s *WorkflowService) TodayStockList(ctx context.Context, date string) ([]model.DailyDelivery, error) {
	deliveries, err := s.deliveryRepo.ListByDateAndDistribution(ctx, normalizeDate(date), model.DistributionDone)
	if err != nil {
		return nil, NewInternal(err)
	}
	return deliveries, nil
}

// ListDeliveries 后台发货记录分页查询
func (s *WorkflowService) ListDeliveries(ctx context.Context, filter repository.DeliveryFilter, pq repository.PageQuery) (*repository.Page[model.DailyDelivery], error) {
	page, err := s.deliveryRepo.List(ctx, filter, pq)
	if err != nil {
		return nil, NewInternal(err)
	}
	return page, nil
}

// DashboardCounts 看板统计
type DashboardCounts struct {
	PendingPick   int64 `json:"pendingPick"`   // 待配货
	PendingStock  int64 `json:"pendingStock"`  // 待入库
	PendingReturn int64 `json:"pendingReturn"` // 待取件退货
}

// Dashboard 当日看板统计：待配货/待入库/待取件
func (s *WorkflowService) Dashboard(ctx context.Context, date string) (*DashboardCounts, error) {
	date = normalizeDate(date)

	pick, err := s.deliveryRepo.CountPendingPick(ctx, date)
	if err != nil {
		return nil, NewInternal(err)
	}
	stock, err := s.deliveryRepo.CountPendingStock(ctx, date)
	if err != nil {
		return nil, NewInternal(err)
	}
	ret, err := s.returnRepo.CountPending(ctx, date)
	if err != nil {
		return nil, NewInternal(err)
	}
	return &DashboardCounts{PendingPick: pick, PendingStock: stock, PendingReturn: ret}, nil
}

// ==================== 发货录入 ====================

// CheckDuplicates 批量查询已存在的 (商家,商品,日期) 三元组
// 返回已存在键的 merchantName|productName|deliveryDate 子集
func (s *WorkflowService) CheckDuplicates(ctx context.Context, keys []repository.DeliveryKey) ([]string, error) {
	for _, k := range keys {
		if k.MerchantName == "" || k.ProductName == "" || k.DeliveryDate == "" {
			return nil, NewValidation("去重键的商家名、商品名、日期均不能为空")
		}
	}
	existing, err := s.deliveryRepo.ExistingKeys(ctx, keys)
	if err != nil {
		return nil, NewInternal(err)
	}
	return existing, nil
}

// IngestResult 批量录入结果
type IngestResult struct {
	Created int      `json:"created"`
	Skipped []string `json:"skipped"` // 已存在被跳过的键
}

// IngestDeliveries 批量录入发货记录，已存在的三元组跳过
func (s *WorkflowService) IngestDeliveries(ctx context.Context, deliveries []model.DailyDelivery) (*IngestResult, error) {
	keys := make([]repository.DeliveryKey, 0, len(deliveries))
	for _, d := range deliveries {
		if d.MerchantName == "" || d.ProductName == "" || d.DeliveryDate == "" {
			return nil, NewValidation("发货记录的商家名、商品名、日期均不能为空")
		}
		keys = append(keys, repository.DeliveryKey{
			MerchantName: d.MerchantName,
			ProductName:  d.ProductName,
			DeliveryDate: d.DeliveryDate,
		})
	}

	existing, err := s.deliveryRepo.ExistingKeys(ctx, keys)
	if err != nil {
		return nil, NewInternal(err)
	}
	existingSet := make(map[string]struct{}, len(existing))
	for _, k := range existing {
		existingSet[k] = struct{}{}
	}

	toCreate := make([]model.DailyDelivery, 0, len(deliveries))
	seen := make(map[string]struct{}, len(deliveries))
	for _, d := range deliveries {
		key := d.DuplicateKey()
		if _, dup := existingSet[key]; dup {
			continue
		}
		// 同一批内的重复也只收第一条
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		toCreate = append(toCreate, d)
	}

	if err := s.deliveryRepo.BatchCreate(ctx, toCreate); err != nil {
		return nil, NewInternal(err)
	}
	return &IngestResult{Created: len(toCreate), Skipped: existing}, nil
}

// ==================== 退货子流程 ====================

// CreateReturn 创建退货明细
func (s *WorkflowService) CreateReturn(ctx context.Context, detail *model.ReturnDetail) (*model.ReturnDetail, error) {
	if detail.MerchantName == "" || detail.ProductName == "" {
		return nil, NewValidation("商家名和商品名不能为空")
	}
	if detail.ReturnDate == "" {
		detail.ReturnDate = time.Now().Format("2006-01-02")
	}
	detail.ID = ""
	if err := s.returnRepo.Create(ctx, detail); err != nil {
		return nil, NewInternal(err)
	}
	return detail, nil
}

// ListReturns 退货明细分页查询
func (s *WorkflowService) ListReturns(ctx context.Context, filter repository.ReturnFilter, pq repository.PageQuery) (*repository.Page[model.ReturnDetail], error) {
	page, err := s.returnRepo.List(ctx, filter, pq)
	if err != nil {
		return nil, NewInternal(err)
	}
	return page, nil
}

// DeleteReturn 删除退货明细
func (s *WorkflowService) DeleteReturn(ctx context.Context, returnID string) error {
	detail, err := s.returnRepo.GetByID(ctx, returnID)
	if err != nil {
		return NewInternal(err)
	}
	if detail == nil {
		return NewNotFound("退货明细不存在")
	}
	return s.returnRepo.Delete(ctx, returnID)
}

// UpdateRetrievalStatus 退货取件状态直接更新（0待取件/1已取件）
func (s *WorkflowService) UpdateRetrievalStatus(ctx context.Context, returnID string, status int) (*model.ReturnDetail, error) {
	if status != model.RetrievalPending && status != model.RetrievalDone {
		return nil, NewValidation("取件状态只能为0或1")
	}
	detail, err := s.returnRepo.Update(ctx, returnID, map[string]interface{}{"retrieval_status": status})
	if err != nil {
		return nil, NewInternal(err)
	}
	if detail == nil {
		return nil, NewNotFound("退货明细不存在")
	}
	return detail, nil
}
