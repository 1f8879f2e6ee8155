package task

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"pdd_wms_v1/internal/repository"
	"pdd_wms_v1/internal/service"
	"pdd_wms_v1/pkg/logger"
)

// ==================== 发货提醒定时任务 ====================

// DeliveryReminder 每日发货提醒任务
// 对开启了群通知的商家，汇总当日未配货数量并推送到商家群
type DeliveryReminder struct {
	cron         *cron.Cron
	spec         string
	workflowSvc  *service.WorkflowService
	notifySvc    *service.NotifyService
	merchantRepo repository.MerchantRepository
}

// NewDeliveryReminder 创建每日发货提醒任务
func NewDeliveryReminder(spec string, workflowSvc *service.WorkflowService, notifySvc *service.NotifyService, merchantRepo repository.MerchantRepository) *DeliveryReminder {
	return &DeliveryReminder{
		cron:         cron.New(cron.WithSeconds()),
		spec:         spec,
		workflowSvc:  workflowSvc,
		notifySvc:    notifySvc,
		merchantRepo: merchantRepo,
	}
}

// Start 注册并启动定时任务
func (t *DeliveryReminder) Start() error {
	if _, err := t.cron.AddFunc(t.spec, t.Run); err != nil {
		return fmt.Errorf("注册发货提醒任务失败: %w", err)
	}
	t.cron.Start()
	logger.L().Info("发货提醒任务已启动", zap.String("spec", t.spec))
	return nil
}

// Stop 停止定时任务，等待在跑的任务结束
func (t *DeliveryReminder) Stop() {
	<-t.cron.Stop().Done()
}

// Run 执行一次提醒
// 单个商家推送失败只记日志，不影响其他商家
func (t *DeliveryReminder) Run() {
	ctx := context.Background()

	pending, err := t.workflowSvc.TodayPendingList(ctx, "")
	if err != nil {
		logger.L().Error("查询当日待配货失败", zap.Error(err))
		return
	}
	if len(pending) == 0 {
		return
	}

	counts := make(map[string]int)
	for _, d := range pending {
		counts[d.MerchantName]++
	}

	merchants, err := t.merchantRepo.ListSendMessage(ctx)
	if err != nil {
		logger.L().Error("查询通知商家失败", zap.Error(err))
		return
	}

	for _, m := range merchants {
		count, ok := counts[m.Name]
		if !ok {
			continue
		}
		content := fmt.Sprintf("【发货提醒】%s 今日还有 %d 条发货记录未配货，请及时处理。", m.Name, count)
		if err := t.notifySvc.SendGroupMessage(ctx, m.GroupName, content, m.MentionList); err != nil {
			logger.L().Error("发货提醒推送失败",
				zap.String("merchant", m.Name),
				zap.String("group", m.GroupName),
				zap.Error(err))
		}
	}
}
