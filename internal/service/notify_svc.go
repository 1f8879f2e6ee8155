package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"pdd_wms_v1/pkg/logger"
)

// ==================== NotifyService 群通知服务 ====================
// 系统唯一的出站调用：向外部消息网关推送群消息
// 发送失败返回统一的发送错误，不在本层重试

// NotifyService 群通知服务
type NotifyService struct {
	client     *resty.Client
	gatewayURL string
	enabled    bool
}

// NewNotifyService 创建群通知服务
func NewNotifyService(gatewayURL string, enabled bool) *NotifyService {
	client := resty.New()
	client.SetTimeout(10 * time.Second)
	return &NotifyService{
		client:     client,
		gatewayURL: gatewayURL,
		enabled:    enabled,
	}
}

// groupMessage 网关请求体
type groupMessage struct {
	GroupName     string   `json:"groupName"`
	Content       string   `json:"content"`
	MentionedList []string `json:"mentionedList,omitempty"`
}

// SendGroupMessage 发送群消息
// group: 目标群名称；mentions: 可选@名单
func (s *NotifyService) SendGroupMessage(ctx context.Context, group, content string, mentions []string) error {
	if !s.enabled || s.gatewayURL == "" {
		logger.L().Debug("群通知未启用，跳过发送", zap.String("group", group))
		return nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(&groupMessage{GroupName: group, Content: content, MentionedList: mentions}).
		Post(s.gatewayURL)
	if err != nil {
		return NewInternal(fmt.Errorf("群消息发送失败: %w", err))
	}
	if resp.StatusCode() >= 300 {
		return NewInternal(fmt.Errorf("群消息发送失败: 网关返回 %d", resp.StatusCode()))
	}
	return nil
}
