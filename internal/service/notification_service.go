package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gamecode-next/internal/constants"
	"github.com/gamecode-next/internal/logger"
	"github.com/gamecode-next/internal/metrics"
	"github.com/gamecode-next/internal/models"
	"github.com/gamecode-next/internal/queue"
	"github.com/gamecode-next/internal/repository"
)

const defaultNotifyTimeout = 3 * time.Second

// NotificationMessage 通知内容
type NotificationMessage struct {
	OrderID   uint
	Sender    string
	Recipient string
	Subject   string
	Body      string
}

// NotificationChannel 通知通道
type NotificationChannel interface {
	Name() string
	Send(ctx context.Context, msg NotificationMessage) error
}

// LogNotificationChannel 以结构化日志模拟邮件发送
type LogNotificationChannel struct{}

// Name 通道名称
func (LogNotificationChannel) Name() string {
	return constants.NotificationChannelLog
}

// Send 写日志代替真实投递
func (LogNotificationChannel) Send(ctx context.Context, msg NotificationMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(msg.Recipient) == "" {
		return fmt.Errorf("%w: empty recipient", ErrNotificationFailed)
	}
	logger.Infow("order_confirmation_email_simulated",
		"order_id", msg.OrderID,
		"from", msg.Sender,
		"to", msg.Recipient,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}

// NotificationResult 通知结果
type NotificationResult struct {
	OrderID   uint   `json:"order_id"`
	Sent      bool   `json:"sent"`
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	Detail    string `json:"detail,omitempty"`
}

// NotificationOptions 通知配置
type NotificationOptions struct {
	Enabled bool
	Sender  string
	Timeout time.Duration
}

// NotificationService 订单确认通知服务
type NotificationService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	logRepo      repository.NotificationLogRepository
	channel      NotificationChannel
	queueClient  *queue.Client
	options      NotificationOptions
	metrics      *metrics.Pipeline
}

// NewNotificationService 创建通知服务
func NewNotificationService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	logRepo repository.NotificationLogRepository,
	channel NotificationChannel,
	queueClient *queue.Client,
	options NotificationOptions,
	pipeline *metrics.Pipeline,
) *NotificationService {
	if channel == nil {
		channel = LogNotificationChannel{}
	}
	if options.Timeout <= 0 {
		options.Timeout = defaultNotifyTimeout
	}
	return &NotificationService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		logRepo:      logRepo,
		channel:      channel,
		queueClient:  queueClient,
		options:      options,
		metrics:      pipeline,
	}
}

// DispatchOrderConfirmation 投递确认通知：队列可用时异步，否则同步且受超时约束；失败只记录日志
func (s *NotificationService) DispatchOrderConfirmation(ctx context.Context, orderID uint) {
	if !s.options.Enabled {
		return
	}
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueOrderConfirmation(queue.OrderConfirmationPayload{OrderID: orderID})
		if err == nil {
			return
		}
		logger.Warnw("order_confirmation_enqueue_failed", "order_id", orderID, "error", err)
	}
	result, err := s.SendOrderConfirmation(ctx, orderID)
	if err != nil {
		logger.Warnw("order_confirmation_send_failed", "order_id", orderID, "error", err)
		return
	}
	if !result.Sent {
		logger.Warnw("order_confirmation_not_sent", "order_id", orderID, "detail", result.Detail)
	}
}

// SendOrderConfirmation 发送订单确认通知；投递失败返回 sent=false，不影响订单状态
func (s *NotificationService) SendOrderConfirmation(ctx context.Context, orderID uint) (*NotificationResult, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	result := &NotificationResult{OrderID: orderID, Channel: s.channel.Name()}
	if !s.options.Enabled {
		result.Detail = ErrNotificationDisabled.Error()
		return result, nil
	}

	customer, err := s.customerRepo.GetByID(order.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	if customer == nil {
		result.Detail = ErrCustomerNotFound.Error()
		s.record(result)
		return result, nil
	}
	result.Recipient = customer.Email

	msg := NotificationMessage{
		OrderID:   order.ID,
		Sender:    s.options.Sender,
		Recipient: customer.Email,
		Subject:   fmt.Sprintf("Order Confirmation - Order #%s", order.OrderNo),
		Body:      BuildConfirmationBody(order, customer),
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.options.Timeout)
	defer cancel()
	if err := s.channel.Send(sendCtx, msg); err != nil {
		result.Detail = err.Error()
		s.record(result)
		return result, nil
	}
	result.Sent = true
	s.record(result)
	return result, nil
}

func (s *NotificationService) record(result *NotificationResult) {
	status := constants.NotificationStatusFailed
	if result.Sent {
		status = constants.NotificationStatusSent
	}
	s.metrics.ObserveNotification(result.Channel, status)
	if s.logRepo == nil {
		return
	}
	entry := &models.NotificationLog{
		OrderID:   result.OrderID,
		Channel:   result.Channel,
		Recipient: result.Recipient,
		Status:    status,
		Detail:    result.Detail,
		CreatedAt: time.Now(),
	}
	if err := s.logRepo.Create(entry); err != nil {
		logger.Warnw("notification_log_write_failed", "order_id", result.OrderID, "error", err)
	}
}

// BuildConfirmationBody 生成确认通知正文
func BuildConfirmationBody(order *models.Order, customer *models.Customer) string {
	name := strings.TrimSpace(customer.DisplayName)
	if name == "" {
		name = customer.Email
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", name)
	fmt.Fprintf(&b, "Thank you for your purchase! Your order #%s has been processed.\n\n", order.OrderNo)
	b.WriteString("Order details:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s x%d: %s\n", item.ItemName, item.Quantity, itemDeliveryLine(item))
	}
	fmt.Fprintf(&b, "\nTotal: $%s\n", order.TotalAmount.String())
	return b.String()
}

func itemDeliveryLine(item models.OrderItem) string {
	switch {
	case item.IssuedCode != nil && *item.IssuedCode != "":
		return "Code: " + *item.IssuedCode
	case item.Status == constants.OrderItemStatusFulfilled && item.HasTargetAccount():
		return "Credited to account " + *item.TargetAccountID
	case item.Status == constants.OrderItemStatusFailed:
		return "not yet delivered, we will retry shortly"
	default:
		return "no code required"
	}
}
