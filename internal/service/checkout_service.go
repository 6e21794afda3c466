package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"time"

	"github.com/gamecode-next/internal/constants"
	"github.com/gamecode-next/internal/logger"
	"github.com/gamecode-next/internal/metrics"
	"github.com/gamecode-next/internal/models"
	"github.com/gamecode-next/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutInput 结算输入
type CheckoutInput struct {
	CustomerID    uint   `json:"customer_id" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required,payment_method"`
}

// CheckoutResult 结算结果
type CheckoutResult struct {
	OrderID       uint               `json:"order_id"`
	OrderNo       string             `json:"order_no"`
	TotalAmount   models.Money       `json:"total_amount"`
	PaymentStatus string             `json:"payment_status"`
	TransactionID string             `json:"transaction_id,omitempty"`
	Fulfillment   *FulfillmentResult `json:"fulfillment,omitempty"`
}

// Fulfiller 交付入口
type Fulfiller interface {
	Fulfill(ctx context.Context, orderID uint) (*FulfillmentResult, error)
}

// CheckoutService 结算编排：购物车 -> 订单 + 支付 -> 模拟扣款 -> 交付
type CheckoutService struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	fulfiller   Fulfiller
	validate    *validator.Validate
	metrics     *metrics.Pipeline
	now         func() time.Time
}

// NewCheckoutService 创建结算服务；paymentMethods 为空时使用默认支付方式
func NewCheckoutService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	fulfiller Fulfiller,
	paymentMethods []string,
	pipeline *metrics.Pipeline,
) *CheckoutService {
	return &CheckoutService{
		db:          db,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		fulfiller:   fulfiller,
		validate:    newCheckoutValidator(paymentMethods),
		metrics:     pipeline,
		now:         time.Now,
	}
}

func newCheckoutValidator(paymentMethods []string) *validator.Validate {
	allowed := make(map[string]struct{})
	for _, method := range paymentMethods {
		if trimmed := strings.TrimSpace(method); trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}
	if len(allowed) == 0 {
		allowed[constants.PaymentMethodCreditCard] = struct{}{}
		allowed[constants.PaymentMethodPaypal] = struct{}{}
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	})
	return v
}

// validateInput 校验输入，支付方式错误单独返回 ErrInvalidPaymentMethod
func (s *CheckoutService) validateInput(input CheckoutInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			if fe.Tag() == "payment_method" {
				return fmt.Errorf("%w: %s", ErrInvalidPaymentMethod, input.PaymentMethod)
			}
			fields = append(fields, fe.Field()+" "+fe.Tag())
		}
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// Checkout 将购物车原子地转换为订单与支付记录，随后模拟扣款并同步交付
func (s *CheckoutService) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	input.PaymentMethod = strings.TrimSpace(input.PaymentMethod)
	if err := s.validateInput(input); err != nil {
		s.metrics.ObserveCheckout("invalid")
		return nil, err
	}

	var (
		order   *models.Order
		payment *models.Payment
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := s.cartRepo.WithTx(tx).ListByCustomer(input.CustomerID)
		if err != nil {
			return fmt.Errorf("%w: load cart: %v", ErrCheckoutFailed, err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		items, total, err := buildOrderItems(lines)
		if err != nil {
			return err
		}
		order = &models.Order{
			OrderNo:     generateOrderNo(s.now()),
			CustomerID:  input.CustomerID,
			Status:      constants.OrderStatusPending,
			TotalAmount: models.NewMoneyFromDecimal(total),
		}
		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return fmt.Errorf("%w: create order: %v", ErrCheckoutFailed, err)
		}
		payment = &models.Payment{
			OrderID: order.ID,
			Method:  input.PaymentMethod,
			Amount:  order.TotalAmount,
			Status:  constants.PaymentStatusPending,
		}
		if err := s.paymentRepo.WithTx(tx).Create(payment); err != nil {
			return fmt.Errorf("%w: create payment: %v", ErrCheckoutFailed, err)
		}
		if err := s.cartRepo.WithTx(tx).ClearByCustomer(input.CustomerID); err != nil {
			return fmt.Errorf("%w: clear cart: %v", ErrCheckoutFailed, err)
		}
		return nil
	})
	if err != nil {
		s.metrics.ObserveCheckout(checkoutFailureLabel(err))
		if errors.Is(err, ErrEmptyCart) || errors.Is(err, ErrCatalogItemUnavailable) ||
			errors.Is(err, ErrInvalidQuantity) || errors.Is(err, ErrCheckoutFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}
	s.metrics.ObserveCheckout("success")
	logger.Infow("checkout_order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"customer_id", input.CustomerID,
		"total_amount", order.TotalAmount.String(),
		"items", len(order.Items),
	)

	result := &CheckoutResult{
		OrderID:       order.ID,
		OrderNo:       order.OrderNo,
		TotalAmount:   order.TotalAmount,
		PaymentStatus: constants.PaymentStatusPending,
	}
	transactionID, err := s.settlePayment(order, payment)
	if err != nil {
		logger.Errorw("checkout_payment_settle_failed", "order_id", order.ID, "error", err)
		// 扣款结果未知时标记失败，订单停留在 pending，由人工处理
		if rows, markErr := s.paymentRepo.MarkFailed(payment.ID); markErr != nil {
			logger.Errorw("checkout_payment_mark_failed_error", "order_id", order.ID, "error", markErr)
		} else if rows > 0 {
			result.PaymentStatus = constants.PaymentStatusFailed
		}
		return result, nil
	}
	result.PaymentStatus = constants.PaymentStatusCompleted
	result.TransactionID = transactionID

	fulfillment, err := s.fulfiller.Fulfill(ctx, order.ID)
	if err != nil {
		logger.Warnw("checkout_fulfillment_failed", "order_id", order.ID, "error", err)
		return result, nil
	}
	result.Fulfillment = fulfillment
	return result, nil
}

// settlePayment 模拟支付网关扣款
func (s *CheckoutService) settlePayment(order *models.Order, payment *models.Payment) (string, error) {
	transactionID := fmt.Sprintf("SIM-%s-%s", order.OrderNo, uuid.NewString()[:8])
	rows, err := s.paymentRepo.MarkCompleted(payment.ID, transactionID, s.now())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPaymentSettleFailed, err)
	}
	if rows == 0 {
		return "", ErrPaymentSettleFailed
	}
	return transactionID, nil
}

// buildOrderItems 冻结单价并计算总额（2 位小数四舍五入）
func buildOrderItems(lines []models.CartItem) ([]models.OrderItem, decimal.Decimal, error) {
	items := make([]models.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		if line.CatalogItem == nil || !line.CatalogItem.IsActive {
			return nil, decimal.Zero, fmt.Errorf("%w: %d", ErrCatalogItemUnavailable, line.CatalogItemID)
		}
		if line.Quantity <= 0 {
			return nil, decimal.Zero, ErrInvalidQuantity
		}
		unitPrice := line.CatalogItem.Price
		total = total.Add(unitPrice.MulQuantity(line.Quantity))
		items = append(items, models.OrderItem{
			CatalogItemID:   line.CatalogItemID,
			ItemName:        line.CatalogItem.Name,
			ItemType:        line.CatalogItem.ItemType,
			Quantity:        line.Quantity,
			UnitPrice:       unitPrice,
			Status:          constants.OrderItemStatusPending,
			TargetAccountID: normalizeAccountID(line.TargetAccountID),
		})
	}
	return items, models.RoundAmount(total), nil
}

func normalizeAccountID(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func checkoutFailureLabel(err error) string {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrCatalogItemUnavailable), errors.Is(err, ErrInvalidQuantity):
		return "unavailable"
	default:
		return "error"
	}
}

func generateOrderNo(now time.Time) string {
	return fmt.Sprintf("GC%s%s", now.Format("20060102150405"), randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(n.String())
	}
	return b.String()
}
