package service

import "errors"

// 输入校验
var (
	ErrValidation             = errors.New("validation failed")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrCatalogItemUnavailable = errors.New("catalog item unavailable")
)

// 认证
var (
	ErrTokenInvalid      = errors.New("token invalid")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenRoleMismatch = errors.New("token role mismatch")
	ErrJWTSecretMissing  = errors.New("jwt secret missing")
)

// 资源不存在
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrCatalogItemNotFound = errors.New("catalog item not found")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrCustomerNotFound    = errors.New("customer not found")
)

// 状态冲突
var (
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrFulfillmentInProgress = errors.New("fulfillment already in progress")
	ErrOrderStatusInvalid    = errors.New("order status invalid")
	ErrPaymentNotCompleted   = errors.New("payment not completed")
)

// 内部错误
var (
	ErrCheckoutFailed       = errors.New("checkout failed")
	ErrPaymentSettleFailed  = errors.New("payment settle failed")
	ErrTransactionFailed    = errors.New("transaction failed")
	ErrFulfillmentAborted   = errors.New("fulfillment aborted")
	ErrAccountCreditFailed  = errors.New("account credit failed")
	ErrNotificationFailed   = errors.New("notification failed")
	ErrOrderFetchFailed     = errors.New("order fetch failed")
	ErrOrderUpdateFailed    = errors.New("order update failed")
	ErrCartUpdateFailed     = errors.New("cart update failed")
	ErrReconcileListFailed  = errors.New("reconcile list failed")
	ErrNotificationDisabled = errors.New("notification disabled")
)

// publicErrors 可直接展示给调用方的稳定错误
var publicErrors = []error{
	ErrOrderNotFound,
	ErrFulfillmentInProgress,
	ErrPaymentNotCompleted,
	ErrOrderFetchFailed,
	ErrOrderUpdateFailed,
	ErrFulfillmentAborted,
	ErrOrderStatusInvalid,
}

// publicMessage 把内部错误收敛为稳定文案，原始错误只进日志
func publicMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, known := range publicErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return ErrTransactionFailed.Error()
}
