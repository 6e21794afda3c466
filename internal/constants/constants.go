package constants

// 订单状态常量
const (
	OrderStatusPending            = "pending"
	OrderStatusProcessing         = "processing"
	OrderStatusPartiallyFulfilled = "partially_fulfilled"
	OrderStatusCompleted          = "completed"
	OrderStatusFailedFulfillment  = "failed_fulfillment"
	OrderStatusCancelled          = "cancelled"
)

// 订单项状态常量
const (
	OrderItemStatusPending   = "pending"
	OrderItemStatusFulfilled = "fulfilled"
	OrderItemStatusFailed    = "failed"
)

// 支付状态常量
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// 支付方式常量
const (
	PaymentMethodCreditCard = "credit_card"
	PaymentMethodPaypal     = "paypal"
)

// 交付方式常量
const (
	DeliveryModeCode          = "code"
	DeliveryModeAccountCredit = "account_credit"
)

// 交付失败原因
const (
	FulfillmentReasonInsufficientStock = "insufficient_stock"
	FulfillmentReasonCatalogMissing    = "catalog_item_missing"
	FulfillmentReasonCreditFailed      = "account_credit_failed"
)

// 通知相关常量
const (
	NotificationChannelLog   = "log"
	NotificationStatusSent   = "sent"
	NotificationStatusFailed = "failed"
)

// 兑换码相关常量
const (
	CodeDefaultPrefix = "CODE"
	CodePrefixLength  = 4
	CodeGroupCount    = 4
	CodeGroupLength   = 4
	CodeAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CodeTimeLayout    = "0601021504"
)

// 用户角色
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// 队列相关常量
const (
	QueueDefault = "default"

	TaskOrderFulfill      = "order:fulfill"
	TaskOrderConfirmation = "order:confirmation"
)
