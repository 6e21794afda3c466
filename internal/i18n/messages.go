package i18n

var messages = map[string]map[string]string{
	LocaleZH: {
		"error.bad_request":              "请求参数错误",
		"error.unauthorized":             "未登录或登录已失效",
		"error.forbidden":                "无权访问",
		"error.not_found":                "资源不存在",
		"error.too_many_requests":        "请求过于频繁，请稍后再试",
		"error.internal":                 "服务器内部错误",
		"error.token_invalid":            "登录凭证无效",
		"error.token_expired":            "登录凭证已过期",
		"error.auth_header_missing":      "缺少 Authorization 请求头",
		"error.auth_header_invalid":      "Authorization 格式错误",
		"error.jwt_secret_missing":       "服务端未配置 JWT 密钥",
		"error.rate_limited":             "操作过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable":   "限流服务暂不可用",
		"error.user_id_invalid":          "用户ID无效",
		"error.user_id_type_invalid":     "用户ID类型错误",
		"error.order_id_invalid":         "订单ID无效",
		"error.item_id_invalid":          "商品ID无效",
		"error.validation":               "参数校验失败",
		"error.payment_method_invalid":   "不支持的支付方式",
		"error.quantity_invalid":         "购买数量无效",
		"error.cart_empty":               "购物车为空",
		"error.cart_item_not_found":      "购物车中没有该商品",
		"error.cart_update_failed":       "购物车更新失败",
		"error.cart_fetch_failed":        "购物车获取失败",
		"error.catalog_item_unavailable": "商品已下架或不可购买",
		"error.catalog_item_not_found":   "商品不存在",
		"error.checkout_failed":          "下单失败，请稍后再试",
		"error.order_not_found":          "订单不存在",
		"error.order_fetch_failed":       "订单获取失败",
		"error.order_status_invalid":     "订单状态不允许该操作",
		"error.fulfillment_in_progress":  "订单正在交付中，请稍后再试",
		"error.fulfillment_failed":       "订单交付失败",
		"error.reconcile_failed":         "批量对账失败",
		"error.code_generate_failed":     "兑换码生成失败",
		"error.notification_failed":      "通知发送失败",
	},
	LocaleEN: {
		"error.bad_request":              "Invalid request parameters",
		"error.unauthorized":             "Not signed in or session expired",
		"error.forbidden":                "Access denied",
		"error.not_found":                "Resource not found",
		"error.too_many_requests":        "Too many requests, please try again later",
		"error.internal":                 "Internal server error",
		"error.token_invalid":            "Invalid credentials",
		"error.token_expired":            "Credentials expired",
		"error.auth_header_missing":      "Missing Authorization header",
		"error.auth_header_invalid":      "Malformed Authorization header",
		"error.jwt_secret_missing":       "JWT secret is not configured",
		"error.rate_limited":             "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":   "Rate limiter unavailable",
		"error.user_id_invalid":          "Invalid user id",
		"error.user_id_type_invalid":     "Invalid user id type",
		"error.order_id_invalid":         "Invalid order id",
		"error.item_id_invalid":          "Invalid item id",
		"error.validation":               "Validation failed",
		"error.payment_method_invalid":   "Unsupported payment method",
		"error.quantity_invalid":         "Invalid quantity",
		"error.cart_empty":               "Your cart is empty",
		"error.cart_item_not_found":      "Item is not in your cart",
		"error.cart_update_failed":       "Failed to update cart",
		"error.cart_fetch_failed":        "Failed to load cart",
		"error.catalog_item_unavailable": "Item is unavailable",
		"error.catalog_item_not_found":   "Item not found",
		"error.checkout_failed":          "Checkout failed, please try again later",
		"error.order_not_found":          "Order not found",
		"error.order_fetch_failed":       "Failed to load order",
		"error.order_status_invalid":     "Order status does not allow this action",
		"error.fulfillment_in_progress":  "Order is being fulfilled, please try again later",
		"error.fulfillment_failed":       "Order fulfillment failed",
		"error.reconcile_failed":         "Reconciliation failed",
		"error.code_generate_failed":     "Failed to generate codes",
		"error.notification_failed":      "Failed to send notification",
	},
}
