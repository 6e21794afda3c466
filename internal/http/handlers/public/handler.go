package public

import "github.com/gamecode-next/internal/provider"

// Handler 客户侧处理器：购物车、结算与本人订单查询
// 所有路由均要求客户令牌，user_id 由 CustomerJWTAuthMiddleware 写入上下文。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
