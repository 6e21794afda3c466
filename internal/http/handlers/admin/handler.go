package admin

import "github.com/gamecode-next/internal/provider"

// Handler 履约后台处理器：手动交付、批量对账、确认通知重发与订单排查
// 鉴权由路由层 AdminJWTAuthMiddleware 完成，处理器只读取 admin_id 记录操作人。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
