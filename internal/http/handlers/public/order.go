package public

import (
	handlershared "github.com/gamecode-next/internal/http/handlers/shared"
	"github.com/gamecode-next/internal/http/response"
	"github.com/gamecode-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListOrders 客户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ReadPagination(c)
	orders, total, err := h.OrderQueryService.ListOrders(repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: uid,
		Status:     c.Query("status"),
	})
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, handlershared.BuildPagination(page, pageSize, total))
}

// GetOrder 客户订单详情（含交付结果）
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseUintParam(c, "id", "error.order_id_invalid")
	if !ok {
		return
	}
	order, err := h.OrderQueryService.GetCustomerOrder(uid, orderID)
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.Success(c, order)
}
