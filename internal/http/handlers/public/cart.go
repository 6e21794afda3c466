package public

import (
	handlershared "github.com/gamecode-next/internal/http/handlers/shared"
	"github.com/gamecode-next/internal/http/response"
	"github.com/gamecode-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	CatalogItemID   uint    `json:"catalog_item_id" binding:"required"`
	Quantity        int     `json:"quantity" binding:"required"`
	TargetAccountID *string `json:"target_account_id"`
}

// UpdateCartItemRequest 修改数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.CartService.List(uid)
	if err != nil {
		handlershared.RespondMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_fetch_failed")
		return
	}
	response.Success(c, view)
}

// AddCartItem 加购；同一商品累加数量
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.CartService.AddItem(service.AddCartItemInput{
		CustomerID:      uid,
		CatalogItemID:   req.CatalogItemID,
		Quantity:        req.Quantity,
		TargetAccountID: req.TargetAccountID,
	}); err != nil {
		respondCartError(c, err)
		return
	}
	h.respondCart(c, uid)
}

// UpdateCartItem 修改购物车数量，<=0 视为移除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := handlershared.ParseUintParam(c, "item_id", "error.item_id_invalid")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.CartService.UpdateQuantity(uid, itemID, req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	h.respondCart(c, uid)
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := handlershared.ParseUintParam(c, "item_id", "error.item_id_invalid")
	if !ok {
		return
	}
	if err := h.CartService.RemoveItem(uid, itemID); err != nil {
		respondCartError(c, err)
		return
	}
	h.respondCart(c, uid)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondCartError(c, err)
		return
	}
	h.respondCart(c, uid)
}

func (h *Handler) respondCart(c *gin.Context, uid uint) {
	view, err := h.CartService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, view)
}
