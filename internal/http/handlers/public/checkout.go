package public

import (
	"github.com/gamecode-next/internal/http/response"
	"github.com/gamecode-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// Checkout 购物车结算：建单、模拟扣款并同步交付
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	result, err := h.CheckoutService.Checkout(c.Request.Context(), service.CheckoutInput{
		CustomerID:    uid,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, result)
}
