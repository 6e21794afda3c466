package public

import (
	handlershared "github.com/gamecode-next/internal/http/handlers/shared"
	"github.com/gamecode-next/internal/http/response"
	"github.com/gamecode-next/internal/service"

	"github.com/gin-gonic/gin"
)

var cartErrorRules = []handlershared.MappedError{
	{Target: service.ErrValidation, Code: response.CodeBadRequest, Key: "error.validation"},
	{Target: service.ErrInvalidQuantity, Code: response.CodeBadRequest, Key: "error.quantity_invalid"},
	{Target: service.ErrCatalogItemUnavailable, Code: response.CodeBadRequest, Key: "error.catalog_item_unavailable"},
	{Target: service.ErrCatalogItemNotFound, Code: response.CodeNotFound, Key: "error.catalog_item_not_found"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Key: "error.cart_item_not_found"},
}

var checkoutErrorRules = []handlershared.MappedError{
	{Target: service.ErrInvalidPaymentMethod, Code: response.CodeBadRequest, Key: "error.payment_method_invalid"},
	{Target: service.ErrValidation, Code: response.CodeBadRequest, Key: "error.validation"},
	{Target: service.ErrEmptyCart, Code: response.CodeBadRequest, Key: "error.cart_empty"},
	{Target: service.ErrCatalogItemUnavailable, Code: response.CodeBadRequest, Key: "error.catalog_item_unavailable"},
	{Target: service.ErrInvalidQuantity, Code: response.CodeBadRequest, Key: "error.quantity_invalid"},
}

var orderQueryErrorRules = []handlershared.MappedError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
}

func respondCartError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_update_failed")
}

func respondCheckoutError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.checkout_failed")
}

func respondOrderQueryError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, orderQueryErrorRules, response.CodeInternal, "error.order_fetch_failed")
}
