package admin

import (
	handlershared "github.com/gamecode-next/internal/http/handlers/shared"
	"github.com/gamecode-next/internal/http/response"
	"github.com/gamecode-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

var fulfillErrorRules = []handlershared.MappedError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrFulfillmentInProgress, Code: response.CodeConflict, Key: "error.fulfillment_in_progress"},
}

var orderQueryErrorRules = []handlershared.MappedError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
}

func respondFulfillError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, fulfillErrorRules, response.CodeInternal, "error.fulfillment_failed")
}

func respondNotificationError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, orderQueryErrorRules, response.CodeInternal, "error.notification_failed")
}

func respondOrderQueryError(c *gin.Context, err error) {
	handlershared.RespondMappedError(c, err, orderQueryErrorRules, response.CodeInternal, "error.order_fetch_failed")
}
