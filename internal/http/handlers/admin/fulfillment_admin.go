package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	handlershared "github.com/gamecode-next/internal/http/handlers/shared"
	"github.com/gamecode-next/internal/http/response"
	"github.com/gamecode-next/internal/repository"
	"github.com/gamecode-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
)

// GenerateCodesRequest 批量生成兑换码请求
type GenerateCodesRequest struct {
	ItemType string `json:"item_type"`
	Count    int    `json:"count" binding:"omitempty,min=1,max=100"`
}

// ReconcileResponse 对账响应
type ReconcileResponse struct {
	Outcomes []service.ReconcileOutcome `json:"outcomes"`
	Errors   []string                   `json:"errors"`
}

// AdminFulfillOrder 手动触发订单交付（重试失败项）
func (h *Handler) AdminFulfillOrder(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseUintParam(c, "id", "error.order_id_invalid")
	if !ok {
		return
	}
	result, err := h.FulfillmentService.Fulfill(c.Request.Context(), orderID)
	if err != nil {
		respondFulfillError(c, err)
		return
	}
	requestLog(c).Infow("admin_fulfill_order",
		"admin_id", adminID,
		"order_id", orderID,
		"status", result.Status,
		"all_succeeded", result.AllSucceeded,
	)
	response.Success(c, result)
}

// AdminReconcile 立即执行一次批量对账
func (h *Handler) AdminReconcile(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	outcomes, err := h.ReconcileService.ReconcileAll(c.Request.Context())
	if err != nil && errors.Is(err, service.ErrReconcileListFailed) {
		respondError(c, response.CodeInternal, "error.reconcile_failed", err)
		return
	}
	resp := ReconcileResponse{Outcomes: outcomes, Errors: []string{}}
	for _, outcome := range outcomes {
		if outcome.Action == service.ReconcileActionError {
			resp.Errors = append(resp.Errors, fmt.Sprintf("order %d: %s", outcome.OrderID, outcome.Message))
		}
	}
	// 非订单级错误（中途取消、翻页失败）只给稳定文案
	for _, e := range multierr.Errors(err) {
		switch {
		case errors.Is(e, context.Canceled), errors.Is(e, context.DeadlineExceeded):
			resp.Errors = append(resp.Errors, "reconcile interrupted")
		case errors.Is(e, service.ErrReconcileListFailed):
			resp.Errors = append(resp.Errors, service.ErrReconcileListFailed.Error())
		}
	}
	if len(resp.Errors) > 0 {
		requestLog(c).Warnw("admin_reconcile_partial_failure", "admin_id", adminID, "errors", len(resp.Errors))
	}
	response.Success(c, resp)
}

// AdminGenerateCodes 预生成兑换码（不落库，用于人工发放）
func (h *Handler) AdminGenerateCodes(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	var req GenerateCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}
	codes := make([]string, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		code, err := h.CodeGenerator.Generate(strings.TrimSpace(req.ItemType))
		if err != nil {
			respondError(c, response.CodeInternal, "error.code_generate_failed", err)
			return
		}
		codes = append(codes, code)
	}
	response.Success(c, gin.H{"codes": codes})
}

// AdminSendConfirmation 重新发送订单确认通知
func (h *Handler) AdminSendConfirmation(c *gin.Context) {
	if _, ok := getAdminID(c); !ok {
		return
	}
	orderID, ok := handlershared.ParseUintParam(c, "id", "error.order_id_invalid")
	if !ok {
		return
	}
	result, err := h.NotificationService.SendOrderConfirmation(c.Request.Context(), orderID)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	response.Success(c, result)
}

// AdminListOrders 订单列表（可按状态、订单号、客户筛选）
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := handlershared.ReadPagination(c)
	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	}
	if raw := strings.TrimSpace(c.Query("customer_id")); raw != "" {
		customerID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
			return
		}
		filter.CustomerID = uint(customerID)
	}
	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	filter.CreatedFrom = createdFrom
	filter.CreatedTo = createdTo
	orders, total, err := h.OrderQueryService.ListOrders(filter)
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, handlershared.BuildPagination(page, pageSize, total))
}

// AdminGetOrder 订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	orderID, ok := handlershared.ParseUintParam(c, "id", "error.order_id_invalid")
	if !ok {
		return
	}
	order, err := h.OrderQueryService.GetOrder(orderID)
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.Success(c, order)
}

// AdminListNotifications 订单通知记录
func (h *Handler) AdminListNotifications(c *gin.Context) {
	orderID, ok := handlershared.ParseUintParam(c, "id", "error.order_id_invalid")
	if !ok {
		return
	}
	logs, err := h.OrderQueryService.ListNotifications(orderID)
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.Success(c, logs)
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
