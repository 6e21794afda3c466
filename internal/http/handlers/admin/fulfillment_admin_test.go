package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gamecode-next/internal/config"
	"github.com/gamecode-next/internal/constants"
	"github.com/gamecode-next/internal/models"
	"github.com/gamecode-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type adminResponse struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupAdminHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{Notify: config.NotifyConfig{Enabled: true}}
	return New(provider.Build(cfg, db, nil, nil)), db
}

func seedPaidOrder(t *testing.T, db *gorm.DB, stock int) (*models.Order, models.CatalogItem) {
	t.Helper()
	customer := models.Customer{Email: fmt.Sprintf("admin_%d@example.com", time.Now().UnixNano())}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	item := models.CatalogItem{Name: "520 Diamonds", ItemType: "free_fire", Price: models.MustMoney("4.99"), StockCount: stock, IsActive: true}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create catalog item failed: %v", err)
	}
	order := &models.Order{
		OrderNo:     fmt.Sprintf("GC-ADMIN-%d", time.Now().UnixNano()),
		CustomerID:  customer.ID,
		Status:      constants.OrderStatusPending,
		TotalAmount: item.Price,
		Items: []models.OrderItem{{
			CatalogItemID: item.ID,
			ItemName:      item.Name,
			ItemType:      item.ItemType,
			Quantity:      1,
			UnitPrice:     item.Price,
			Status:        constants.OrderItemStatusPending,
		}},
		Payment: &models.Payment{
			Method: constants.PaymentMethodCreditCard,
			Amount: item.Price,
			Status: constants.PaymentStatusCompleted,
		},
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order, item
}

func callAdmin(t *testing.T, handler gin.HandlerFunc, method string, params gin.Params, body string) adminResponse {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/api/v1/admin/fulfillment", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	c.Set("admin_id", uint(1))
	handler(c)

	var resp adminResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

func idParam(id uint) gin.Params {
	return gin.Params{{Key: "id", Value: fmt.Sprintf("%d", id)}}
}

func TestAdminFulfillOrderRetriesAfterRestock(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	order, item := seedPaidOrder(t, db, 0)

	resp := callAdmin(t, h.AdminFulfillOrder, http.MethodPost, idParam(order.ID), "")
	if resp.StatusCode != 0 {
		t.Fatalf("fulfill failed: %d %s", resp.StatusCode, resp.Msg)
	}
	if !strings.Contains(string(resp.Data), constants.OrderStatusFailedFulfillment) {
		t.Fatalf("out of stock order should fail fulfillment: %s", resp.Data)
	}

	if err := db.Model(&models.CatalogItem{}).Where("id = ?", item.ID).Update("stock_count", 1).Error; err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	resp = callAdmin(t, h.AdminFulfillOrder, http.MethodPost, idParam(order.ID), "")
	var result struct {
		AllSucceeded bool   `json:"all_succeeded"`
		Status       string `json:"status"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		t.Fatalf("decode result failed: %v", err)
	}
	if !result.AllSucceeded || result.Status != constants.OrderStatusCompleted {
		t.Fatalf("retry should complete order: %+v", result)
	}

	resp = callAdmin(t, h.AdminListNotifications, http.MethodGet, idParam(order.ID), "")
	var logs []models.NotificationLog
	if err := json.Unmarshal(resp.Data, &logs); err != nil {
		t.Fatalf("decode logs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("confirmation should be sent once after first delivery, got %d", len(logs))
	}

	resp = callAdmin(t, h.AdminFulfillOrder, http.MethodPost, idParam(9999), "")
	if resp.StatusCode != 404 {
		t.Fatalf("missing order should be 404, got %d", resp.StatusCode)
	}
}

func TestAdminGenerateCodes(t *testing.T) {
	h, _ := setupAdminHandlerTest(t)

	resp := callAdmin(t, h.AdminGenerateCodes, http.MethodPost, nil, `{"item_type":"pubg","count":3}`)
	if resp.StatusCode != 0 {
		t.Fatalf("generate failed: %d %s", resp.StatusCode, resp.Msg)
	}
	var data struct {
		Codes []string `json:"codes"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode codes failed: %v", err)
	}
	if len(data.Codes) != 3 || !strings.HasPrefix(data.Codes[0], "PUBG-") {
		t.Fatalf("unexpected codes: %v", data.Codes)
	}

	resp = callAdmin(t, h.AdminGenerateCodes, http.MethodPost, nil, `{"item_type":"pubg","count":101}`)
	if resp.StatusCode != 400 {
		t.Fatalf("oversized batch should be 400, got %d", resp.StatusCode)
	}
}

func TestAdminReconcileAndListOrders(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	seedPaidOrder(t, db, 1)
	seedPaidOrder(t, db, 0)

	resp := callAdmin(t, h.AdminReconcile, http.MethodPost, nil, "")
	if resp.StatusCode != 0 {
		t.Fatalf("reconcile failed: %d %s", resp.StatusCode, resp.Msg)
	}
	var data ReconcileResponse
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode reconcile failed: %v", err)
	}
	if len(data.Outcomes) != 2 || len(data.Errors) != 0 {
		t.Fatalf("unexpected reconcile response: %+v", data)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/admin/fulfillment/orders?status=completed", nil)
	h.AdminListOrders(c)
	var page struct {
		StatusCode int            `json:"status_code"`
		Data       []models.Order `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page failed: %v", err)
	}
	if page.StatusCode != 0 || page.Pagination.Total != 1 || len(page.Data) != 1 {
		t.Fatalf("expected one completed order, got %+v", page)
	}
}

func TestAdminListOrdersCreatedRange(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	seedPaidOrder(t, db, 1)

	list := func(query string) (int, int64) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/admin/fulfillment/orders?"+query, nil)
		h.AdminListOrders(c)
		var page struct {
			StatusCode int `json:"status_code"`
			Pagination struct {
				Total int64 `json:"total"`
			} `json:"pagination"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
			t.Fatalf("decode page failed: %v", err)
		}
		return page.StatusCode, page.Pagination.Total
	}

	if code, _ := list("created_from=yesterday"); code != 400 {
		t.Fatalf("malformed created_from should be 400, got %d", code)
	}
	future := time.Now().Add(time.Hour).Format(time.RFC3339)
	if code, total := list("created_from=" + url.QueryEscape(future)); code != 0 || total != 0 {
		t.Fatalf("future created_from should match nothing, got code=%d total=%d", code, total)
	}
	past := time.Now().Add(-time.Hour).Format(time.RFC3339)
	if code, total := list("created_from=" + url.QueryEscape(past)); code != 0 || total != 1 {
		t.Fatalf("past created_from should match the order, got code=%d total=%d", code, total)
	}
}
