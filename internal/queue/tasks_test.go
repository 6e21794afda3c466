package queue

import (
	"errors"
	"testing"
	"time"

	"github.com/gamecode-next/internal/config"
)

func TestOrderFulfillTaskRoundTrip(t *testing.T) {
	task, err := NewOrderFulfillTask(OrderFulfillPayload{OrderID: 12, Source: "reconcile"})
	if err != nil {
		t.Fatalf("create task failed: %v", err)
	}
	if task.Type() != TaskOrderFulfill {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	payload, err := ParseOrderFulfillPayload(task.Payload())
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.OrderID != 12 || payload.Source != "reconcile" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestParsePayloadRejectsZeroOrder(t *testing.T) {
	if _, err := ParseOrderConfirmationPayload([]byte(`{"order_id":0}`)); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
	if _, err := ParseOrderFulfillPayload([]byte(`not-json`)); err == nil {
		t.Fatalf("expected json error")
	}
}

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueOrderFulfill(OrderFulfillPayload{OrderID: 1}, time.Second); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.EnqueueOrderConfirmation(OrderConfirmationPayload{OrderID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatalf("nil client should be disabled")
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr: %s", opt.Addr)
	}
	if cfg.Concurrency != 10 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}
