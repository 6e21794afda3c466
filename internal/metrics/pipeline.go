package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gamecode"

// Pipeline 下单交付链路指标，nil 接收者上的调用均为空操作
type Pipeline struct {
	checkouts           *prometheus.CounterVec
	fulfillmentPasses   *prometheus.CounterVec
	fulfillmentItems    *prometheus.CounterVec
	fulfillmentDuration prometheus.Histogram
	reconcileOrders     *prometheus.CounterVec
	reconcileRuns       *prometheus.CounterVec
	notifications       *prometheus.CounterVec
}

// NewPipeline 注册并返回链路指标；registerer 为空时使用默认注册器
func NewPipeline(registerer prometheus.Registerer) *Pipeline {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &Pipeline{
		checkouts: registerCounterVec(registerer, prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Checkout attempts by result",
		}, []string{"result"}),
		fulfillmentPasses: registerCounterVec(registerer, prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fulfillment_passes_total",
			Help:      "Fulfillment passes by resulting order status",
		}, []string{"status"}),
		fulfillmentItems: registerCounterVec(registerer, prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fulfillment_items_total",
			Help:      "Fulfilled or failed order items by reason",
		}, []string{"status", "reason"}),
		fulfillmentDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fulfillment_pass_duration_seconds",
			Help:      "Duration of a single fulfillment pass",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		reconcileOrders: registerCounterVec(registerer, prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_orders_total",
			Help:      "Orders visited by the batch reconciler by outcome",
		}, []string{"outcome"}),
		reconcileRuns: registerCounterVec(registerer, prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_runs_total",
			Help:      "Batch reconciler runs by result",
		}, []string{"result"}),
		notifications: registerCounterVec(registerer, prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Order confirmation dispatches by channel and status",
		}, []string{"channel", "status"}),
	}
}

// ObserveCheckout 记录一次结算
func (p *Pipeline) ObserveCheckout(result string) {
	if p == nil {
		return
	}
	p.checkouts.WithLabelValues(result).Inc()
}

// ObserveFulfillmentPass 记录一次交付过程及耗时
func (p *Pipeline) ObserveFulfillmentPass(status string, duration time.Duration) {
	if p == nil {
		return
	}
	p.fulfillmentPasses.WithLabelValues(status).Inc()
	p.fulfillmentDuration.Observe(duration.Seconds())
}

// ObserveFulfillmentItem 记录订单项交付结果
func (p *Pipeline) ObserveFulfillmentItem(status, reason string) {
	if p == nil {
		return
	}
	p.fulfillmentItems.WithLabelValues(status, reason).Inc()
}

// ObserveReconcileOrder 记录对账中单个订单的结果
func (p *Pipeline) ObserveReconcileOrder(outcome string) {
	if p == nil {
		return
	}
	p.reconcileOrders.WithLabelValues(outcome).Inc()
}

// ObserveReconcileRun 记录一次批量对账
func (p *Pipeline) ObserveReconcileRun(failed bool) {
	if p == nil {
		return
	}
	result := "success"
	if failed {
		result = "error"
	}
	p.reconcileRuns.WithLabelValues(result).Inc()
}

// ObserveNotification 记录一次通知发送
func (p *Pipeline) ObserveNotification(channel, status string) {
	if p == nil {
		return
	}
	p.notifications.WithLabelValues(channel, status).Inc()
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}
