package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	TicketsCreated      prometheus.Counter
	BillsGenerated      prometheus.Counter
	SalesSettled        prometheus.Counter
	BroadcastFailures   *prometheus.CounterVec
	SessionSaveFailures prometheus.Counter
	AlertsPending       prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	tickets := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_kot_created_total"})
	bills := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_bills_generated_total"})
	sales := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_sales_settled_total"})
	broadcastFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "pos_broadcast_failures_total"},
		[]string{"path"},
	)
	saveFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "pos_session_save_failures_total"})
	alertsPending := prometheus.NewGauge(prometheus.GaugeOpts{Name: "pos_stock_alerts_pending"})

	r.MustRegister(tickets, bills, sales, broadcastFailures, saveFailures, alertsPending)

	return &Registry{
		reg:                 r,
		TicketsCreated:      tickets,
		BillsGenerated:      bills,
		SalesSettled:        sales,
		BroadcastFailures:   broadcastFailures,
		SessionSaveFailures: saveFailures,
		AlertsPending:       alertsPending,
	}
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
