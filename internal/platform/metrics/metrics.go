// Package metrics owns the prometheus collectors for the ledger and the HTTP layer.
// A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "splitledger"

// Collector groups every metric the service exports.
type Collector struct {
	registry *prometheus.Registry

	expensesAdded      *prometheus.CounterVec
	amountAccrued      *prometheus.CounterVec
	settlements        *prometheus.CounterVec
	expensesRetired    prometheus.Counter
	amountSettled      *prometheus.CounterVec
	consistencyErrors  *prometheus.CounterVec
	auditDiscrepancies prometheus.Counter
	groupConfirmPolls  prometheus.Histogram
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry, including the Go and process collectors.
func New() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		expensesAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "expenses_added_total",
			Help: "Expenses appended to the log.",
		}, []string{"currency"}),
		amountAccrued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "debt_accrued_total",
			Help: "Debt accrued on edges, in the smallest currency unit.",
		}, []string{"currency"}),
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "settlements_total",
			Help: "Settlement calls by kind and outcome.",
		}, []string{"kind", "outcome"}),
		expensesRetired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "expenses_retired_total",
			Help: "Expense shares retired by settlements.",
		}),
		amountSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "debt_settled_total",
			Help: "Debt retired by settlements, in the smallest currency unit.",
		}, []string{"method"}),
		consistencyErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "consistency_violations_total",
			Help: "Derived debt disagreeing with the expense and payment logs.",
		}, []string{"kind"}),
		auditDiscrepancies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "audit_discrepancies_total",
			Help: "Debt edges found to differ from their reconstruction.",
		}),
		groupConfirmPolls: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "group_confirm_polls",
			Help:    "Existence checks needed before a created group became visible.",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.expensesAdded, c.amountAccrued, c.settlements, c.expensesRetired, c.amountSettled,
		c.consistencyErrors, c.auditDiscrepancies, c.groupConfirmPolls,
		c.httpRequests, c.httpDuration,
	)
	return c
}

// Handler serves the registry in the prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

func (c *Collector) ExpenseAdded(currency string, participants int, share int64) {
	if c == nil {
		return
	}
	c.expensesAdded.WithLabelValues(currency).Inc()
	c.amountAccrued.WithLabelValues(currency).Add(float64(share) * float64(participants))
}

func (c *Collector) Settled(kind, method string, retired int, amount int64) {
	if c == nil {
		return
	}
	c.settlements.WithLabelValues(kind, "ok").Inc()
	c.expensesRetired.Add(float64(retired))
	c.amountSettled.WithLabelValues(method).Add(float64(amount))
}

func (c *Collector) SettlementFailed(kind, reason string) {
	if c == nil {
		return
	}
	c.settlements.WithLabelValues(kind, reason).Inc()
}

func (c *Collector) ConsistencyViolation(kind string) {
	if c == nil {
		return
	}
	c.consistencyErrors.WithLabelValues(kind).Inc()
}

func (c *Collector) AuditDiscrepancies(n int) {
	if c == nil || n == 0 {
		return
	}
	c.auditDiscrepancies.Add(float64(n))
}

func (c *Collector) GroupConfirmed(polls int) {
	if c == nil {
		return
	}
	c.groupConfirmPolls.Observe(float64(polls))
}

func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
