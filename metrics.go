package devopsdecoded

import (
	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"
)

// Metrics records server counters on a Prometheus registry. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	viewsRecorded  *prom.CounterVec
	typerMounts    prom.Counter
	typerActive    prom.Gauge
	catalogReloads *prom.CounterVec
	catalogPosts   prom.Gauge
}

// NewMetrics constructs and registers the server metrics on reg.
func NewMetrics(reg *prom.Registry) *Metrics {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	m := &Metrics{
		viewsRecorded: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "devopsdecoded",
			Name:      "post_views_total",
			Help:      "View attempts by outcome (counted, duplicate, bot, limited, error)",
		}, []string{"outcome"}),
		typerMounts: prom.NewCounter(prom.CounterOpts{
			Namespace: "devopsdecoded",
			Name:      "typer_mounts_total",
			Help:      "Typing engines created for bio streams",
		}),
		typerActive: prom.NewGauge(prom.GaugeOpts{
			Namespace: "devopsdecoded",
			Name:      "typer_active",
			Help:      "Typing engines currently mounted",
		}),
		catalogReloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "devopsdecoded",
			Name:      "catalog_reloads_total",
			Help:      "Post catalog reloads by result",
		}, []string{"result"}),
		catalogPosts: prom.NewGauge(prom.GaugeOpts{
			Namespace: "devopsdecoded",
			Name:      "catalog_posts",
			Help:      "Published posts in the current catalog",
		}),
	}
	reg.MustRegister(m.viewsRecorded, m.typerMounts, m.typerActive, m.catalogReloads, m.catalogPosts)
	return m
}

// View counts a view attempt under outcome.
func (m *Metrics) View(outcome string) {
	if m == nil {
		return
	}
	m.viewsRecorded.WithLabelValues(outcome).Inc()
}

// Mounted implements typer.Observer.
func (m *Metrics) Mounted(uuid.UUID) {
	if m == nil {
		return
	}
	m.typerMounts.Inc()
	m.typerActive.Inc()
}

// Unmounted implements typer.Observer.
func (m *Metrics) Unmounted(uuid.UUID) {
	if m == nil {
		return
	}
	m.typerActive.Dec()
}

// CatalogReloaded records a reload result and the resulting post count.
func (m *Metrics) CatalogReloaded(posts int, err error) {
	if m == nil {
		return
	}
	res := "success"
	if err != nil {
		res = "failed"
	}
	m.catalogReloads.WithLabelValues(res).Inc()
	if err == nil {
		m.catalogPosts.Set(float64(posts))
	}
}
