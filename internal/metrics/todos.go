package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rpggio/todolist/internal/domain/todo"
)

const LabelStatus = "status"

var todosDesc = prometheus.NewDesc(
	prometheus.BuildFQName(Namespace, "", "todos"),
	"Current todos by completion status",
	[]string{LabelStatus},
	nil,
)

// StatsFunc reports current todo counts.
type StatsFunc func(ctx context.Context) (todo.Stats, error)

// TodoCollector exposes todo counts at scrape time.
type TodoCollector struct {
	stats StatsFunc
}

// NewTodoCollector creates a collector backed by stats.
func NewTodoCollector(stats StatsFunc) *TodoCollector {
	return &TodoCollector{stats: stats}
}

var _ prometheus.Collector = (*TodoCollector)(nil)

// Describe implements prometheus.Collector.
func (c *TodoCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- todosDesc
}

// Collect implements prometheus.Collector.
func (c *TodoCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stats, err := c.stats(ctx)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(todosDesc, err)
		return
	}
	ch <- prometheus.MustNewConstMetric(todosDesc, prometheus.GaugeValue, float64(stats.Completed), string(todo.StatusCompleted))
	ch <- prometheus.MustNewConstMetric(todosDesc, prometheus.GaugeValue, float64(stats.Pending), string(todo.StatusPending))
}
