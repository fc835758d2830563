package metrics

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"

	"botboard/pkg/logger"
)

// CustomCollector collects record totals from the database on scrape
type CustomCollector struct {
	log      *logger.Logger
	postgres *sqlx.DB

	totalUsers *prometheus.Desc
	totalBots  *prometheus.Desc
}

// NewCustomCollector creates a new custom metrics collector
func NewCustomCollector(log *logger.Logger, postgres *sqlx.DB) *CustomCollector {
	return &CustomCollector{
		log:      log,
		postgres: postgres,

		totalUsers: prometheus.NewDesc(
			"botboard_total_users",
			"Total number of registered users",
			nil, nil,
		),
		totalBots: prometheus.NewDesc(
			"botboard_total_bots",
			"Total number of trading bot records by activation state",
			[]string{"state"}, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *CustomCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalUsers
	ch <- c.totalBots
}

// Collect implements prometheus.Collector
func (c *CustomCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var users int
	if err := c.postgres.GetContext(ctx, &users, `SELECT COUNT(*) FROM users`); err != nil {
		c.log.Warnw("Failed to collect user count", "error", err)
	} else {
		ch <- prometheus.MustNewConstMetric(c.totalUsers, prometheus.GaugeValue, float64(users))
	}

	rows, err := c.postgres.QueryContext(ctx, `
		SELECT is_active, COUNT(*) FROM trading_bots GROUP BY is_active`)
	if err != nil {
		c.log.Warnw("Failed to collect bot counts", "error", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var active bool
		var count int
		if err := rows.Scan(&active, &count); err != nil {
			continue
		}
		state := "inactive"
		if active {
			state = "active"
		}
		ch <- prometheus.MustNewConstMetric(c.totalBots, prometheus.GaugeValue, float64(count), state)
	}
}
