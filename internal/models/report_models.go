package models

import "github.com/shopspring/decimal"

// StatusCounts holds the number of clients overall and per status.
type StatusCounts struct {
	Total   int `json:"total"`
	Paid    int `json:"paid"`
	Pending int `json:"pending"`
	Overdue int `json:"overdue"`
}

// StatusAmounts holds amount sums overall and per status. Empty sums are zero.
type StatusAmounts struct {
	Total   decimal.Decimal `json:"total"`
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
	Overdue decimal.Decimal `json:"overdue"`
}

// DashboardStats is the aggregate snapshot served by GET /clients/stats.
type DashboardStats struct {
	Clients StatusCounts  `json:"clients"`
	Amounts StatusAmounts `json:"amounts"`
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}
