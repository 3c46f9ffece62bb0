package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers, matching what the frontend sends.
	decimal.MarshalJSONWithoutQuotes = true
}

// ClientStatus is the payment state of a client.
type ClientStatus string

const (
	StatusPending ClientStatus = "PENDING"
	StatusPaid    ClientStatus = "PAID"
	StatusOverdue ClientStatus = "OVERDUE"
)

// ClientStatuses lists every valid status in declaration order.
var ClientStatuses = []ClientStatus{StatusPending, StatusPaid, StatusOverdue}

// ParseClientStatus is the only place a raw string becomes a ClientStatus.
// Matching is exact: "paid" is not a status.
func ParseClientStatus(s string) (ClientStatus, bool) {
	for _, st := range ClientStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Client is a person or company owing a payment by a due date.
type Client struct {
	ID        int64           `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Contact   string          `json:"contact" db:"contact"`
	Email     *string         `json:"email" db:"email"`
	Address   *string         `json:"address" db:"address"`
	DueDate   time.Time       `json:"dueDate" db:"due_date"` // midnight UTC
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Status    ClientStatus    `json:"status" db:"status"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

// ClientFilter narrows list, count and sum queries. Zero value matches everything.
type ClientFilter struct {
	Status *ClientStatus
	Search string
}

// StatusFilter is a convenience for aggregate queries over one status.
func StatusFilter(s ClientStatus) ClientFilter {
	return ClientFilter{Status: &s}
}

// ClientPatch carries the columns of a partial update. Nil means "leave as is";
// for Email and Address, Set with a nil Value clears the column.
type ClientPatch struct {
	Name    *string
	Contact *string
	Email   OptionalString
	Address OptionalString
	DueDate *time.Time
	Amount  *decimal.Decimal
	Status  *ClientStatus
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes the page count as ceil(total/limit).
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = total / limit
		if total%limit != 0 {
			pages++
		}
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// ClientList is the body of GET /clients.
type ClientList struct {
	Clients    []Client   `json:"clients"`
	Pagination Pagination `json:"pagination"`
}
