package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"client_tracker_backend/internal/models"
	"client_tracker_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// --- Custom Service Errors for Client ---
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrClientValidation = errors.New("client data validation error")
	ErrDuplicateClient  = errors.New("a record with this data already exists")

	ErrMissingFields  = fmt.Errorf("%w: missing required fields", ErrClientValidation)
	ErrInvalidAmount  = fmt.Errorf("%w: amount must be a positive number", ErrClientValidation)
	ErrInvalidDueDate = fmt.Errorf("%w: invalid due date format", ErrClientValidation)
	ErrInvalidStatus  = fmt.Errorf("%w: invalid status, must be PENDING, PAID, or OVERDUE", ErrClientValidation)
)

// Amounts are stored as NUMERIC(12,2).
const maxAmountScale = 2

var maxAmount = decimal.New(1, 10)

// RequiredClientFields are the body fields a create request must carry.
var RequiredClientFields = []string{"name", "contact", "dueDate", "amount"}

var dueDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseDueDate keeps the calendar date of s, as written, at midnight UTC.
func parseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
}

// isAbsentJSON reports whether raw carries no usable value.
func isAbsentJSON(raw json.RawMessage) bool {
	v := strings.TrimSpace(string(raw))
	return v == "" || v == "null" || v == `""`
}

// parseAmount accepts a JSON number or a numeric string and rejects negatives.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	v := strings.TrimSpace(string(raw))
	if strings.HasPrefix(v, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		v = strings.TrimSpace(s)
	}
	amount, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, v)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	if !amount.Equal(amount.Truncate(maxAmountScale)) {
		return decimal.Zero, fmt.Errorf("%w: more than %d decimal places in %s", ErrInvalidAmount, maxAmountScale, amount)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: %s exceeds the maximum", ErrInvalidAmount, amount)
	}
	return amount, nil
}

// parseStatus validates an explicitly supplied status through the shared enum.
func parseStatus(s string) (models.ClientStatus, error) {
	st, ok := models.ParseClientStatus(s)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// DeriveStatus computes the initial status of a client: OVERDUE when the due
// date is strictly before today's date in now's location, PENDING otherwise.
// It never yields PAID.
func DeriveStatus(dueDate, now time.Time) models.ClientStatus {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	due := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
	if due.Before(today) {
		return models.StatusOverdue
	}
	return models.StatusPending
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// buildNewClient validates a create request and returns the client to insert.
func buildNewClient(req CreateClientRequest, now time.Time) (*models.Client, error) {
	name, contact := trimmed(req.Name), trimmed(req.Contact)
	if name == "" || contact == "" || trimmed(req.DueDate) == "" || isAbsentJSON(req.Amount) {
		return nil, ErrMissingFields
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	dueDate, err := parseDueDate(*req.DueDate)
	if err != nil {
		return nil, err
	}

	status := DeriveStatus(dueDate, now)
	if req.Status != nil {
		if status, err = parseStatus(*req.Status); err != nil {
			return nil, err
		}
	}

	return &models.Client{
		Name:    name,
		Contact: contact,
		Email:   utils.TrimToNil(req.Email),
		Address: utils.TrimToNil(req.Address),
		DueDate: dueDate,
		Amount:  amount,
		Status:  status,
	}, nil
}

// buildPatch validates an update request; only supplied fields end up in the patch.
func buildPatch(req UpdateClientRequest) (models.ClientPatch, error) {
	var patch models.ClientPatch

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return patch, fmt.Errorf("%w: name cannot be empty", ErrClientValidation)
		}
		patch.Name = &name
	}
	if req.Contact != nil {
		contact := strings.TrimSpace(*req.Contact)
		if contact == "" {
			return patch, fmt.Errorf("%w: contact cannot be empty", ErrClientValidation)
		}
		patch.Contact = &contact
	}
	if req.Email.Set {
		patch.Email = models.OptionalString{Set: true, Value: utils.TrimToNil(req.Email.Value)}
	}
	if req.Address.Set {
		patch.Address = models.OptionalString{Set: true, Value: utils.TrimToNil(req.Address.Value)}
	}
	if req.Amount != nil {
		if isAbsentJSON(req.Amount) {
			return patch, ErrInvalidAmount
		}
		amount, err := parseAmount(req.Amount)
		if err != nil {
			return patch, err
		}
		patch.Amount = &amount
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return patch, err
		}
		patch.DueDate = &dueDate
	}
	if req.Status != nil {
		status, err := parseStatus(*req.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}
	return patch, nil
}
