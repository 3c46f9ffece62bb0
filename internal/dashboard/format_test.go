package dashboard

import (
	"testing"
	"time"

	"client_tracker_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := map[string]string{
		"0":          "R$ 0,00",
		"5":          "R$ 5,00",
		"850":        "R$ 850,00",
		"1500":       "R$ 1.500,00",
		"2300.5":     "R$ 2.300,50",
		"1200.755":   "R$ 1.200,76",
		"1234567.89": "R$ 1.234.567,89",
		"-42.1":      "-R$ 42,10",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatCurrency(decimal.RequireFromString(in)), in)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15/01/2024", FormatDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))

	saoPaulo := time.FixedZone("BRT", -3*60*60)
	ts := time.Date(2024, 1, 15, 13, 5, 0, 0, time.UTC)
	assert.Equal(t, "15/01/2024 10:05", FormatDateTime(ts, saoPaulo))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Pendente", StatusLabel(models.StatusPending))
	assert.Equal(t, "Pago", StatusLabel(models.StatusPaid))
	assert.Equal(t, "Vencido", StatusLabel(models.StatusOverdue))
	assert.Equal(t, "Desconhecido", StatusLabel("LATE"))
}
