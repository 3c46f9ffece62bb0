package dashboard

import (
	"strings"
	"time"

	"client_tracker_backend/internal/models"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount as Brazilian reais, e.g. "R$ 1.500,00".
func FormatCurrency(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}
	fixed := v.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + "R$ " + b.String() + "," + frac
}

// FormatDate renders the calendar date as dd/MM/yyyy.
func FormatDate(t time.Time) string {
	return t.UTC().Format("02/01/2006")
}

// FormatDateTime renders a timestamp as dd/MM/yyyy HH:mm in loc.
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("02/01/2006 15:04")
}

// StatusLabel is the Portuguese label of a status.
func StatusLabel(s models.ClientStatus) string {
	switch s {
	case models.StatusPaid:
		return "Pago"
	case models.StatusPending:
		return "Pendente"
	case models.StatusOverdue:
		return "Vencido"
	default:
		return "Desconhecido"
	}
}
