package repositories

import (
	"context"
	"fmt"
	"time"

	"client_tracker_backend/internal/models"

	"github.com/shopspring/decimal"
)

func sampleDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleText(s string) *string { return &s }

// SampleClients is the demo data set loaded by the seed command.
func SampleClients() []models.Client {
	return []models.Client{
		{Name: "João Silva", Contact: "+55 11 99999-1234", Email: sampleText("joao.silva@email.com"), Address: sampleText("Rua das Flores, 123 - São Paulo, SP"),
			DueDate: sampleDate(2024, time.January, 15), Amount: decimal.RequireFromString("1500.00"), Status: models.StatusPending},
		{Name: "Maria Oliveira", Contact: "+55 11 88888-5678", Email: sampleText("maria.oliveira@email.com"), Address: sampleText("Av. Paulista, 456 - São Paulo, SP"),
			DueDate: sampleDate(2023, time.December, 20), Amount: decimal.RequireFromString("2300.50"), Status: models.StatusOverdue},
		{Name: "Carlos Santos", Contact: "+55 11 77777-9012", Email: sampleText("carlos.santos@email.com"), Address: sampleText("Rua Augusta, 789 - São Paulo, SP"),
			DueDate: sampleDate(2023, time.November, 30), Amount: decimal.RequireFromString("850.00"), Status: models.StatusPaid},
		{Name: "Ana Costa", Contact: "+55 11 66666-3456", Email: sampleText("ana.costa@email.com"), Address: sampleText("Rua Oscar Freire, 321 - São Paulo, SP"),
			DueDate: sampleDate(2024, time.February, 10), Amount: decimal.RequireFromString("1200.75"), Status: models.StatusPending},
		{Name: "Roberto Lima", Contact: "+55 11 55555-7890", Email: sampleText("roberto.lima@email.com"), Address: sampleText("Av. Faria Lima, 654 - São Paulo, SP"),
			DueDate: sampleDate(2023, time.December, 1), Amount: decimal.RequireFromString("3200.00"), Status: models.StatusOverdue},
		{Name: "Fernanda Rocha", Contact: "+55 11 44444-2345", Email: sampleText("fernanda.rocha@email.com"), Address: sampleText("Rua Consolação, 987 - São Paulo, SP"),
			DueDate: sampleDate(2023, time.November, 15), Amount: decimal.RequireFromString("750.25"), Status: models.StatusPaid},
	}
}

// Seed replaces every stored client with the sample data set. It returns the
// number of removed and created clients.
func Seed(ctx context.Context, repo ClientRepository) (removed int64, created int, err error) {
	removed, err = repo.DeleteAllClients(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("clearing clients: %w", err)
	}
	for _, c := range SampleClients() {
		c := c
		if err := repo.CreateClient(ctx, &c); err != nil {
			return removed, created, fmt.Errorf("creating sample client %q: %w", c.Name, err)
		}
		created++
	}
	return removed, created, nil
}
