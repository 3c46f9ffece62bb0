package repositories

import (
	"context"
	"testing"
	"time"

	"client_tracker_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedMemory(t *testing.T) ClientRepository {
	t.Helper()
	repo := NewMemoryClientRepository()
	mem := repo.(*memoryClientRepository)
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mem.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	email := "maria@example.com"
	rows := []models.Client{
		{Name: "João", Contact: "111", DueDate: day(2024, 1, 15), Amount: decimal.NewFromInt(1500), Status: models.StatusPending},
		{Name: "Maria", Contact: "222", Email: &email, DueDate: day(2023, 12, 20), Amount: decimal.RequireFromString("2300.50"), Status: models.StatusOverdue},
		{Name: "Carlos", Contact: "333", DueDate: day(2023, 11, 30), Amount: decimal.NewFromInt(850), Status: models.StatusPaid},
		{Name: "Ana Maria", Contact: "444", DueDate: day(2023, 11, 30), Amount: decimal.RequireFromString("1200.75"), Status: models.StatusPaid},
	}
	for i := range rows {
		require.NoError(t, repo.CreateClient(context.Background(), &rows[i]))
	}
	return repo
}

func TestMemoryListOrder(t *testing.T) {
	repo := seedMemory(t)

	clients, err := repo.GetClients(context.Background(), models.ClientFilter{}, 1, 50)
	require.NoError(t, err)

	var names []string
	for _, c := range clients {
		names = append(names, c.Name)
	}
	// OVERDUE, then PAID (same due date: newest first), then PENDING.
	assert.Equal(t, []string{"Maria", "Ana Maria", "Carlos", "João"}, names)
}

func TestMemoryFilterAndSearch(t *testing.T) {
	repo := seedMemory(t)
	ctx := context.Background()

	paid := models.StatusPaid
	clients, err := repo.GetClients(ctx, models.ClientFilter{Status: &paid, Search: "MARIA"}, 1, 50)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Ana Maria", clients[0].Name)

	n, err := repo.CountClients(ctx, models.ClientFilter{Search: "maria@"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	sum, err := repo.SumAmount(ctx, models.StatusFilter(models.StatusPaid))
	require.NoError(t, err)
	assert.Equal(t, "2050.75", sum.StringFixed(2))

	sum, err = repo.SumAmount(ctx, models.ClientFilter{Search: "nobody"})
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}

func TestMemoryPaginationPastEnd(t *testing.T) {
	repo := seedMemory(t)

	clients, err := repo.GetClients(context.Background(), models.ClientFilter{}, 3, 2)
	require.NoError(t, err)
	assert.NotNil(t, clients)
	assert.Empty(t, clients)
}

func TestMemoryIDsAreNotReused(t *testing.T) {
	repo := seedMemory(t)
	ctx := context.Background()

	require.NoError(t, repo.DeleteClient(ctx, 4))
	assert.ErrorIs(t, repo.DeleteClient(ctx, 4), ErrNotFound)

	c := &models.Client{Name: "Novo", Contact: "555", DueDate: day(2030, 1, 1), Amount: decimal.NewFromInt(1)}
	require.NoError(t, repo.CreateClient(ctx, c))
	assert.Equal(t, int64(5), c.ID)
}

func TestMemoryUpdateAppliesPatch(t *testing.T) {
	repo := seedMemory(t)
	ctx := context.Background()

	before, err := repo.GetClientByID(ctx, 2)
	require.NoError(t, err)

	paid := models.StatusPaid
	after, err := repo.UpdateClient(ctx, 2, models.ClientPatch{Status: &paid, Email: models.OptionalString{Set: true}})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPaid, after.Status)
	assert.Nil(t, after.Email)
	assert.Equal(t, before.Name, after.Name)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))

	_, err = repo.UpdateClient(ctx, 42, models.ClientPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDeleteAllKeepsIDSequence(t *testing.T) {
	repo := seedMemory(t)
	ctx := context.Background()

	n, err := repo.DeleteAllClients(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)

	total, err := repo.CountClients(ctx, models.ClientFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)

	c := &models.Client{Name: "Novo", Contact: "555", DueDate: day(2030, 1, 1), Amount: decimal.NewFromInt(1)}
	require.NoError(t, repo.CreateClient(ctx, c))
	assert.Equal(t, int64(5), c.ID)
}
