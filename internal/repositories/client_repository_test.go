package repositories

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"client_tracker_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (ClientRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewClientRepository(sqlx.NewDb(db, "sqlmock")), mock
}

var columns = []string{"id", "name", "contact", "email", "address", "due_date", "amount", "status", "created_at", "updated_at"}

func TestGetClientsBuildsFilteredOrderedPage(t *testing.T) {
	repo, mock := newMockRepository(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	query := `SELECT ` + clientColumns + ` FROM clients WHERE status = $1 AND (name ILIKE $2 OR contact ILIKE $2 OR email ILIKE $2) ORDER BY status ASC, due_date ASC, created_at DESC LIMIT $3 OFFSET $4`
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("PAID", "%maria%", 2, 2).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(3, "Maria", "123", "maria@example.com", nil, time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC), "2300.50", "PAID", created, created))

	paid := models.StatusPaid
	clients, err := repo.GetClients(context.Background(), models.ClientFilter{Status: &paid, Search: "maria"}, 2, 2)
	require.NoError(t, err)
	require.Len(t, clients, 1)

	assert.Equal(t, int64(3), clients[0].ID)
	assert.Equal(t, models.StatusPaid, clients[0].Status)
	assert.True(t, decimal.RequireFromString("2300.5").Equal(clients[0].Amount))
	require.NotNil(t, clients[0].Email)
	assert.Nil(t, clients[0].Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetClientsWithoutFilterHasNoWhere(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM clients ORDER BY status ASC, due_date ASC, created_at DESC LIMIT $1 OFFSET $2`)).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows(columns))

	clients, err := repo.GetClients(context.Background(), models.ClientFilter{}, 1, 50)
	require.NoError(t, err)
	assert.NotNil(t, clients)
	assert.Empty(t, clients)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchEscapesLikeWildcards(t *testing.T) {
	where, args := whereClause(models.ClientFilter{Search: `50%_off\`})
	assert.Equal(t, " WHERE (name ILIKE $1 OR contact ILIKE $1 OR email ILIKE $1)", where)
	assert.Equal(t, []interface{}{`%50\%\_off\\%`}, args)
}

func TestCountAndSum(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM clients WHERE status = $1`)).
		WithArgs("OVERDUE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(amount), 0) FROM clients`)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("0"))

	n, err := repo.CountClients(context.Background(), models.StatusFilter(models.StatusOverdue))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	sum, err := repo.SumAmount(context.Background(), models.ClientFilter{})
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetClientByIDNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM clients WHERE id = $1`)).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetClientByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateClientReturnsGeneratedFields(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	due := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO clients (name, contact, email, address, due_date, amount, status)`)).
		WithArgs("Test", "123", sqlmock.AnyArg(), sqlmock.AnyArg(), due, decimal.NewFromInt(100), "OVERDUE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "created_at", "updated_at"}).AddRow(1, "100.00", now, now))

	c := &models.Client{Name: "Test", Contact: "123", DueDate: due, Amount: decimal.NewFromInt(100), Status: models.StatusOverdue}
	require.NoError(t, repo.CreateClient(context.Background(), c))

	assert.Equal(t, int64(1), c.ID)
	assert.True(t, c.Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, now, c.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClientReadsBackStoredAmount(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`RETURNING id, amount, created_at, updated_at`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "created_at", "updated_at"}).AddRow(2, "10.56", now, now))

	c := &models.Client{Name: "Test", Contact: "123", DueDate: now, Amount: decimal.RequireFromString("10.555"), Status: models.StatusPending}
	require.NoError(t, repo.CreateClient(context.Background(), c))

	assert.Equal(t, "10.56", c.Amount.StringFixed(2))
	assert.True(t, c.Amount.Equal(decimal.RequireFromString("10.56")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClientMapsUniqueViolation(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("INSERT INTO clients").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key", Constraint: "clients_pkey"})

	err := repo.CreateClient(context.Background(), &models.Client{Name: "x", Contact: "y"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestCreateClientWrapsOtherErrors(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("INSERT INTO clients").WillReturnError(errors.New("connection reset"))

	err := repo.CreateClient(context.Background(), &models.Client{Name: "x", Contact: "y"})
	assert.ErrorIs(t, err, ErrDatabaseError)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestUpdateClientSetsOnlySuppliedColumns(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE clients SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + clientColumns)).
		WithArgs("PAID", 5).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(5, "Ana", "555", nil, nil, now, "10.00", "PAID", now, now))

	paid := models.StatusPaid
	c, err := repo.UpdateClient(context.Background(), 5, models.ClientPatch{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, c.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateClientClearsOptionalColumns(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE clients SET name = $1, email = $2, updated_at = NOW() WHERE id = $3`)).
		WithArgs("Ana", sqlmock.AnyArg(), 5).
		WillReturnError(sql.ErrNoRows)

	name := "Ana"
	_, err := repo.UpdateClient(context.Background(), 5, models.ClientPatch{Name: &name, Email: models.OptionalString{Set: true}})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteClient(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM clients WHERE id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM clients WHERE id = $1`)).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteClient(context.Background(), 1))
	assert.ErrorIs(t, repo.DeleteClient(context.Background(), 2), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAllClients(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM clients`)).
		WillReturnResult(sqlmock.NewResult(0, 6))

	n, err := repo.DeleteAllClients(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 6, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
