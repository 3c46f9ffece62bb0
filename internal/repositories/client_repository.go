package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"client_tracker_backend/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ClientRepository defines the interface for client-related database operations.
type ClientRepository interface {
	GetClients(ctx context.Context, filter models.ClientFilter, page, limit int) ([]models.Client, error)
	CountClients(ctx context.Context, filter models.ClientFilter) (int, error)
	SumAmount(ctx context.Context, filter models.ClientFilter) (decimal.Decimal, error)
	GetClientByID(ctx context.Context, id int64) (*models.Client, error)
	CreateClient(ctx context.Context, client *models.Client) error
	UpdateClient(ctx context.Context, id int64, patch models.ClientPatch) (*models.Client, error)
	DeleteClient(ctx context.Context, id int64) error
	DeleteAllClients(ctx context.Context) (int64, error)
}

const clientColumns = `id, name, contact, email, address, due_date, amount, status, created_at, updated_at`

// listOrder surfaces overdue items first: OVERDUE < PAID < PENDING alphabetically,
// earliest due date first inside a status, newest record first on ties.
const listOrder = ` ORDER BY status ASC, due_date ASC, created_at DESC`

type clientRepository struct {
	db *sqlx.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sqlx.DB) ClientRepository {
	return &clientRepository{db: db}
}

// whereClause renders filter as a WHERE clause whose placeholders start at $1.
func whereClause(filter models.ClientFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR contact ILIKE $%d OR email ILIKE $%d)", n, n, n))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the search term match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// GetClients retrieves one page of clients in the fixed list order.
func (r *clientRepository) GetClients(ctx context.Context, filter models.ClientFilter, page, limit int) ([]models.Client, error) {
	where, args := whereClause(filter)

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + clientColumns + ` FROM clients`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(listOrder)

	args = append(args, limit)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	args = append(args, (page-1)*limit)
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	clients := []models.Client{}
	if err := r.db.SelectContext(ctx, &clients, queryBuilder.String(), args...); err != nil {
		return nil, wrapDBError(err, "querying clients")
	}
	return clients, nil
}

// CountClients counts clients matching filter.
func (r *clientRepository) CountClients(ctx context.Context, filter models.ClientFilter) (int, error) {
	where, args := whereClause(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM clients`+where, args...); err != nil {
		return 0, wrapDBError(err, "counting clients")
	}
	return total, nil
}

// SumAmount sums the amount of clients matching filter; no rows sums to zero.
func (r *clientRepository) SumAmount(ctx context.Context, filter models.ClientFilter) (decimal.Decimal, error) {
	where, args := whereClause(filter)

	var sum decimal.Decimal
	if err := r.db.GetContext(ctx, &sum, `SELECT COALESCE(SUM(amount), 0) FROM clients`+where, args...); err != nil {
		return decimal.Zero, wrapDBError(err, "summing client amounts")
	}
	return sum, nil
}

// GetClientByID retrieves a client by their ID.
func (r *clientRepository) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	client := &models.Client{}
	err := r.db.GetContext(ctx, client, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapDBError(err, fmt.Sprintf("getting client by ID %d", id))
	}
	return client, nil
}

// CreateClient inserts client and fills in the generated id, the stored amount
// and the audit timestamps.
func (r *clientRepository) CreateClient(ctx context.Context, client *models.Client) error {
	query := `INSERT INTO clients (name, contact, email, address, due_date, amount, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, amount, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		client.Name, client.Contact, client.Email, client.Address,
		client.DueDate, client.Amount, string(client.Status),
	).Scan(&client.ID, &client.Amount, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return wrapDBError(err, "creating client")
	}
	return nil
}

// UpdateClient sets only the columns present in patch and always refreshes updated_at.
func (r *clientRepository) UpdateClient(ctx context.Context, id int64, patch models.ClientPatch) (*models.Client, error) {
	var sets []string
	var args []interface{}
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Contact != nil {
		set("contact", *patch.Contact)
	}
	if patch.Email.Set {
		set("email", patch.Email.Value)
	}
	if patch.Address.Set {
		set("address", patch.Address.Value)
	}
	if patch.DueDate != nil {
		set("due_date", *patch.DueDate)
	}
	if patch.Amount != nil {
		set("amount", *patch.Amount)
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE clients SET %s WHERE id = $%d RETURNING `+clientColumns,
		strings.Join(sets, ", "), len(args))

	client := &models.Client{}
	if err := r.db.GetContext(ctx, client, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapDBError(err, fmt.Sprintf("updating client ID %d", id))
	}
	return client, nil
}

// DeleteClient removes a client from the database.
func (r *clientRepository) DeleteClient(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return wrapDBError(err, fmt.Sprintf("deleting client ID %d", id))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllClients empties the table and returns how many rows were removed.
func (r *clientRepository) DeleteAllClients(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients`)
	if err != nil {
		return 0, wrapDBError(err, "deleting all clients")
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for deleting all clients: %v", ErrDatabaseError, err)
	}
	return rowsAffected, nil
}
