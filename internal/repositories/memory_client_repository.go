package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"client_tracker_backend/internal/models"

	"github.com/shopspring/decimal"
)

// memoryClientRepository keeps clients in process memory. It mirrors the
// postgres repository semantics: ids are never reused, amounts are stored with
// two decimal places and listing uses the same three-key order.
type memoryClientRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]models.Client
	now    func() time.Time
}

// NewMemoryClientRepository returns an empty in-memory ClientRepository.
func NewMemoryClientRepository() ClientRepository {
	return &memoryClientRepository{
		rows: make(map[int64]models.Client),
		now:  time.Now,
	}
}

func (r *memoryClientRepository) matching(filter models.ClientFilter) []models.Client {
	term := strings.ToLower(filter.Search)
	var out []models.Client
	for _, c := range r.rows {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if term != "" && !containsFold(c.Name, term) && !containsFold(c.Contact, term) &&
			(c.Email == nil || !containsFold(*c.Email, term)) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}

func (r *memoryClientRepository) GetClients(_ context.Context, filter models.ClientFilter, page, limit int) ([]models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.matching(filter)
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Status != b.Status {
			return a.Status < b.Status
		}
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	clients := []models.Client{}
	start := (page - 1) * limit
	if page < 1 || limit < 1 || start < 0 || start >= len(rows) {
		return clients, nil
	}
	end := start + limit
	if end < start || end > len(rows) {
		end = len(rows)
	}
	return append(clients, rows[start:end]...), nil
}

func (r *memoryClientRepository) CountClients(_ context.Context, filter models.ClientFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matching(filter)), nil
}

func (r *memoryClientRepository) SumAmount(_ context.Context, filter models.ClientFilter) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum := decimal.Zero
	for _, c := range r.matching(filter) {
		sum = sum.Add(c.Amount)
	}
	return sum, nil
}

func (r *memoryClientRepository) GetClientByID(_ context.Context, id int64) (*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *memoryClientRepository) CreateClient(_ context.Context, client *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.now()
	client.ID = r.nextID
	client.Amount = client.Amount.Round(2)
	if client.Status == "" {
		client.Status = models.StatusPending
	}
	client.CreatedAt = now
	client.UpdatedAt = now
	r.rows[client.ID] = *client
	return nil
}

func (r *memoryClientRepository) UpdateClient(_ context.Context, id int64, patch models.ClientPatch) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Contact != nil {
		c.Contact = *patch.Contact
	}
	if patch.Email.Set {
		c.Email = patch.Email.Value
	}
	if patch.Address.Set {
		c.Address = patch.Address.Value
	}
	if patch.DueDate != nil {
		c.DueDate = *patch.DueDate
	}
	if patch.Amount != nil {
		c.Amount = patch.Amount.Round(2)
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	c.UpdatedAt = r.now()
	r.rows[id] = c
	return &c, nil
}

func (r *memoryClientRepository) DeleteClient(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memoryClientRepository) DeleteAllClients(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.rows))
	r.rows = make(map[int64]models.Client)
	return n, nil
}
