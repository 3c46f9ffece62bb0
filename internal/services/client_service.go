package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"client_tracker_backend/internal/models"
	"client_tracker_backend/internal/repositories"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// --- Client DTOs ---

// CreateClientRequest is the body of POST /clients. Amount stays raw so both
// numbers and numeric strings can be validated with a proper error.
type CreateClientRequest struct {
	Name    *string         `json:"name"`
	Contact *string         `json:"contact"`
	Email   *string         `json:"email"`
	Address *string         `json:"address"`
	DueDate *string         `json:"dueDate"`
	Amount  json.RawMessage `json:"amount"`
	Status  *string         `json:"status"`
}

// UpdateClientRequest is the body of PUT /clients/:id; every field is optional.
type UpdateClientRequest struct {
	Name    *string               `json:"name"`
	Contact *string               `json:"contact"`
	Email   models.OptionalString `json:"email"`
	Address models.OptionalString `json:"address"`
	DueDate *string               `json:"dueDate"`
	Amount  json.RawMessage       `json:"amount"`
	Status  *string               `json:"status"`
}

// ListClientsParams are the raw list query parameters.
type ListClientsParams struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// filter turns the params into a repository filter. An unknown status is ignored.
func (p ListClientsParams) filter() models.ClientFilter {
	f := models.ClientFilter{Search: p.Search}
	if st, ok := models.ParseClientStatus(p.Status); ok {
		f.Status = &st
	}
	return f
}

// --- ClientService Interface ---
type ClientService interface {
	ListClients(ctx context.Context, params ListClientsParams) (*models.ClientList, error)
	GetClientByID(ctx context.Context, clientID int64) (*models.Client, error)
	CreateClient(ctx context.Context, req CreateClientRequest) (*models.Client, error)
	UpdateClient(ctx context.Context, clientID int64, req UpdateClientRequest) (*models.Client, error)
	DeleteClient(ctx context.Context, clientID int64) error
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// Option configures a ClientService.
type Option func(*clientService)

// WithClock replaces time.Now as the source of "today" for status derivation.
func WithClock(now func() time.Time) Option {
	return func(s *clientService) { s.now = now }
}

// --- clientService Implementation ---
type clientService struct {
	clientRepo repositories.ClientRepository
	now        func() time.Time
}

// NewClientService creates a new instance of ClientService.
func NewClientService(repo repositories.ClientRepository, opts ...Option) ClientService {
	s := &clientService{clientRepo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListClients returns one page plus pagination metadata. The page and the
// total count are fetched concurrently.
func (s *clientService) ListClients(ctx context.Context, params ListClientsParams) (*models.ClientList, error) {
	if params.Page <= 0 {
		params.Page = DefaultPage
	}
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}
	filter := params.filter()
	// Pages whose offset does not fit in an int lie past the end of any result.
	pastEnd := params.Page-1 > math.MaxInt/params.Limit

	var clients []models.Client
	var total int
	g, gctx := errgroup.WithContext(ctx)
	if !pastEnd {
		g.Go(func() error {
			var err error
			clients, err = s.clientRepo.GetClients(gctx, filter, params.Page, params.Limit)
			return err
		})
	}
	g.Go(func() error {
		var err error
		total, err = s.clientRepo.CountClients(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}

	if clients == nil {
		clients = []models.Client{}
	}
	return &models.ClientList{
		Clients:    clients,
		Pagination: models.NewPagination(params.Page, params.Limit, total),
	}, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}

// CreateClient validates req, derives the status when none is given and stores the client.
func (s *clientService) CreateClient(ctx context.Context, req CreateClientRequest) (*models.Client, error) {
	client, err := buildNewClient(req, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.CreateClient(ctx, client); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateClient, err)
		}
		return nil, fmt.Errorf("failed to create client in repository: %w", err)
	}
	return client, nil
}

// UpdateClient applies a partial update. Existence is checked before validation.
func (s *clientService) UpdateClient(ctx context.Context, clientID int64, req UpdateClientRequest) (*models.Client, error) {
	if _, err := s.GetClientByID(ctx, clientID); err != nil {
		return nil, err
	}

	patch, err := buildPatch(req)
	if err != nil {
		return nil, err
	}

	client, err := s.clientRepo.UpdateClient(ctx, clientID, patch)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound // deleted between the check and the write
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateClient, err)
		}
		return nil, fmt.Errorf("failed to update client in repository: %w", err)
	}
	return client, nil
}

// DeleteClient hard-deletes a client; the store's not-found signal maps to ErrClientNotFound.
func (s *clientService) DeleteClient(ctx context.Context, clientID int64) error {
	if err := s.clientRepo.DeleteClient(ctx, clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// GetDashboardStats runs every count and sum concurrently and joins them.
// Each goroutine writes a distinct field of stats.
func (s *clientService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int, filter models.ClientFilter) {
		g.Go(func() error {
			n, err := s.clientRepo.CountClients(gctx, filter)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	sum := func(dst *decimal.Decimal, filter models.ClientFilter) {
		g.Go(func() error {
			v, err := s.clientRepo.SumAmount(gctx, filter)
			if err != nil {
				return err
			}
			*dst = v
			return nil
		})
	}

	count(&stats.Clients.Total, models.ClientFilter{})
	count(&stats.Clients.Paid, models.StatusFilter(models.StatusPaid))
	count(&stats.Clients.Pending, models.StatusFilter(models.StatusPending))
	count(&stats.Clients.Overdue, models.StatusFilter(models.StatusOverdue))
	sum(&stats.Amounts.Total, models.ClientFilter{})
	sum(&stats.Amounts.Paid, models.StatusFilter(models.StatusPaid))
	sum(&stats.Amounts.Pending, models.StatusFilter(models.StatusPending))
	sum(&stats.Amounts.Overdue, models.StatusFilter(models.StatusOverdue))

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return stats, nil
}
