package dashboard

import (
	"context"
	"errors"
	"sync"

	"client_tracker_backend/internal/models"
	"client_tracker_backend/pkg/apiclient"
	"client_tracker_backend/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// User-facing messages.
const (
	MsgAPIErrorPrefix = "Erro da API: "
	MsgUnreachable    = "Erro ao carregar dados. Verifique se o backend está rodando."
	MsgCreateFailed   = "Erro ao criar cliente"
	MsgUpdateFailed   = "Erro ao atualizar status"
	MsgDeleteFailed   = "Erro ao excluir cliente"
	MsgConfirmDelete  = "Tem certeza que deseja excluir este cliente?"
)

// API is the subset of the REST client the dashboard needs.
type API interface {
	GetClients(ctx context.Context, params apiclient.ListParams) (*models.ClientList, error)
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
	CreateClient(ctx context.Context, in apiclient.CreateClientInput) (*models.Client, error)
	UpdateClient(ctx context.Context, id int64, in apiclient.UpdateClientInput) (*models.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(prompt string) bool

// ActionError is a failed mutation, carrying the message shown to the user.
type ActionError struct {
	Message string
	Err     error
}

func (e *ActionError) Error() string { return e.Message }

func (e *ActionError) Unwrap() error { return e.Err }

// Controller owns the dashboard state. Every successful mutation is
// followed by a full reload of the list and the stats.
type Controller struct {
	api     API
	confirm ConfirmFunc

	mu    sync.Mutex
	state State
}

// NewController creates a controller in the initial loading state.
func NewController(api API, confirm ConfirmFunc) *Controller {
	return &Controller{api: api, confirm: confirm, state: Initial()}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) update(fn func(State) State) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = fn(c.state)
	return c.state
}

// Load fetches the filtered list and the stats concurrently. A failure of
// either one yields a single error state.
func (c *Controller) Load(ctx context.Context) State {
	s := c.update(State.BeginLoad)

	var list *models.ClientList
	var stats *models.DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = c.api.GetClients(gctx, apiclient.ListParams{Search: s.SearchTerm})
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = c.api.GetDashboardStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		utils.LogError(err, "Error loading data")
		msg := loadErrorMessage(err)
		return c.update(func(s State) State { return s.LoadFailed(msg) })
	}
	return c.update(func(s State) State { return s.LoadSucceeded(list.Clients, stats) })
}

func loadErrorMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return MsgAPIErrorPrefix + apiErr.Message
	}
	return MsgUnreachable
}

// Search sets the search term and reloads.
func (c *Controller) Search(ctx context.Context, term string) State {
	c.update(func(s State) State { return s.WithSearch(term) })
	return c.Load(ctx)
}

// ToggleCreateForm opens or closes the create form.
func (c *Controller) ToggleCreateForm() State {
	return c.update(State.ToggleCreateForm)
}

// SetDraft replaces the create form contents.
func (c *Controller) SetDraft(d Draft) State {
	return c.update(func(s State) State { return s.WithDraft(d) })
}

// Create submits the draft. On success the form is reset and the data reloaded.
func (c *Controller) Create(ctx context.Context) error {
	draft := c.State().Draft
	if _, err := c.api.CreateClient(ctx, draft.Input()); err != nil {
		utils.LogError(err, "Error creating client")
		return &ActionError{Message: MsgCreateFailed, Err: err}
	}
	c.update(State.CreateSucceeded)
	c.Load(ctx)
	return nil
}

// NextStatus is the status a toggle moves to: PAID goes back to PENDING,
// anything else becomes PAID.
func NextStatus(current models.ClientStatus) models.ClientStatus {
	if current == models.StatusPaid {
		return models.StatusPending
	}
	return models.StatusPaid
}

// ToggleStatus flips a client between paid and pending.
func (c *Controller) ToggleStatus(ctx context.Context, client models.Client) error {
	next := NextStatus(client.Status)
	if _, err := c.api.UpdateClient(ctx, client.ID, apiclient.UpdateClientInput{Status: &next}); err != nil {
		utils.LogError(err, "Error updating client")
		return &ActionError{Message: MsgUpdateFailed, Err: err}
	}
	c.Load(ctx)
	return nil
}

// Delete removes a client after the user confirms. It reports whether the
// client was deleted.
func (c *Controller) Delete(ctx context.Context, id int64) (bool, error) {
	if c.confirm == nil || !c.confirm(MsgConfirmDelete) {
		return false, nil
	}
	if err := c.api.DeleteClient(ctx, id); err != nil {
		utils.LogError(err, "Error deleting client")
		return false, &ActionError{Message: MsgDeleteFailed, Err: err}
	}
	c.Load(ctx)
	return true, nil
}
