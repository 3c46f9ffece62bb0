// Package dashboard holds the client dashboard view: its state, the pure
// transitions between states and a controller that runs the API effects.
package dashboard

import (
	"strings"

	"client_tracker_backend/internal/models"
	"client_tracker_backend/pkg/apiclient"

	"github.com/shopspring/decimal"
)

// Draft is the create form as typed by the user.
type Draft struct {
	Name    string
	Contact string
	DueDate string
	Amount  decimal.Decimal
	Email   string
	Address string
}

// Input converts the form into a create request. Blank optional fields are omitted.
func (d Draft) Input() apiclient.CreateClientInput {
	return apiclient.CreateClientInput{
		Name:    d.Name,
		Contact: d.Contact,
		DueDate: d.DueDate,
		Amount:  d.Amount,
		Email:   strings.TrimSpace(d.Email),
		Address: strings.TrimSpace(d.Address),
	}
}

// State is everything the dashboard renders.
type State struct {
	Clients        []models.Client
	Stats          *models.DashboardStats
	Loading        bool
	Error          string
	SearchTerm     string
	ShowCreateForm bool
	Draft          Draft
}

// Initial is the state before the first load.
func Initial() State {
	return State{Loading: true}
}

// BeginLoad marks a reload in progress and clears the previous error.
func (s State) BeginLoad() State {
	s.Loading = true
	s.Error = ""
	return s
}

// LoadSucceeded replaces the list and the stats.
func (s State) LoadSucceeded(clients []models.Client, stats *models.DashboardStats) State {
	if clients == nil {
		clients = []models.Client{}
	}
	s.Clients = clients
	s.Stats = stats
	s.Loading = false
	s.Error = ""
	return s
}

// LoadFailed records a load error. The last good data is kept.
func (s State) LoadFailed(message string) State {
	s.Loading = false
	s.Error = message
	return s
}

// WithSearch changes the search term; the caller reloads.
func (s State) WithSearch(term string) State {
	s.SearchTerm = term
	return s
}

// ToggleCreateForm opens or closes the create form.
func (s State) ToggleCreateForm() State {
	s.ShowCreateForm = !s.ShowCreateForm
	return s
}

// WithDraft replaces the create form contents.
func (s State) WithDraft(d Draft) State {
	s.Draft = d
	return s
}

// CreateSucceeded resets and closes the create form.
func (s State) CreateSucceeded() State {
	s.Draft = Draft{}
	s.ShowCreateForm = false
	return s
}

// Empty reports whether a finished load found no clients.
func (s State) Empty() bool {
	return !s.Loading && s.Error == "" && len(s.Clients) == 0
}
