package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClientStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "PAID", "OVERDUE"} {
		st, ok := ParseClientStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, s, string(st))
	}
	for _, s := range []string{"", "paid", "CANCELLED", " PAID"} {
		_, ok := ParseClientStatus(s)
		assert.False(t, ok, s)
	}
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 2, Limit: 2, Total: 6, Pages: 3}, NewPagination(2, 2, 6))
	assert.Equal(t, 4, NewPagination(1, 2, 7).Pages)
	assert.Equal(t, 0, NewPagination(1, 50, 0).Pages)
	assert.Equal(t, 1, NewPagination(1, math.MaxInt, 6).Pages)
	assert.Equal(t, 1, NewPagination(1, math.MaxInt, math.MaxInt).Pages)
}

func TestClientJSONShape(t *testing.T) {
	c := Client{
		ID:        7,
		Name:      "Maria Oliveira",
		Contact:   "+55 11 88888-5678",
		DueDate:   time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.RequireFromString("2300.50"),
		Status:    StatusOverdue,
		CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	for _, key := range []string{"id", "name", "contact", "email", "address", "dueDate", "amount", "status", "createdAt", "updatedAt"} {
		assert.Contains(t, got, key)
	}
	assert.Nil(t, got["email"])
	assert.Equal(t, 2300.5, got["amount"])
	assert.Equal(t, "2023-12-20T00:00:00Z", got["dueDate"])
}

func TestOptionalStringDistinguishesNullFromAbsent(t *testing.T) {
	var body struct {
		Email   OptionalString `json:"email"`
		Address OptionalString `json:"address"`
		Name    OptionalString `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"email":null,"address":"Rua A"}`), &body))

	assert.True(t, body.Email.Set)
	assert.Nil(t, body.Email.Value)
	assert.True(t, body.Address.Set)
	require.NotNil(t, body.Address.Value)
	assert.Equal(t, "Rua A", *body.Address.Value)
	assert.False(t, body.Name.Set)

	assert.Error(t, json.Unmarshal([]byte(`{"email":42}`), &body))
}
