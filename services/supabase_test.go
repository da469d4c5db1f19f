package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taller3d/printshop-api/models"
)

func TestSupabaseList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/orders", r.URL.Path)
		assert.Equal(t, "delivery_date.asc.nullslast", r.URL.Query().Get("order"))
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"1","name":"Spare gears","client":"Beta Labs","total_price":50,"deposit":50,"delivery_date":"2026-05-05","status":"InProcess"},
			{"id":"2","name":"Prototype housing","client":"Acme","total_price":100,"deposit":0,"delivery_date":"2026-05-10","status":"Received"}
		]`))
	}))
	defer server.Close()

	client, err := NewSupabasePersistence(server.URL, "test-key")
	assert.NoError(t, err)

	orders, err := client.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, "Spare gears", orders[0].Name)
	assert.Equal(t, models.NewDate(2026, time.May, 5), *orders[0].DeliveryDate)
	assert.Equal(t, models.StatusInProcess, orders[0].Status)
	assert.Equal(t, 100.0, orders[1].TotalPrice)
}

func TestSupabaseListConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client, err := NewSupabasePersistence(server.URL, "test-key")
	assert.NoError(t, err)

	_, err = client.List(context.Background())
	assert.Error(t, err)
}

func TestSupabaseListErrorSurfacesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"JWT expired"}`))
	}))
	defer server.Close()

	client, err := NewSupabasePersistence(server.URL, "test-key")
	assert.NoError(t, err)

	_, err = client.List(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT expired")
}

func TestSupabaseInsert(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))

		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, err := NewSupabasePersistence(server.URL, "test-key")
	assert.NoError(t, err)

	date := models.NewDate(2026, time.May, 10)
	err = client.Insert(context.Background(), models.Order{
		Name:         "Benchy",
		Client:       "Acme",
		TotalPrice:   120.5,
		Deposit:      20,
		DeliveryDate: &date,
		Status:       models.StatusReceived,
	})
	assert.NoError(t, err)

	assert.Equal(t, "Benchy", received["name"])
	assert.Equal(t, 120.5, received["total_price"])
	assert.Equal(t, "2026-05-10", received["delivery_date"])
	assert.Equal(t, "Received", received["status"])
	// The id is never sent; Supabase assigns it
	_, hasID := received["id"]
	assert.False(t, hasID)
}

func TestSupabaseUpdateFields(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.abc-123", r.URL.Query().Get("id"))

		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := NewSupabasePersistence(server.URL, "test-key")
	assert.NoError(t, err)

	err = client.UpdateFields(context.Background(), "abc-123", map[string]interface{}{
		"deposit": 200.0,
	})
	assert.NoError(t, err)
	assert.Equal(t, 200.0, received["deposit"])
}

func TestSupabaseDeleteByID(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.abc-123", r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := NewSupabasePersistence(server.URL, "test-key")
	assert.NoError(t, err)

	assert.NoError(t, client.DeleteByID(context.Background(), "abc-123"))
	assert.True(t, called)
}

func TestNewSupabasePersistenceRejectsRelativeURL(t *testing.T) {
	_, err := NewSupabasePersistence("not-a-url", "key")
	assert.Error(t, err)
}
