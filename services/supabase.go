package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/taller3d/printshop-api/models"
)

const supabaseOrdersTable = "orders"

// SupabasePersistence talks to a Supabase project's auto-generated REST
// API (PostgREST) over the orders table. This is the default backend;
// the dashboard frontend used the same API directly before the service
// existed.
type SupabasePersistence struct {
	baseURL    *url.URL
	anonKey    string
	httpClient *http.Client
}

// NewSupabasePersistence creates a client for the given project URL and
// anon key
func NewSupabasePersistence(projectURL, anonKey string) (*SupabasePersistence, error) {
	parsed, err := url.Parse(projectURL)
	if err != nil {
		return nil, fmt.Errorf("parse supabase url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("supabase url must be absolute")
	}
	return &SupabasePersistence{
		baseURL: parsed,
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// List fetches every order, sorted by delivery date ascending with
// undated orders last
func (p *SupabasePersistence) List(ctx context.Context) ([]models.Order, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "delivery_date.asc.nullslast")

	resp, err := p.do(ctx, http.MethodGet, query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, supabaseError(resp)
	}

	var orders []models.Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

// Insert creates a new row; Supabase assigns the id
func (p *SupabasePersistence) Insert(ctx context.Context, order models.Order) error {
	body := map[string]interface{}{
		"name":          order.Name,
		"client":        order.Client,
		"total_price":   order.TotalPrice,
		"deposit":       order.Deposit,
		"delivery_date": order.DeliveryDate,
		"status":        order.Status,
		"description":   order.Description,
	}

	resp, err := p.do(ctx, http.MethodPost, nil, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return supabaseError(resp)
	}
	return nil
}

// UpdateFields patches only the given columns of one row
func (p *SupabasePersistence) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	query := url.Values{}
	query.Set("id", "eq."+id)

	resp, err := p.do(ctx, http.MethodPatch, query, fields)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return supabaseError(resp)
	}
	return nil
}

// DeleteByID removes one row
func (p *SupabasePersistence) DeleteByID(ctx context.Context, id string) error {
	query := url.Values{}
	query.Set("id", "eq."+id)

	resp, err := p.do(ctx, http.MethodDelete, query, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return supabaseError(resp)
	}
	return nil
}

// do issues one PostgREST request against the orders table
func (p *SupabasePersistence) do(ctx context.Context, method string, query url.Values, body interface{}) (*http.Response, error) {
	endpoint := *p.baseURL
	endpoint.Path = path.Join(endpoint.Path, "rest/v1", supabaseOrdersTable)
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", p.anonKey)
	req.Header.Set("Authorization", "Bearer "+p.anonKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=minimal")
	}

	return p.httpClient.Do(req)
}

// supabaseError surfaces the backend's own message verbatim
func supabaseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	if len(body) == 0 {
		return fmt.Errorf("supabase: %s", resp.Status)
	}
	return fmt.Errorf("supabase: %s: %s", resp.Status, body)
}
