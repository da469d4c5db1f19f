package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/taller3d/printshop-api/models"
)

// MockPersistence is an in-memory Persistence implementation for
// testing. It honors the List ordering contract and counts calls so
// tests can assert that a rejected action never reached the backend.
type MockPersistence struct {
	mu     sync.Mutex
	orders map[string]models.Order
	nextID int

	// Failure injection: when set, the matching operation returns the
	// error instead of touching the data.
	ListErr   error
	InsertErr error
	UpdateErr error
	DeleteErr error

	ListCalls   int
	InsertCalls int
	UpdateCalls int
	DeleteCalls int
}

// NewMockPersistence creates an empty mock backend
func NewMockPersistence() *MockPersistence {
	return &MockPersistence{orders: make(map[string]models.Order)}
}

// Seed inserts orders directly, bypassing call counting
func (m *MockPersistence) Seed(orders ...models.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range orders {
		if o.ID == "" {
			m.nextID++
			o.ID = fmt.Sprintf("order-%d", m.nextID)
		}
		m.orders[o.ID] = o
	}
}

// List returns all orders sorted by delivery date ascending, undated last
func (m *MockPersistence) List(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	orders := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		switch {
		case a.DeliveryDate == nil && b.DeliveryDate == nil:
			return a.ID < b.ID
		case a.DeliveryDate == nil:
			return false
		case b.DeliveryDate == nil:
			return true
		case !a.DeliveryDate.Equal(b.DeliveryDate.Time):
			return a.DeliveryDate.Before(b.DeliveryDate.Time)
		default:
			return a.ID < b.ID
		}
	})
	return orders, nil
}

// Insert stores a new order under a generated id
func (m *MockPersistence) Insert(ctx context.Context, order models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls++
	if m.InsertErr != nil {
		return m.InsertErr
	}

	m.nextID++
	order.ID = fmt.Sprintf("order-%d", m.nextID)
	m.orders[order.ID] = order
	return nil
}

// UpdateFields applies a partial update to a stored order
func (m *MockPersistence) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}

	order, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("no order with id %s", id)
	}
	for key, value := range fields {
		switch key {
		case "name":
			order.Name = value.(string)
		case "client":
			order.Client = value.(string)
		case "total_price":
			order.TotalPrice = value.(float64)
		case "deposit":
			order.Deposit = value.(float64)
		case "delivery_date":
			if value == nil {
				order.DeliveryDate = nil
			} else {
				order.DeliveryDate = value.(*models.Date)
			}
		case "status":
			order.Status = value.(models.Status)
		case "description":
			if value == nil {
				order.Description = nil
			} else {
				order.Description = value.(*string)
			}
		case "file_s3_key":
			if value == nil {
				order.FileS3Key = nil
			} else {
				order.FileS3Key = value.(*string)
			}
		default:
			return fmt.Errorf("unknown field %q", key)
		}
	}
	m.orders[id] = order
	return nil
}

// DeleteByID removes a stored order
func (m *MockPersistence) DeleteByID(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	if _, ok := m.orders[id]; !ok {
		return fmt.Errorf("no order with id %s", id)
	}
	delete(m.orders, id)
	return nil
}
