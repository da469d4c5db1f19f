package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/taller3d/printshop-api/models"
)

// DefaultDeliveryDays is the delivery window assumed when an order is
// taken in without an agreed date
const DefaultDeliveryDays = 7

// Persistence is the remote collection the store writes through to.
// List must return orders sorted by delivery date ascending with
// undated orders last.
type Persistence interface {
	List(ctx context.Context) ([]models.Order, error)
	Insert(ctx context.Context, order models.Order) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteByID(ctx context.Context, id string) error
}

// OrderDraft carries user input for a create or edit. Price and deposit
// arrive as the free text typed into the form; they are coerced with
// "parse as a number, default 0 on failure", matching the intake form's
// long-standing leniency.
type OrderDraft struct {
	Name         string
	Client       string
	TotalPrice   string
	Deposit      string
	DeliveryDate string // YYYY-MM-DD, empty for none
	Description  string
}

// OrderStore owns the in-memory snapshot of all orders for the session
// and serializes every mutation through the persistence backend.
// Each mutation is followed by a full reload rather than a local patch:
// the displayed state is always exactly what the backend holds after
// the user's own last write.
type OrderStore struct {
	persistence Persistence

	mu        sync.RWMutex
	orders    []models.Order
	connected bool
}

// NewOrderStore creates a store over the given backend. A nil backend
// produces a "not configured" store: it renders an empty snapshot and
// fails every operation with ErrNotConfigured.
func NewOrderStore(persistence Persistence) *OrderStore {
	return &OrderStore{persistence: persistence}
}

// Configured reports whether a persistence backend is attached
func (s *OrderStore) Configured() bool {
	return s.persistence != nil
}

// Connected reports whether the last load round trip succeeded
func (s *OrderStore) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Load fetches the full collection from the backend and replaces the
// snapshot. On failure the previous snapshot is kept, the store is
// marked disconnected and ErrConnectivity is returned with the cause.
func (s *OrderStore) Load(ctx context.Context) error {
	if s.persistence == nil {
		return ErrNotConfigured
	}

	orders, err := s.persistence.List(ctx)
	if err != nil {
		s.mu.Lock()
		s.connected = false
		s.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	s.mu.Lock()
	s.orders = orders
	s.connected = true
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current order list. Callers never see
// the store's own slice, so reads need no coordination with reloads.
func (s *OrderStore) Snapshot() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]models.Order, len(s.orders))
	copy(snapshot, s.orders)
	return snapshot
}

// Get returns one order from the snapshot by id
func (s *OrderStore) Get(id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

// Create validates and inserts a new order, then reloads. The name is
// required; everything else is optional. Status starts at Received and
// a missing delivery date defaults to a week out.
func (s *OrderStore) Create(ctx context.Context, draft OrderDraft) error {
	if s.persistence == nil {
		return ErrNotConfigured
	}
	if strings.TrimSpace(draft.Name) == "" {
		return fmt.Errorf("%w: order name is required", ErrValidation)
	}

	date, err := parseDraftDate(draft.DeliveryDate)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if date == nil {
		d := models.DateOf(time.Now().AddDate(0, 0, DefaultDeliveryDays))
		date = &d
	}

	order := models.Order{
		Name:         draft.Name,
		Client:       draft.Client,
		TotalPrice:   coerceAmount(draft.TotalPrice),
		Deposit:      coerceAmount(draft.Deposit),
		DeliveryDate: date,
		Status:       models.StatusReceived,
		Description:  optionalText(draft.Description),
	}

	if err := s.persistence.Insert(ctx, order); err != nil {
		return err
	}
	return s.Load(ctx)
}

// SetStatus assigns a new status to an order, then reloads. Any valid
// status may be assigned from any other; the Received -> InProcess ->
// Ready progression is a convention of the dashboard, not a rule here.
func (s *OrderStore) SetStatus(ctx context.Context, id string, status models.Status) error {
	if s.persistence == nil {
		return ErrNotConfigured
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	if _, err := s.Get(id); err != nil {
		return err
	}

	fields := map[string]interface{}{"status": status}
	if err := s.persistence.UpdateFields(ctx, id, fields); err != nil {
		return err
	}
	return s.Load(ctx)
}

// MarkPaid settles an order in full by raising the deposit to the total
// price, then reloads
func (s *OrderStore) MarkPaid(ctx context.Context, id string) error {
	if s.persistence == nil {
		return ErrNotConfigured
	}
	order, err := s.Get(id)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{"deposit": order.TotalPrice}
	if err := s.persistence.UpdateFields(ctx, id, fields); err != nil {
		return err
	}
	return s.Load(ctx)
}

// Update applies a full-field edit, then reloads. Numeric fields use
// the same coercion as Create; an empty date or description is stored
// as absent, not as an empty string.
func (s *OrderStore) Update(ctx context.Context, id string, draft OrderDraft) error {
	if s.persistence == nil {
		return ErrNotConfigured
	}
	if strings.TrimSpace(draft.Name) == "" {
		return fmt.Errorf("%w: order name is required", ErrValidation)
	}
	if _, err := s.Get(id); err != nil {
		return err
	}

	date, err := parseDraftDate(draft.DeliveryDate)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := map[string]interface{}{
		"name":          draft.Name,
		"client":        draft.Client,
		"total_price":   coerceAmount(draft.TotalPrice),
		"deposit":       coerceAmount(draft.Deposit),
		"delivery_date": date,
		"description":   optionalText(draft.Description),
	}
	if err := s.persistence.UpdateFields(ctx, id, fields); err != nil {
		return err
	}
	return s.Load(ctx)
}

// AttachFile records the storage key of an uploaded design file on an
// order, then reloads
func (s *OrderStore) AttachFile(ctx context.Context, id, key string) error {
	if s.persistence == nil {
		return ErrNotConfigured
	}
	if _, err := s.Get(id); err != nil {
		return err
	}

	fields := map[string]interface{}{"file_s3_key": &key}
	if err := s.persistence.UpdateFields(ctx, id, fields); err != nil {
		return err
	}
	return s.Load(ctx)
}

// Delete removes an order, then reloads. Callers must have taken the
// user through an explicit confirmation step first; controllers enforce
// that before this is reached.
func (s *OrderStore) Delete(ctx context.Context, id string) error {
	if s.persistence == nil {
		return ErrNotConfigured
	}
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.persistence.DeleteByID(ctx, id); err != nil {
		return err
	}
	return s.Load(ctx)
}

// coerceAmount parses free-text money input, defaulting to 0 when the
// text is empty or not a number. This mirrors the intake form's
// behavior and is deliberately not strict validation.
func coerceAmount(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

// parseDraftDate turns the draft's date text into an optional Date.
// Empty means "no date"; malformed text is a validation error rather
// than silently dropping the date.
func parseDraftDate(raw string) (*models.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func optionalText(raw string) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return &raw
}
