package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/taller3d/printshop-api/models"
)

func setupGormPersistence(t *testing.T) *GormPersistence {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	persistence, err := NewGormPersistenceWithDB(db)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return persistence
}

func TestGormInsertAndList(t *testing.T) {
	p := setupGormPersistence(t)
	ctx := context.Background()

	assert.NoError(t, p.Insert(ctx, models.Order{
		Name: "Prototype housing", Client: "Acme", TotalPrice: 100,
		DeliveryDate: datePtr(2026, time.May, 10), Status: models.StatusReceived,
	}))
	assert.NoError(t, p.Insert(ctx, models.Order{
		Name: "Spare gears", Client: "Beta Labs", TotalPrice: 50, Deposit: 50,
		DeliveryDate: datePtr(2026, time.May, 5), Status: models.StatusInProcess,
	}))
	assert.NoError(t, p.Insert(ctx, models.Order{
		Name: "Chess set", Status: models.StatusReceived,
	}))

	orders, err := p.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, orders, 3)

	// Date ascending, undated last
	assert.Equal(t, "Spare gears", orders[0].Name)
	assert.Equal(t, "Prototype housing", orders[1].Name)
	assert.Equal(t, "Chess set", orders[2].Name)
	assert.Nil(t, orders[2].DeliveryDate)

	// Ids were generated and the date survived the round trip
	assert.NotEmpty(t, orders[0].ID)
	assert.Equal(t, models.NewDate(2026, time.May, 5), *orders[0].DeliveryDate)
}

func TestGormUpdateFields(t *testing.T) {
	p := setupGormPersistence(t)
	ctx := context.Background()

	assert.NoError(t, p.Insert(ctx, models.Order{
		Name: "Benchy", TotalPrice: 200, Deposit: 50, Status: models.StatusReceived,
		DeliveryDate: datePtr(2026, time.May, 10),
	}))
	orders, err := p.List(ctx)
	assert.NoError(t, err)
	id := orders[0].ID

	// Partial update touches only the named columns
	assert.NoError(t, p.UpdateFields(ctx, id, map[string]interface{}{
		"deposit": 200.0,
		"status":  models.StatusReady,
	}))

	orders, err = p.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 200.0, orders[0].Deposit)
	assert.Equal(t, models.StatusReady, orders[0].Status)
	assert.Equal(t, 200.0, orders[0].TotalPrice)
	assert.Equal(t, "Benchy", orders[0].Name)
}

func TestGormUpdateFieldsClearsDate(t *testing.T) {
	p := setupGormPersistence(t)
	ctx := context.Background()

	assert.NoError(t, p.Insert(ctx, models.Order{
		Name: "Benchy", Status: models.StatusReceived,
		DeliveryDate: datePtr(2026, time.May, 10),
	}))
	orders, err := p.List(ctx)
	assert.NoError(t, err)
	id := orders[0].ID

	var noDate *models.Date
	assert.NoError(t, p.UpdateFields(ctx, id, map[string]interface{}{
		"delivery_date": noDate,
	}))

	orders, err = p.List(ctx)
	assert.NoError(t, err)
	assert.Nil(t, orders[0].DeliveryDate)
}

func TestGormUpdateFieldsUnknownID(t *testing.T) {
	p := setupGormPersistence(t)
	err := p.UpdateFields(context.Background(), "missing", map[string]interface{}{
		"deposit": 1.0,
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGormDeleteByID(t *testing.T) {
	p := setupGormPersistence(t)
	ctx := context.Background()

	assert.NoError(t, p.Insert(ctx, models.Order{Name: "Benchy", Status: models.StatusReceived}))
	orders, err := p.List(ctx)
	assert.NoError(t, err)

	assert.NoError(t, p.DeleteByID(ctx, orders[0].ID))

	orders, err = p.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, orders)

	assert.ErrorIs(t, p.DeleteByID(ctx, "missing"), ErrOrderNotFound)
}

func TestGormStoreRoundTrip(t *testing.T) {
	// The store drives the real backend end to end: create, pay, reload
	p := setupGormPersistence(t)
	store := NewOrderStore(p)
	ctx := context.Background()

	assert.NoError(t, store.Load(ctx))
	assert.NoError(t, store.Create(ctx, OrderDraft{
		Name:       "Benchy",
		TotalPrice: "200",
		Deposit:    "50",
	}))

	snapshot := store.Snapshot()
	assert.Len(t, snapshot, 1)
	assert.Equal(t, 150.0, Debt(snapshot[0]))

	assert.NoError(t, store.MarkPaid(ctx, snapshot[0].ID))
	order, err := store.Get(snapshot[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, Debt(order))
	assert.Equal(t, 100.0, PercentPaid(order))
}
