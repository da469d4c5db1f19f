package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/taller3d/printshop-api/models"
)

// GormPersistence stores orders directly in Postgres. Supabase projects
// expose their underlying database, so shops that prefer a plain
// DATABASE_URL over the REST API can use this backend instead.
type GormPersistence struct {
	db *gorm.DB
}

// NewGormPersistence connects to the database and migrates the orders
// table
func NewGormPersistence(databaseURL string) (*GormPersistence, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewGormPersistenceWithDB(db)
}

// NewGormPersistenceWithDB wraps an existing gorm connection (sqlite in
// tests)
func NewGormPersistenceWithDB(db *gorm.DB) (*GormPersistence, error) {
	if err := db.AutoMigrate(&models.Order{}); err != nil {
		return nil, fmt.Errorf("failed to migrate orders table: %w", err)
	}
	return &GormPersistence{db: db}, nil
}

// List returns all orders sorted by delivery date ascending, undated last
func (p *GormPersistence) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	// "delivery_date IS NULL" sorts false before true in both postgres
	// and sqlite, which puts dated orders first
	err := p.db.WithContext(ctx).
		Order("delivery_date IS NULL, delivery_date ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Insert creates a new row with a generated id
func (p *GormPersistence) Insert(ctx context.Context, order models.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if err := p.db.WithContext(ctx).Create(&order).Error; err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// UpdateFields patches only the given columns of one row
func (p *GormPersistence) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	result := p.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update order %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// DeleteByID removes one row
func (p *GormPersistence) DeleteByID(ctx context.Context, id string) error {
	result := p.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete order %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
