package models

import (
	"time"
)

// Status is the production state of an order
type Status string

const (
	// StatusReceived is the initial state of every new order
	StatusReceived Status = "Received"
	// StatusInProcess means the job is on a printer
	StatusInProcess Status = "InProcess"
	// StatusReady means the job is finished and awaiting pickup
	StatusReady Status = "Ready"
)

// Valid reports whether s is one of the three known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusReceived, StatusInProcess, StatusReady:
		return true
	}
	return false
}

// Next returns the conventional forward step of the lifecycle
// (Received -> InProcess -> Ready). This is advisory only: status
// assignment is a free choice over the enum, and backward jumps are
// accepted everywhere.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusReceived:
		return StatusInProcess, true
	case StatusInProcess:
		return StatusReady, true
	}
	return s, false
}

// Order represents one print job tracked by the shop
type Order struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Client       string    `json:"client"`
	TotalPrice   float64   `json:"total_price"`
	Deposit      float64   `json:"deposit"`
	DeliveryDate *Date     `json:"delivery_date"` // nil disables urgency and sorts last by date
	Status       Status    `gorm:"not null;default:'Received'" json:"status"`
	Description  *string   `json:"description,omitempty"`
	FileS3Key    *string   `json:"file_s3_key,omitempty"`      // nullable, S3 key for the uploaded design file
	FileURL      *string   `gorm:"-" json:"file_url,omitempty"` // computed field, presigned URL for the design file
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
