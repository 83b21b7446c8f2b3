package models

import (
	"time"

	"github.com/google/uuid"
)

// TableStatus represents the occupancy status of a dining table
type TableStatus string

const (
	TableStatusAvailable TableStatus = "available"
	TableStatusOccupied  TableStatus = "occupied"
	TableStatusReserved  TableStatus = "reserved"
	TableStatusCleaning  TableStatus = "cleaning"
)

// Table represents a dining table
type Table struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	TableNumber int         `db:"table_number" json:"tableNumber"`
	Seats       int         `db:"seats" json:"seats"`
	Status      TableStatus `db:"status" json:"status"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// TableRequest is used for table creation/update
type TableRequest struct {
	TableNumber int         `json:"tableNumber"`
	Seats       int         `json:"seats"`
	Status      TableStatus `json:"status"`
}
