package database

import (
	"encoding/json"
	"fmt"
	"time"

	"store-inventory/core/catalog"
	"store-inventory/core/ledger"
	"store-inventory/core/requests"

	"gorm.io/gorm"
)

// ItemModel is a catalog item row.
type ItemModel struct {
	ID             string `gorm:"primaryKey;size:64"`
	Name           string `gorm:"size:255;not null"`
	PartNumber     string `gorm:"size:128;index"`
	System         string `gorm:"size:128"`
	QuantityOnHand int    `gorm:"not null"`
	Baseline       int    `gorm:"not null"`
	CreatedAt      time.Time
}

func (ItemModel) TableName() string { return "inventory_items" }

// RequestModel is a withdrawal request row. Serials are stored as a JSON document.
type RequestModel struct {
	ID             string `gorm:"primaryKey;size:64"`
	ItemID         string `gorm:"size:64;index;not null"`
	ItemName       string `gorm:"size:255"`
	Quantity       int    `gorm:"not null"`
	RequesterID    string `gorm:"size:128;index;not null"`
	NCRNumber      string `gorm:"size:128"`
	TrainSetNumber string `gorm:"size:64"`
	CarNumber      string `gorm:"size:64"`
	Remarks        string `gorm:"type:text"`
	Status         string `gorm:"size:16;index;not null"`
	SubmittedAt    time.Time
	DecidedBy      string `gorm:"size:128"`
	DecidedAt      *time.Time
	Outcome        string `gorm:"size:16"`
	Serials        string `gorm:"type:text"`
}

func (RequestModel) TableName() string { return "withdrawal_requests" }

// LedgerEntryModel is a ledger row. Seq preserves append order across restarts.
type LedgerEntryModel struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement:false"`
	ID        string    `gorm:"size:64;uniqueIndex;not null"`
	Timestamp time.Time `gorm:"not null"`
	Direction string    `gorm:"size:8;not null"`
	ItemID    string    `gorm:"size:64;index;not null"`
	ItemName  string    `gorm:"size:255"`
	Quantity  int       `gorm:"not null"`
	ActorID   string    `gorm:"size:128;not null"`
	RequestID string    `gorm:"size:64;index"`
	Remarks   string    `gorm:"type:text"`
}

func (LedgerEntryModel) TableName() string { return "ledger_entries" }

// Models lists every persisted model, in migration order.
func Models() []any {
	return []any{&ItemModel{}, &RequestModel{}, &LedgerEntryModel{}}
}

// Migrate creates or updates the inventory tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func itemToModel(it catalog.Item) ItemModel {
	return ItemModel{
		ID:             it.ID,
		Name:           it.Name,
		PartNumber:     it.PartNumber,
		System:         it.System,
		QuantityOnHand: it.QuantityOnHand,
		Baseline:       it.Baseline,
		CreatedAt:      it.CreatedAt,
	}
}

func (m ItemModel) toItem() catalog.Item {
	return catalog.Item{
		ID:             m.ID,
		Name:           m.Name,
		PartNumber:     m.PartNumber,
		System:         m.System,
		QuantityOnHand: m.QuantityOnHand,
		Baseline:       m.Baseline,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

func requestToModel(r requests.Request) (RequestModel, error) {
	m := RequestModel{
		ID:             r.ID,
		ItemID:         r.ItemID,
		ItemName:       r.ItemName,
		Quantity:       r.QuantityRequested,
		RequesterID:    r.RequesterID,
		NCRNumber:      r.Context.NCRNumber,
		TrainSetNumber: r.Context.TrainSetNumber,
		CarNumber:      r.Context.CarNumber,
		Remarks:        r.Context.Remarks,
		Status:         string(r.Status),
		SubmittedAt:    r.SubmittedAt,
	}
	if d := r.Decision; d != nil {
		at := d.DecidedAt
		m.DecidedBy = d.DecidedBy
		m.DecidedAt = &at
		m.Outcome = string(d.Outcome)
		if d.Serials != nil {
			raw, err := json.Marshal(d.Serials)
			if err != nil {
				return RequestModel{}, fmt.Errorf("encode serials for %s: %w", r.ID, err)
			}
			m.Serials = string(raw)
		}
	}
	return m, nil
}

func (m RequestModel) toRequest() (requests.Request, error) {
	r := requests.Request{
		ID:                m.ID,
		ItemID:            m.ItemID,
		ItemName:          m.ItemName,
		QuantityRequested: m.Quantity,
		RequesterID:       m.RequesterID,
		Context: requests.Context{
			NCRNumber:      m.NCRNumber,
			TrainSetNumber: m.TrainSetNumber,
			CarNumber:      m.CarNumber,
			Remarks:        m.Remarks,
		},
		Status:      requests.Status(m.Status),
		SubmittedAt: m.SubmittedAt.UTC(),
	}
	if m.DecidedAt != nil {
		d := &requests.Decision{
			DecidedBy: m.DecidedBy,
			DecidedAt: m.DecidedAt.UTC(),
			Outcome:   requests.Outcome(m.Outcome),
		}
		if m.Serials != "" {
			var s requests.Serials
			if err := json.Unmarshal([]byte(m.Serials), &s); err != nil {
				return requests.Request{}, fmt.Errorf("decode serials for %s: %w", m.ID, err)
			}
			d.Serials = &s
		}
		r.Decision = d
	}
	return r, nil
}

func entryToModel(e ledger.Entry) LedgerEntryModel {
	return LedgerEntryModel{
		Seq:       e.Seq,
		ID:        e.ID,
		Timestamp: e.Timestamp,
		Direction: string(e.Direction),
		ItemID:    e.ItemID,
		ItemName:  e.ItemName,
		Quantity:  e.Quantity,
		ActorID:   e.ActorID,
		RequestID: e.RequestID,
		Remarks:   e.Remarks,
	}
}

func (m LedgerEntryModel) toEntry() ledger.Entry {
	return ledger.Entry{
		ID:        m.ID,
		Seq:       m.Seq,
		Timestamp: m.Timestamp.UTC(),
		Direction: ledger.Direction(m.Direction),
		ItemID:    m.ItemID,
		ItemName:  m.ItemName,
		Quantity:  m.Quantity,
		ActorID:   m.ActorID,
		RequestID: m.RequestID,
		Remarks:   m.Remarks,
	}
}
