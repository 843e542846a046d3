package ledger

import "time"

// Direction is the way stock moves.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Entry is one immutable stock movement.
type Entry struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
	Direction Direction `json:"direction"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Quantity  int       `json:"quantity"`
	ActorID   string    `json:"actor_id"`
	// RequestID links an "out" entry to the approval that produced it.
	RequestID string `json:"request_id,omitempty"`
	Remarks   string `json:"remarks,omitempty"`
}

// Signed returns the entry's effect on stock: positive for "in", negative for "out".
func (e Entry) Signed() int {
	if e.Direction == DirectionOut {
		return -e.Quantity
	}
	return e.Quantity
}
