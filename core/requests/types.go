package requests

import "time"

// Status is the lifecycle state of a request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Outcome is a storekeeper's terminal decision.
type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
)

// IsValid reports whether o is a known outcome.
func (o Outcome) IsValid() bool {
	return o == OutcomeApproved || o == OutcomeRejected
}

// Status returns the status a request takes after this outcome.
func (o Outcome) Status() Status {
	if o == OutcomeApproved {
		return StatusApproved
	}
	return StatusRejected
}

// Context is the train/car/NCR reference a request is made for.
// Values are opaque reference strings supplied by the caller.
type Context struct {
	NCRNumber      string `json:"ncr_number"`
	TrainSetNumber string `json:"train_set_number"`
	CarNumber      string `json:"car_number"`
	Remarks        string `json:"remarks"`
}

// Serials is the serial-number disposition recorded at approval.
type Serials struct {
	Healthy []string `json:"healthy"`
	Faulty  []string `json:"faulty"`
}

// Count returns the number of healthy and faulty serials combined.
func (s Serials) Count() int {
	return len(s.Healthy) + len(s.Faulty)
}

func (s *Serials) clone() *Serials {
	if s == nil {
		return nil
	}
	return &Serials{
		Healthy: append([]string(nil), s.Healthy...),
		Faulty:  append([]string(nil), s.Faulty...),
	}
}

// Decision records who decided a request, when, and how.
type Decision struct {
	DecidedBy string    `json:"decided_by"`
	DecidedAt time.Time `json:"decided_at"`
	Outcome   Outcome   `json:"outcome"`
	Serials   *Serials  `json:"serials,omitempty"`
}

// Request is a requester's ask to withdraw a quantity of one item.
type Request struct {
	ID                string    `json:"id"`
	ItemID            string    `json:"item_id"`
	ItemName          string    `json:"item_name"`
	QuantityRequested int       `json:"quantity_requested"`
	RequesterID       string    `json:"requester_id"`
	Context           Context   `json:"context"`
	Status            Status    `json:"status"`
	SubmittedAt       time.Time `json:"submitted_at"`
	Decision          *Decision `json:"decision,omitempty"`
}

func (r Request) clone() Request {
	if r.Decision != nil {
		d := *r.Decision
		d.Serials = r.Decision.Serials.clone()
		r.Decision = &d
	}
	return r
}

// Draft is the input to Create.
type Draft struct {
	ItemID      string
	ItemName    string
	Quantity    int
	RequesterID string
	Context     Context
}
