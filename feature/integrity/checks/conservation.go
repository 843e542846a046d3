package checks

import "store-inventory/core/reconcile"

// ConservationReport lists the items whose stock disagrees with their ledger.
type ConservationReport struct {
	Items      int               `json:"items"`
	Balanced   bool              `json:"balanced"`
	Unbalanced []reconcile.Audit `json:"unbalanced"`
}

// CheckConservation replays every item's ledger against its stock.
func CheckConservation(engine *reconcile.Engine) *ConservationReport {
	summary := engine.VerifyAll()
	report := &ConservationReport{
		Items:      summary.Items,
		Balanced:   summary.Unbalanced == 0,
		Unbalanced: []reconcile.Audit{},
	}
	for _, a := range summary.Audits {
		if !a.Balanced {
			report.Unbalanced = append(report.Unbalanced, a)
		}
	}
	return report
}
