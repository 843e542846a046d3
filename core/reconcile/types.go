package reconcile

import (
	"store-inventory/core/catalog"
	"store-inventory/core/ledger"
	"store-inventory/core/requests"
)

// Journal receives committed changes in commit order.
// Calls happen inside the item's critical section and must return immediately.
type Journal interface {
	RecordItem(item catalog.Item)
	RecordItemRemoved(itemID string)
	RecordRequest(req requests.Request)
	RecordEntry(entry ledger.Entry)
}

// Audit is the result of replaying one item's ledger against its stock.
type Audit struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Baseline int    `json:"baseline"`
	In       int    `json:"in"`
	Out      int    `json:"out"`
	// Expected is Baseline + In - Out.
	Expected int  `json:"expected"`
	OnHand   int  `json:"on_hand"`
	Balanced bool `json:"balanced"`
}

// Summary aggregates a full conservation audit.
type Summary struct {
	Items      int     `json:"items"`
	Unbalanced int     `json:"unbalanced"`
	Audits     []Audit `json:"audits"`
}

// State is everything needed to rebuild the stores after a restart.
type State struct {
	Items    []catalog.Item     `json:"items"`
	Requests []requests.Request `json:"requests"`
	Entries  []ledger.Entry     `json:"entries"`
}

// Operation names used in logs and metrics.
const (
	OpSubmitRequest = "submit_request"
	OpDecideRequest = "decide_request"
	OpAddItem       = "add_item"
	OpRemoveItem    = "remove_item"
	OpCheckIn       = "check_in"
)
