package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"store-inventory/core/config"
	"store-inventory/core/database"
	"store-inventory/core/ledger"
)

// Prints the persisted ledger of one item next to its stored stock count.
func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: debug_ledger <itemId>")
	}
	itemID := os.Args[1]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	state, err := database.LoadState(context.Background(), db)
	if err != nil {
		log.Fatal(err)
	}

	c, _, l, err := database.Restore(state)
	if err != nil {
		log.Fatal(err)
	}

	item, err := c.Get(itemID)
	if err != nil {
		fmt.Printf("Item %s is not in the catalog (removed items keep their ledger)\n", itemID)
	} else {
		fmt.Printf("=== %s (%s) ===\n", item.Name, item.ID)
		fmt.Printf("Baseline: %d, on hand: %d\n", item.Baseline, item.QuantityOnHand)
	}

	running := item.Baseline
	for e := range l.EntriesForItem(itemID) {
		running += e.Signed()
		fmt.Printf("#%d %s %-3s %4d  running=%d  actor=%s request=%s\n",
			e.Seq, e.Timestamp.Format("2006-01-02 15:04:05"), e.Direction, e.Quantity, running, e.ActorID, e.RequestID)
	}

	in, out := ledger.Totals(l.EntriesForItem(itemID))
	fmt.Printf("Total in: %d, total out: %d, replayed: %d\n", in, out, ledger.Replay(item.Baseline, l.EntriesForItem(itemID)))
}
