package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ledgerJSON bool

// ledgerCmd groups ledger commands.
var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the stock ledger",
}

// ledgerVerifyCmd replays the ledger of every item against its stock count.
var ledgerVerifyCmd = &cobra.Command{
	Use:   "verify [itemId]",
	Short: "Verify that stock counts match the ledger",
	Long:  `Replays each item's ledger from its baseline and compares the result with the stock on hand. Exits non-zero when any item disagrees. Requires the database backend.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrapPersistent(cmd.Context(), "ledger verify")
		if err != nil {
			return err
		}
		defer rt.close()

		if len(args) == 1 {
			audit, err := rt.engine.Verify(args[0])
			if err != nil {
				return err
			}
			if ledgerJSON {
				return printJSON(audit)
			}
			rt.logger.Info("Item audited",
				zap.String("item_id", audit.ItemID),
				zap.Int("expected", audit.Expected),
				zap.Int("on_hand", audit.OnHand),
				zap.Bool("balanced", audit.Balanced),
			)
			if !audit.Balanced {
				return fmt.Errorf("item %s is unbalanced", audit.ItemID)
			}
			return nil
		}

		summary := rt.engine.VerifyAll()
		if ledgerJSON {
			if err := printJSON(summary); err != nil {
				return err
			}
		} else {
			for _, a := range summary.Audits {
				if !a.Balanced {
					rt.logger.Error("Conservation breach",
						zap.String("item_id", a.ItemID),
						zap.String("item_name", a.ItemName),
						zap.Int("expected", a.Expected),
						zap.Int("on_hand", a.OnHand),
					)
				}
			}
			rt.logger.Info("Ledger verified", zap.Int("items", summary.Items), zap.Int("unbalanced", summary.Unbalanced))
		}
		if summary.Unbalanced > 0 {
			return fmt.Errorf("%d of %d items are unbalanced", summary.Unbalanced, summary.Items)
		}
		return nil
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	ledgerVerifyCmd.Flags().BoolVar(&ledgerJSON, "json", false, "Print the audit as JSON")
	ledgerCmd.AddCommand(ledgerVerifyCmd)
	RootCmd.AddCommand(ledgerCmd)
}
