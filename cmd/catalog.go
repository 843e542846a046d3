package cmd

import (
	"fmt"

	"store-inventory/core/catalog"
	"store-inventory/core/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// catalogCmd groups catalog maintenance commands.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the persisted catalog",
}

// catalogSeedCmd loads baseline items into the database.
var catalogSeedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Insert catalog items from a JSON seed file",
	Long:  `Inserts every item of the seed file whose id is not stored yet. Existing items are left untouched, so the command can be run repeatedly.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadBase()
		if err != nil {
			return err
		}
		defer logg.Sync()

		items, err := catalog.LoadSeedFile(args[0])
		if err != nil {
			return err
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		inserted, err := database.SeedItems(cmd.Context(), db, items)
		if err != nil {
			return err
		}
		logg.Info("Catalog seeded",
			zap.String("file", args[0]),
			zap.Int("items", len(items)),
			zap.Int64("inserted", inserted),
		)
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogSeedCmd)
	RootCmd.AddCommand(catalogCmd)
}
