package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vk4tech/passbot/internal/config"
	"github.com/vk4tech/passbot/internal/db"
	"github.com/vk4tech/passbot/internal/directory"
	"github.com/vk4tech/passbot/internal/progress"
)

var importCmd = &cobra.Command{
	Use:   "import <registrations.csv>",
	Short: "Import visitor registrations from a CSV export",
	Long: `Loads visitor registrations into the directory database. The CSV must
have a header row; name, email, phone, designation, visitor_code,
visitor_type and entry_pass_url columns are recognized. Rows without a
usable phone number are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening CSV: %w", err)
		}
		defer f.Close()

		result, err := directory.ReadCSV(f)
		if err != nil {
			return fmt.Errorf("parsing CSV: %w", err)
		}

		database, err := db.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		store := directory.NewStore(database)
		reporter := progress.NewReporter()
		reporter.Start(len(result.Records))

		ctx := context.Background()
		inserted := 0
		for i, rec := range result.Records {
			if err := store.Insert(ctx, rec); err != nil {
				reporter.Finish()
				return fmt.Errorf("inserting visitor %q: %w", rec.Phone, err)
			}
			inserted++
			reporter.Update(i+1, rec.Phone)
		}
		reporter.Finish()

		fmt.Printf("Imported %d visitors (%d rows skipped)\n", inserted, result.Skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
