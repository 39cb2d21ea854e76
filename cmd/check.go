package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lock-check/internal/migration"
)

var (
	tables    []string
	appName   string
	minTables int
	verbose   bool
	strict    bool
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Check migration files for multi-table lock risk",
	Long: `Analyzes the given Django migration files and BLOCKS (exit code 1)
when a single migration would lock 2+ large tables. Non-migration files
are skipped, so the full pre-commit file list can be passed as-is.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetCheckConfig()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			if cfg.Verbose {
				fmt.Println("📝 No files provided for checking")
			}
			return nil
		}

		docs := readMigrationFiles(args)
		if len(docs) == 0 {
			if cfg.Verbose {
				fmt.Println("📝 No migration files found for checking")
			}
			return nil
		}

		result := migration.Evaluate(docs, migration.Options{
			Tables:    cfg.Tables,
			App:       cfg.App,
			MinTables: cfg.MinTables,
		})

		printReport(result, cfg)

		if !result.AllPassed {
			fmt.Printf("\n❌ Pre-commit hook FAILED: locks found in %d migrations\n", len(result.Critical))
			if strict {
				os.Exit(1)
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringSliceVarP(&tables, "tables", "t", DefaultLargeTables, "list of LARGE tables to check")
	checkCmd.Flags().StringVarP(&appName, "app", "a", "", "Django app name (for determining full table names)")
	checkCmd.Flags().IntVarP(&minTables, "min-tables", "m", migration.DefaultMinTables, "minimum number of tables to BLOCK commit")
	checkCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	checkCmd.Flags().BoolVarP(&strict, "strict", "s", true, "strict mode - BLOCK commit when problems are detected")

	// Flag > config file > default, resolved per key.
	viper.BindPFlag("tables", checkCmd.Flags().Lookup("tables"))
	viper.BindPFlag("app", checkCmd.Flags().Lookup("app"))
	viper.BindPFlag("min_tables", checkCmd.Flags().Lookup("min-tables"))
	viper.BindPFlag("verbose", checkCmd.Flags().Lookup("verbose"))
}

// readMigrationFiles loads the candidate files. Unreadable files are
// reported and skipped; they never fail the batch.
func readMigrationFiles(paths []string) []migration.Document {
	var docs []migration.Document
	for _, path := range paths {
		if !migration.IsMigrationFile(path) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("❌ Error reading file %s: %v\n", path, err)
			continue
		}
		docs = append(docs, migration.Document{ID: path, Text: string(data)})
	}
	return docs
}
