package cmd

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"lock-check/internal/dialect"
	"lock-check/internal/migration"
)

var (
	dsn        string
	driverName string
	schemaName string
	minRows    int64
	outFile    string
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Discover large tables from a live database",
	Long: `Connects to a database, counts rows per table and prints the tables
big enough to be worth monitoring. With --out the result is written as a
lock-check JSON configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dsn == "" {
			return fmt.Errorf("--dsn is required")
		}
		if driverName == "" {
			// Same heuristic the DSN usually makes obvious anyway.
			if strings.Contains(dsn, "postgres") || strings.Contains(dsn, "sslmode") {
				driverName = "postgres"
			} else {
				driverName = "mysql"
			}
		}

		db, err := sql.Open(driverName, dsn)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}

		d := dialect.Get(driverName)
		log.Printf("Using Dialect: %s\n", driverName)

		schema := schemaName
		if schema == "" {
			if q := d.CurrentSchemaQuery(); q != "" {
				if err := db.QueryRow(q).Scan(&schema); err != nil {
					log.Printf("Warning: failed to detect current schema: %v\n", err)
				}
			}
		}
		if schema == "" {
			schema = d.DefaultSchema()
		}
		if schema == "" {
			return fmt.Errorf("no schema selected (use --schema)")
		}

		sizes, err := measureTables(db, d, schema)
		if err != nil {
			return err
		}
		return reportTables(sizes)
	},
}

func init() {
	RootCmd.AddCommand(tablesCmd)

	tablesCmd.Flags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN)")
	tablesCmd.Flags().StringVar(&driverName, "driver", "", "database driver (mysql, postgres, sqlserver, oracle)")
	tablesCmd.Flags().StringVar(&schemaName, "schema", "", "schema/owner to inspect (default: connection's current schema)")
	tablesCmd.Flags().Int64Var(&minRows, "min-rows", 1000000, "row count above which a table is considered large")
	tablesCmd.Flags().StringVar(&outFile, "out", "", "write result as a lock-check JSON config file")
}

type tableSize struct {
	Name string
	Rows int64
}

// measureTables counts rows of every base table in the schema, with a
// progress bar since exact counts can take a while on big databases.
func measureTables(db *sql.DB, d dialect.Dialect, schema string) ([]tableSize, error) {
	rows, err := db.Query(d.TablesQuery(), schema)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	fmt.Printf("🔍 Measuring %d tables in schema %s\n", len(names), schema)

	uiprogress.Start()
	bar := uiprogress.AddBar(len(names)).AppendCompleted().PrependElapsed()

	var sizes []tableSize
	for _, name := range names {
		var count int64
		if err := db.QueryRow(d.CountQuery(name)).Scan(&count); err != nil {
			log.Printf("Warning: failed to count %s: %v (continuing...)\n", name, err)
			bar.Incr()
			continue
		}
		sizes = append(sizes, tableSize{Name: name, Rows: count})
		bar.Incr()
	}
	uiprogress.Stop()

	sort.Slice(sizes, func(i, j int) bool {
		if sizes[i].Rows != sizes[j].Rows {
			return sizes[i].Rows > sizes[j].Rows
		}
		return sizes[i].Name < sizes[j].Name
	})
	return sizes, nil
}

func reportTables(sizes []tableSize) error {
	var large []string
	for _, t := range sizes {
		marker := "  "
		if t.Rows >= minRows {
			marker = "🔒"
			large = append(large, strings.ToLower(t.Name))
		}
		fmt.Printf("%s %-40s %12d rows\n", marker, t.Name, t.Rows)
	}
	sort.Strings(large)

	if len(large) == 0 {
		fmt.Printf("✅ No tables above %d rows\n", minRows)
		return nil
	}
	fmt.Printf("📊 %d large tables (>= %d rows): %s\n", len(large), minRows, strings.Join(large, ", "))

	if outFile == "" {
		return nil
	}
	cfg := CheckConfig{Tables: large, MinTables: migration.DefaultMinTables}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(outFile, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", outFile, err)
	}
	fmt.Printf("💾 Wrote config: %s\n", outFile)
	return nil
}
