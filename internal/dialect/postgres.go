package dialect

import "fmt"

type PostgresDialect struct{}

func (d *PostgresDialect) TablesQuery() string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = $1 AND table_type = 'BASE TABLE'`
}

func (d *PostgresDialect) CurrentSchemaQuery() string {
	return "SELECT current_schema()"
}

func (d *PostgresDialect) DefaultSchema() string {
	return "public"
}

func (d *PostgresDialect) QuoteIdentifier(name string) string {
	return QuoteAnsi(name)
}

func (d *PostgresDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdentifier(table))
}
