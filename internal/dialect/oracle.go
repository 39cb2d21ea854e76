package dialect

import (
	"fmt"
	"strings"
)

type OracleDialect struct{}

func (d *OracleDialect) TablesQuery() string {
	return `SELECT TABLE_NAME FROM all_tables WHERE OWNER = :1`
}

func (d *OracleDialect) CurrentSchemaQuery() string {
	return "SELECT USER FROM DUAL"
}

func (d *OracleDialect) DefaultSchema() string {
	return ""
}

// Oracle folds unquoted identifiers to upper case; quote the upper-cased
// name so catalog names round-trip.
func (d *OracleDialect) QuoteIdentifier(name string) string {
	return QuoteAnsi(strings.ToUpper(name))
}

func (d *OracleDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdentifier(table))
}
