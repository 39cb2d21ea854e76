package dialect

import (
	"fmt"
	"strings"
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) TablesQuery() string {
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *MSSQLDialect) CurrentSchemaQuery() string {
	return "SELECT SCHEMA_NAME()"
}

func (d *MSSQLDialect) DefaultSchema() string {
	return "dbo"
}

func (d *MSSQLDialect) QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (d *MSSQLDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdentifier(table))
}
