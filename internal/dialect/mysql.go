package dialect

import (
	"fmt"
	"strings"
)

type MysqlDialect struct{}

func (d *MysqlDialect) TablesQuery() string {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *MysqlDialect) CurrentSchemaQuery() string {
	return "SELECT DATABASE()"
}

func (d *MysqlDialect) DefaultSchema() string {
	return ""
}

func (d *MysqlDialect) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (d *MysqlDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdentifier(table))
}
