package dialect

// Dialect abstracts database-specific catalog access for large-table
// discovery.
type Dialect interface {
	// TablesQuery lists the base tables of a schema; takes one bind
	// parameter (the schema/owner name) in the dialect's placeholder style.
	TablesQuery() string

	// CurrentSchemaQuery returns a query yielding the connection's
	// current schema, or "" when the dialect uses a fixed default.
	CurrentSchemaQuery() string

	// DefaultSchema is the fallback when no schema can be determined.
	DefaultSchema() string

	// QuoteIdentifier makes a table name safe to interpolate.
	QuoteIdentifier(name string) string

	// CountQuery builds an exact row count query for one table.
	CountQuery(table string) string
}
