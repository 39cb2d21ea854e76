package migration

import (
	"sort"
	"strings"
)

// SourceRawSQL marks operations recovered from RunSQL statement text, as
// opposed to declarative operations which carry their Django class name.
const SourceRawSQL = "RunSQL"

// LockKind names the SQL-level lock an operation is expected to take.
// Values match the strings printed in reports.
type LockKind string

const (
	LockCreateTable    LockKind = "CREATE TABLE"
	LockDropTable      LockKind = "DROP TABLE"
	LockRenameTable    LockKind = "RENAME TABLE"
	LockAlterTable     LockKind = "ALTER TABLE"
	LockAddColumn      LockKind = "ALTER TABLE (ADD COLUMN)"
	LockDropColumn     LockKind = "ALTER TABLE (DROP COLUMN)"
	LockAlterColumn    LockKind = "ALTER TABLE (ALTER COLUMN)"
	LockRenameColumn   LockKind = "ALTER TABLE (RENAME COLUMN)"
	LockCreateIndex    LockKind = "CREATE INDEX"
	LockDropIndex      LockKind = "DROP INDEX"
	LockAddConstraint  LockKind = "ALTER TABLE (ADD CONSTRAINT)"
	LockDropConstraint LockKind = "ALTER TABLE (DROP CONSTRAINT)"
	LockUniqueTogether LockKind = "ALTER TABLE (UNIQUE TOGETHER)"
	LockIndexTogether  LockKind = "ALTER TABLE (INDEX TOGETHER)"
	LockTruncate       LockKind = "TRUNCATE TABLE"
	LockRenameColSQL   LockKind = "RENAME COLUMN"
	LockUpdateNoWhere  LockKind = "UPDATE without WHERE"
	LockDeleteNoWhere  LockKind = "DELETE without WHERE"
)

// RiskLevel is a qualitative estimate of how disruptive the implied lock is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Operation is one recognized lock-taking construct against a monitored
// table. Immutable once emitted.
type Operation struct {
	Source    string // Django operation class name, or SourceRawSQL
	Lock      LockKind
	Table     string // canonical (lower-cased, app-prefixed) table name
	Risk      RiskLevel
	Snippet   string // raw SQL excerpt, capped, empty for structural ops
	ModelName string // structural ops only
}

// Description renders the report line, e.g. "AddField -> ALTER TABLE (ADD COLUMN)".
func (o Operation) Description() string {
	return o.Source + " -> " + string(o.Lock)
}

// IsRawSQL reports whether the operation came out of RunSQL statement text.
func (o Operation) IsRawSQL() bool {
	return o.Source == SourceRawSQL
}

// MonitoredTables is the set of large, lock-sensitive table names.
// Membership is case-insensitive; the set is never mutated after construction.
type MonitoredTables map[string]struct{}

// NewMonitoredTables builds the set from caller-supplied names.
func NewMonitoredTables(names []string) MonitoredTables {
	m := make(MonitoredTables, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			m[n] = struct{}{}
		}
	}
	return m
}

// Contains reports whether name is monitored, ignoring case.
func (m MonitoredTables) Contains(name string) bool {
	_, ok := m[strings.ToLower(name)]
	return ok
}

// Names returns the monitored table names sorted for stable output.
func (m MonitoredTables) Names() []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
