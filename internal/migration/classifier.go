package migration

import (
	"regexp"
	"strings"
)

// snippetLimit bounds the SQL excerpt carried on an Operation for
// diagnostics.
const snippetLimit = 100

type lockRule struct {
	re      *regexp.Regexp
	lock    LockKind
	risk    RiskLevel
	noWhere bool // rule only applies to statements without a WHERE clause
}

// Rules are ordered most specific first. A match claims its starting
// offset within the statement, so "ALTER TABLE t RENAME COLUMN" is taken
// by the rename rule and the generic ALTER rule (last) cannot re-emit the
// same span.
var lockRules = []lockRule{
	{regexp.MustCompile("(?i)ALTER\\s+TABLE\\s+[`\"]?(\\w+)[`\"]?\\s+RENAME\\s+COLUMN"), LockRenameColSQL, RiskHigh, false},
	{regexp.MustCompile("(?i)CREATE\\s+(?:UNIQUE\\s+)?INDEX\\s+.*?\\s+ON\\s+[`\"]?(\\w+)[`\"]?"), LockCreateIndex, RiskHigh, false},
	{regexp.MustCompile("(?i)DROP\\s+INDEX\\s+.*?\\s+ON\\s+[`\"]?(\\w+)[`\"]?"), LockDropIndex, RiskHigh, false},
	{regexp.MustCompile("(?i)TRUNCATE\\s+TABLE\\s+[`\"]?(\\w+)[`\"]?"), LockTruncate, RiskHigh, false},
	{regexp.MustCompile("(?i)DROP\\s+TABLE\\s+(?:IF\\s+EXISTS\\s+)?[`\"]?(\\w+)[`\"]?"), LockDropTable, RiskHigh, false},
	{regexp.MustCompile("(?i)UPDATE\\s+[`\"]?(\\w+)[`\"]?\\s+SET\\b"), LockUpdateNoWhere, RiskHigh, true},
	{regexp.MustCompile("(?i)DELETE\\s+FROM\\s+[`\"]?(\\w+)[`\"]?"), LockDeleteNoWhere, RiskHigh, true},
	{regexp.MustCompile("(?i)ALTER\\s+TABLE\\s+[`\"]?(\\w+)[`\"]?\\s+"), LockAlterTable, RiskHigh, false},
}

var whereRe = regexp.MustCompile(`(?i)\bWHERE\b`)

// Classifier scans SQL text for lock-taking statement shapes against a
// fixed monitored-table set.
type Classifier struct {
	monitored MonitoredTables
}

// NewClassifier returns a classifier bound to the given monitored set.
func NewClassifier(monitored MonitoredTables) *Classifier {
	return &Classifier{monitored: monitored}
}

// Classify emits one Operation per lock-shape match whose table is
// monitored. Statements are isolated on ';' first so the WHERE check for
// UPDATE/DELETE cannot be satisfied by a clause belonging to a later
// statement. Repeated matches of the same shape are each recorded;
// de-duplication happens at the locked-tables level.
func (c *Classifier) Classify(sqlText string) []Operation {
	var ops []Operation
	for _, stmt := range splitStatements(sqlText) {
		hasWhere := whereRe.MatchString(stmt)
		claimed := make(map[int]bool)
		for _, rule := range lockRules {
			for _, m := range rule.re.FindAllStringSubmatchIndex(stmt, -1) {
				if claimed[m[0]] {
					continue
				}
				claimed[m[0]] = true
				if rule.noWhere && hasWhere {
					continue
				}
				table := stmt[m[2]:m[3]]
				if !c.monitored.Contains(table) {
					continue
				}
				ops = append(ops, Operation{
					Source:  SourceRawSQL,
					Lock:    rule.lock,
					Table:   strings.ToLower(table),
					Risk:    rule.risk,
					Snippet: snippet(stmt[m[0]:m[1]]),
				})
			}
		}
	}
	return ops
}

// splitStatements is a best-effort split on statement terminators. It is
// not quote-aware; a ';' inside a string literal splits too, which only
// ever narrows a match span.
func splitStatements(sqlText string) []string {
	var stmts []string
	for _, part := range strings.Split(sqlText, ";") {
		if part = strings.TrimSpace(part); part != "" {
			stmts = append(stmts, part)
		}
	}
	return stmts
}

func snippet(s string) string {
	if len(s) > snippetLimit {
		return s[:snippetLimit]
	}
	return s
}
