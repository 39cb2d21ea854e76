package migration

import (
	"regexp"
	"sort"
	"strings"
)

// Kind classifies a migration by what it executes.
type Kind string

const (
	KindUnknown Kind = "unknown"
	KindSchema  Kind = "schema_migration"
	KindData    Kind = "data_migration"
)

// DefaultMinTables is the locked-table count at which a migration blocks.
const DefaultMinTables = 2

// criticalThreshold marks results that lock enough tables to deserve the
// extra "critical" flag in reports.
const criticalThreshold = 3

// Result is the outcome of analyzing one migration document.
type Result struct {
	Kind         Kind
	LockedTables []string // canonical names, sorted
	Operations   []Operation
	LockedCount  int
	CriticalRisk bool
	ShouldBlock  bool
	Ignored      bool // an ignore directive short-circuited the analysis
}

// An ignore directive is an explicit escape hatch: a comment token or a
// docstring whose whole content is "nolock".
var (
	ignoreCommentRe   = regexp.MustCompile(`(?i)#\s*(?:no-lock-check|ignore-lock-check|nolock)\b`)
	ignoreDocstringRe = regexp.MustCompile(`(?i)"""\s*nolock\s*"""|'''\s*nolock\s*'''`)
)

// Analyzer runs the full per-document analysis: structural extraction,
// RunSQL statement extraction plus classification, and the block decision.
type Analyzer struct {
	monitored  MonitoredTables
	resolver   *Resolver
	classifier *Classifier
	minTables  int
}

// NewAnalyzer builds an analyzer for one monitored-table set and app
// label. minTables <= 0 falls back to DefaultMinTables.
func NewAnalyzer(monitored MonitoredTables, app string, minTables int) *Analyzer {
	if minTables <= 0 {
		minTables = DefaultMinTables
	}
	return &Analyzer{
		monitored:  monitored,
		resolver:   NewResolver(app),
		classifier: NewClassifier(monitored),
		minTables:  minTables,
	}
}

// Analyze inspects one migration document. It never fails: text without
// recognizable constructs yields an empty, non-blocking result.
func (a *Analyzer) Analyze(content string) Result {
	if content == "" {
		return Result{Kind: KindUnknown}
	}
	if ignoreCommentRe.MatchString(content) || ignoreDocstringRe.MatchString(content) {
		return Result{Kind: KindUnknown, Ignored: true}
	}

	structural := ExtractStructural(content, a.monitored, a.resolver)

	kind := KindSchema
	if strings.Contains(content, "RunPython") && !hasStructuralOps(content) {
		kind = KindData
	}

	ops := structural
	rawDerived := 0
	for _, arg := range runSQLArguments(content) {
		for _, stmt := range ExtractStatements(arg) {
			matched := a.classifier.Classify(stmt)
			rawDerived += len(matched)
			ops = append(ops, matched...)
		}
	}

	locked := make(map[string]struct{})
	for _, op := range ops {
		locked[op.Table] = struct{}{}
	}
	tables := make([]string, 0, len(locked))
	for t := range locked {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	count := len(tables)
	block := count >= a.minTables
	// A data migration whose locks came only from declarative
	// classification, not from executable SQL, never blocks.
	if kind == KindData && rawDerived == 0 {
		block = false
	}

	return Result{
		Kind:         kind,
		LockedTables: tables,
		Operations:   ops,
		LockedCount:  count,
		CriticalRisk: count >= criticalThreshold,
		ShouldBlock:  block,
	}
}

// runSQLArguments locates every RunSQL invocation and returns the raw
// text of its argument list. The end of the list is found by balanced
// delimiter scanning with quote awareness; a naive regex cannot survive
// nested parentheses or parens inside the SQL strings themselves.
func runSQLArguments(content string) []string {
	var args []string
	for i := 0; ; {
		j := strings.Index(content[i:], "RunSQL")
		if j < 0 {
			break
		}
		pos := i + j
		i = pos + len("RunSQL")
		if pos > 0 && isIdentPart(content[pos-1]) {
			continue // part of a longer identifier
		}
		k := i
		for k < len(content) && isSpace(content[k]) {
			k++
		}
		if k >= len(content) || content[k] != '(' {
			continue
		}
		end := matchParen(content, k)
		if end < 0 {
			args = append(args, content[k+1:]) // unterminated: best effort
			break
		}
		args = append(args, content[k+1:end])
		i = end + 1
	}
	return args
}

// matchParen returns the index of the ')' closing the '(' at open, or -1.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\'', '"':
			i = skipStringLiteral(s, i)
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
