package migration

import (
	"fmt"
	"regexp"
	"strings"
)

// structuralOp maps one declarative Django operation class to the SQL
// lock it implies. param is the keyword argument that names the target:
// CreateModel declares a new model via name=, the *Together operations
// also use name=, everything else points at an existing model via
// model_name=.
type structuralOp struct {
	name  string
	lock  LockKind
	risk  RiskLevel
	param string
}

var structuralOps = []structuralOp{
	{"CreateModel", LockCreateTable, RiskHigh, "name"},
	{"DeleteModel", LockDropTable, RiskHigh, "model_name"},
	{"RenameModel", LockRenameTable, RiskHigh, "model_name"},
	{"AlterModelTable", LockAlterTable, RiskHigh, "model_name"},
	{"AddField", LockAddColumn, RiskHigh, "model_name"},
	{"RemoveField", LockDropColumn, RiskHigh, "model_name"},
	{"AlterField", LockAlterColumn, RiskHigh, "model_name"},
	{"RenameField", LockRenameColumn, RiskHigh, "model_name"},
	{"AddIndex", LockCreateIndex, RiskHigh, "model_name"},
	{"RemoveIndex", LockDropIndex, RiskHigh, "model_name"},
	{"AddConstraint", LockAddConstraint, RiskMedium, "model_name"},
	{"RemoveConstraint", LockDropConstraint, RiskMedium, "model_name"},
	{"AlterUniqueTogether", LockUniqueTogether, RiskHigh, "name"},
	{"AlterIndexTogether", LockIndexTogether, RiskHigh, "name"},
}

// Migration files are declarative call lists without a rigid surrounding
// grammar, so operations are recognized by pattern rather than parsed.
// The lazy gap after the opening paren tolerates intervening keyword
// arguments before the target-name parameter.
var (
	structuralParamRes = buildStructuralParamRes()
	structuralCallRes  = buildStructuralCallRes()
)

func buildStructuralParamRes() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(structuralOps))
	for i, op := range structuralOps {
		res[i] = regexp.MustCompile(fmt.Sprintf(`(?is)%s\s*\(\s*.*?%s\s*=\s*['"](.*?)['"]`, op.name, op.param))
	}
	return res
}

func buildStructuralCallRes() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(structuralOps))
	for i, op := range structuralOps {
		res[i] = regexp.MustCompile(fmt.Sprintf(`%s\s*\(`, op.name))
	}
	return res
}

// ExtractStructural emits an Operation for every recognized declarative
// operation whose resolved table is monitored.
func ExtractStructural(content string, monitored MonitoredTables, resolver *Resolver) []Operation {
	var ops []Operation
	for i, op := range structuralOps {
		for _, m := range structuralParamRes[i].FindAllStringSubmatch(content, -1) {
			model := m[1]
			table := resolver.Resolve(model)
			if !monitored.Contains(table) {
				continue
			}
			ops = append(ops, Operation{
				Source:    op.name,
				Lock:      op.lock,
				Table:     table,
				Risk:      op.risk,
				ModelName: strings.ToLower(model),
			})
		}
	}
	return ops
}

// hasStructuralOps reports whether any declarative operation is invoked
// at all, monitored or not. Used to tell pure data migrations apart from
// schema migrations.
func hasStructuralOps(content string) bool {
	for _, re := range structuralCallRes {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}
