package migration

// Document is one candidate migration file, already decoded by the
// caller. ID is the path it was read from.
type Document struct {
	ID   string
	Text string
}

// Options configures a batch evaluation.
type Options struct {
	Tables    []string // monitored table names
	App       string   // app label for model -> table resolution
	MinTables int      // locked-table count that blocks; 0 means DefaultMinTables
}

// DocumentResult pairs a document with its analysis.
type DocumentResult struct {
	File string
	Result
}

// BatchResult is the aggregate outcome over a set of documents.
type BatchResult struct {
	AllPassed  bool
	Checked    []DocumentResult // genuine migration files, input order
	Critical   []DocumentResult // the subset that blocks, input order
	Operations []Operation      // flat log across all checked documents
}

// Evaluate analyzes every genuine migration document and collects the
// ones that must block. Documents are processed in input order so the
// output is reproducible.
func Evaluate(docs []Document, opts Options) BatchResult {
	analyzer := NewAnalyzer(NewMonitoredTables(opts.Tables), opts.App, opts.MinTables)

	out := BatchResult{AllPassed: true}
	for _, doc := range docs {
		if !IsMigrationFile(doc.ID) {
			continue
		}
		res := DocumentResult{File: doc.ID, Result: analyzer.Analyze(doc.Text)}
		out.Checked = append(out.Checked, res)
		out.Operations = append(out.Operations, res.Operations...)
		if res.ShouldBlock {
			out.AllPassed = false
			out.Critical = append(out.Critical, res)
		}
	}
	return out
}
