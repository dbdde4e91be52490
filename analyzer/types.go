package analyzer

// FileResult is the outcome of merging the requested statements into one file.
type FileResult struct {
	Path string `json:"path" yaml:"path"`
	// Changed is set when the printed program differs from the source.
	Changed bool `json:"changed" yaml:"changed"`
	// Written is set when the changed program was saved back to Path.
	Written bool `json:"written" yaml:"written"`
	// Bindings maps each requested local name to the name it is bound under
	// in this file.
	Bindings map[string]string `json:"bindings,omitempty" yaml:"bindings,omitempty"`
	Size     int64             `json:"size" yaml:"size"`
	// Skipped names why the file was not processed, e.g. its size.
	Skipped string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Err     error  `json:"-" yaml:"-"`
	// Error is Err's message for encoded reports.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
	// Before and After hold the source and the rewritten program of a
	// changed file.
	Before string `json:"-" yaml:"-"`
	After  string `json:"-" yaml:"-"`
}

// Report collects the per-file results of a batch run in walk order.
type Report struct {
	Root  string       `json:"root" yaml:"root"`
	Files []FileResult `json:"files" yaml:"files"`
}

// Counts summarizes a report.
func (r *Report) Counts() (changed, unchanged, skipped, failed int) {
	for _, f := range r.Files {
		switch {
		case f.Err != nil:
			failed++
		case f.Skipped != "":
			skipped++
		case f.Changed:
			changed++
		default:
			unchanged++
		}
	}
	return changed, unchanged, skipped, failed
}
