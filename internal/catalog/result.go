// file: internal/catalog/result.go
// version: 1.0.0
// guid: 2b4d6f8a-0c2e-4b4d-8f6a-0c2e4b6d8f1a

package catalog

// Outcome classifies the result of a catalog operation.
type Outcome int

const (
	Success Outcome = iota
	Duplicate
	NotFound
	Empty
	NoMatches
	ImportFileMissing
	ImportFailed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Duplicate:
		return "duplicate"
	case NotFound:
		return "not_found"
	case Empty:
		return "empty"
	case NoMatches:
		return "no_matches"
	case ImportFileMissing:
		return "import_file_missing"
	case ImportFailed:
		return "import_failed"
	default:
		return "unknown"
	}
}

// Result is what every catalog operation hands back to the presentation
// layer. Message is the display string; Outcome lets callers style it.
type Result struct {
	Outcome Outcome
	Message string
}

func (r Result) String() string {
	return r.Message
}

// OK reports whether the operation did what was asked.
func (r Result) OK() bool {
	return r.Outcome == Success
}
