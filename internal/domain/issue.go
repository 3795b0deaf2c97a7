package domain

// Issue severities. Every rule currently emits error; warning exists so that
// soft business-policy advisories can be added without changing consumers,
// which must already branch on severity (warnings require an explicit
// confirmation, errors block publishing).
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// ValidationIssue is one finding against a configuration snapshot. Path is a
// dotted location inside the document (e.g. "currencies.rates.USD"). Issues
// are computed on demand and never persisted.
type ValidationIssue struct {
	Path     string `json:"path"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// HasErrors reports whether any issue is error severity.
func HasErrors(issues []ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
