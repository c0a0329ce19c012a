package contentconv

import "github.com/parentpost/contentconv/document"

// Result holds the output of a string conversion. Success is false only
// when a hard error occurred; warnings (including low fidelity) are
// advisory and never block success.
type Result struct {
	Success  bool     `json:"success"`
	Content  string   `json:"content"`
	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Fidelity *int     `json:"fidelity,omitempty"`
}

// TreeResult holds the output of a conversion producing a document tree.
// Doc is always a valid doc node, even when the conversion degraded.
type TreeResult struct {
	Success  bool          `json:"success"`
	Doc      document.Node `json:"doc"`
	Warnings []string      `json:"warnings,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
}

func flattenWarnings(warnings []document.Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	flat := make([]string, 0, len(warnings))
	for _, warning := range warnings {
		flat = append(flat, warning.Message)
	}
	return flat
}
