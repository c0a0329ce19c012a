package document

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningUnknownNode      WarningType = "unknown_node"
	WarningUnknownMark      WarningType = "unknown_mark"
	WarningMissingAttribute WarningType = "missing_attribute"
	WarningDroppedContent   WarningType = "dropped_content"
	WarningLowFidelity      WarningType = "low_fidelity"
	WarningDegraded         WarningType = "degraded"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
}
