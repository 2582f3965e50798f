package domain

// Severity is the confidence-risk tier of a diagnostic flag.
type Severity int

const (
	// SeverityLow is informational only and never blocks.
	SeverityLow Severity = iota

	// SeverityMedium asks the user for explicit confirmation.
	SeverityMedium

	// SeverityHigh blocks progress until a new file or retry.
	SeverityHigh
)

// String returns the wire name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}

// Mode is the interaction mode the UI must render for a decision.
type Mode string

const (
	// ModeBlock renders a blocking modal; the user cannot proceed.
	ModeBlock Mode = "block"

	// ModeConfirm renders a confirmable modal; the user may proceed.
	ModeConfirm Mode = "confirm"

	// ModeInfo renders a dismissible banner.
	ModeInfo Mode = "info"
)

// Action names a user action the caller must wire to behaviour.
type Action string

const (
	// ActionUploadOther asks the user for a different file.
	ActionUploadOther Action = "uploadOther"

	// ActionRetry re-runs extraction on the same file.
	ActionRetry Action = "retry"

	// ActionContinue proceeds with the degraded result.
	ActionContinue Action = "continue"
)

// Alert is a secondary flag attached to a decision.
type Alert struct {
	ReasonKey string   `json:"reasonKey"`
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
}

// Decision is the UX decision derived from a Diagnostic. It is a sealed
// variant: exactly one of Block, Confirm or Info, so callers get
// exhaustiveness when switching on the concrete type.
type Decision interface {
	// Mode returns the interaction mode of the variant.
	Mode() Mode

	// Reason returns the stable reason key of the chosen flag.
	Reason() string
}

// Block is a high-severity decision: progress must stop.
type Block struct {
	Title       string  `json:"title"`
	Message     string  `json:"message"`
	Primary     Action  `json:"primaryAction"`
	Secondary   Action  `json:"secondaryAction,omitempty"`
	OtherAlerts []Alert `json:"otherAlerts,omitempty"`
	ReasonKey   string  `json:"reasonKey"`
}

// Mode implements Decision.
func (Block) Mode() Mode { return ModeBlock }

// Reason implements Decision.
func (d Block) Reason() string { return d.ReasonKey }

// Confirm is a medium-severity decision: the user may proceed after
// acknowledging the risk.
type Confirm struct {
	Title       string  `json:"title"`
	Message     string  `json:"message"`
	Primary     Action  `json:"primaryAction"`
	Secondary   Action  `json:"secondaryAction,omitempty"`
	OtherAlerts []Alert `json:"otherAlerts,omitempty"`
	ReasonKey   string  `json:"reasonKey"`
}

// Mode implements Decision.
func (Confirm) Mode() Mode { return ModeConfirm }

// Reason implements Decision.
func (d Confirm) Reason() string { return d.ReasonKey }

// Info is a low-severity decision: a dismissible banner with no actions.
type Info struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	ReasonKey string `json:"reasonKey"`
}

// Mode implements Decision.
func (Info) Mode() Mode { return ModeInfo }

// Reason implements Decision.
func (d Info) Reason() string { return d.ReasonKey }
