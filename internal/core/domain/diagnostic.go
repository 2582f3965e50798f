package domain

// Status is the terminal state of one pipeline run.
type Status string

const (
	// StatusOK means the parser ran and produced disciplines.
	StatusOK Status = "ok"

	// StatusScanned means the document is a scanned image with no usable
	// text layer; the parser was never invoked.
	StatusScanned Status = "scanned"

	// StatusExtractionError means the upstream text extractor failed; the
	// classifier and pre-validator still ran on whatever partial text exists.
	StatusExtractionError Status = "extractionError"
)

// Diagnostic is the consolidated read-only snapshot of every flag produced by
// the classifier, the pre-validator and the parser, plus the parser's
// aggregate statistics. It introduces no thresholds of its own.
type Diagnostic struct {
	// Status is the terminal pipeline status.
	Status Status `json:"status"`

	// Classification is the classifier verdict on the raw text.
	Classification Classification `json:"classification"`

	// Prevalidation carries the five structural-risk flags.
	Prevalidation Prevalidation `json:"prevalidation"`

	// PossibleLostAnnex is set when the raw text was long enough to contain
	// a syllabus (>= 2000 runes) yet no syllabus section was found.
	PossibleLostAnnex bool `json:"possibleLostAnnex"`

	// BrokenHeadings is set when at most one subject heading was detected
	// while the official list holds 3 or more subjects.
	BrokenHeadings bool `json:"brokenHeadings"`

	// SubjectCount is the number of disciplines in the output.
	SubjectCount int `json:"subjectCount"`

	// TopicCount is the number of topics across all disciplines.
	TopicCount int `json:"topicCount"`

	// Completeness is the percentage of official subjects with topics.
	Completeness float64 `json:"completeness"`

	// Confidence is the aggregate extraction confidence in [0,100].
	Confidence int `json:"confidence"`
}
