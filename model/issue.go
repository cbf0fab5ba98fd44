package model

// IssueType classifies an accessibility finding.
type IssueType string

const (
	IssueMissingAltText  IssueType = "missing_alt_text"
	IssueLowContrast     IssueType = "low_contrast"
	IssueSmallText       IssueType = "small_text"
	IssueMissingTitle    IssueType = "missing_title"
	IssueReadingOrder    IssueType = "reading_order"
	IssueMissingLanguage IssueType = "missing_language"
)

// Severity grades an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single accessibility finding. SlideNumber 0 marks a
// document-level issue.
type Issue struct {
	Type        IssueType      `json:"issue_type"`
	Severity    Severity       `json:"severity"`
	SlideNumber int            `json:"slide_number"`
	ElementID   string         `json:"element_id,omitempty"`
	Message     string         `json:"message"`
	Suggestion  string         `json:"suggestion,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// Report is the aggregate result of an accessibility audit.
type Report struct {
	JobID             string  `json:"job_id"`
	TotalSlides       int     `json:"total_slides"`
	TotalElements     int     `json:"total_elements"`
	TotalImages       int     `json:"total_images"`
	ImagesWithAltText int     `json:"images_with_alt_text"`
	Issues            []Issue `json:"issues"`
	Score             float64 `json:"score"` // 0-100
	PDFUAReady        bool    `json:"pdf_ua_ready"`
}

// ErrorCount returns the number of error-severity issues in the report.
func (r *Report) ErrorCount() int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == SeverityError {
			n++
		}
	}
	return n
}
