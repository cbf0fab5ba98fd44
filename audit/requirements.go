package audit

// Requirement is one entry of the PDF/UA-1 requirements checklist shown
// to reviewers. The table is descriptive metadata, not computed.
type Requirement struct {
	ID          string `json:"id"`
	Requirement string `json:"requirement"`
	Description string `json:"description"`
	Critical    bool   `json:"critical"`
}

// Requirements returns the fixed PDF/UA-1 requirements checklist.
func Requirements() []Requirement {
	return []Requirement{
		{
			ID:          "7.1",
			Requirement: "Document title",
			Description: "The document must have a title in metadata",
			Critical:    true,
		},
		{
			ID:          "7.2",
			Requirement: "Document language",
			Description: "The document must specify its primary language",
			Critical:    true,
		},
		{
			ID:          "7.3",
			Requirement: "Tagged PDF",
			Description: "All content must be tagged with appropriate structure tags",
			Critical:    true,
		},
		{
			ID:          "7.4",
			Requirement: "Reading order",
			Description: "Content must have a logical reading order",
			Critical:    true,
		},
		{
			ID:          "7.5",
			Requirement: "Alternative text",
			Description: "All non-text content must have alternative text or be marked as decorative",
			Critical:    true,
		},
		{
			ID:          "7.6",
			Requirement: "Table structure",
			Description: "Tables must have proper header associations",
			Critical:    true,
		},
		{
			ID:          "7.7",
			Requirement: "Color contrast",
			Description: "Text must have sufficient contrast with background",
			Critical:    false,
		},
		{
			ID:          "7.8",
			Requirement: "Heading hierarchy",
			Description: "Headings must follow a logical hierarchy",
			Critical:    false,
		},
	}
}
