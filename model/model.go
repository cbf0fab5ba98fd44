// Package model holds the in-memory presentation representation shared by
// the analysis components. It is populated by an external parsing/analysis
// stage and read here without mutation; JSON tags mirror that stage's
// serialization so the model round-trips through the reporting layer.
package model

// ElementKind discriminates the variants of a SlideElement.
type ElementKind string

const (
	KindText        ElementKind = "text"
	KindImage       ElementKind = "image"
	KindShape       ElementKind = "shape"
	KindTable       ElementKind = "table"
	KindChart       ElementKind = "chart"
	KindGroup       ElementKind = "group"
	KindPlaceholder ElementKind = "placeholder"
)

// BoundingBox positions an element on its slide.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextStyle carries run-level formatting.
type TextStyle struct {
	FontName        string  `json:"font_name,omitempty"`
	FontSize        float64 `json:"font_size,omitempty"` // points, 0 = unspecified
	Bold            bool    `json:"bold,omitempty"`
	Italic          bool    `json:"italic,omitempty"`
	Underline       bool    `json:"underline,omitempty"`
	Color           string  `json:"color,omitempty"`            // hex, e.g. "#1A1A1A"
	BackgroundColor string  `json:"background_color,omitempty"` // hex highlight, rarely set
}

// Run is a span of text with uniform formatting.
type Run struct {
	Text     string    `json:"text"`
	Style    TextStyle `json:"style"`
	Language string    `json:"language,omitempty"`
}

// Paragraph groups runs; bullet state and indent level drive list detection.
type Paragraph struct {
	Runs       []Run  `json:"runs"`
	Level      int    `json:"level,omitempty"` // indent level, 0 = top
	Bullet     bool   `json:"is_bullet,omitempty"`
	BulletChar string `json:"bullet_char,omitempty"`
}

// TableCell is one cell of a table grid.
type TableCell struct {
	Text    string `json:"text"`
	RowSpan int    `json:"row_span,omitempty"`
	ColSpan int    `json:"col_span,omitempty"`
	Header  bool   `json:"is_header,omitempty"`
}

// TableData is the 2-D grid of a table element.
type TableData struct {
	Rows            [][]TableCell `json:"rows"`
	HasHeaderRow    bool          `json:"has_header_row,omitempty"`
	HasHeaderColumn bool          `json:"has_header_column,omitempty"`
}

// ChartSeries is one named numeric series. A nil value marks a gap in the
// source data.
type ChartSeries struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

// ChartData holds the extracted data of a chart element.
type ChartData struct {
	Type       string        `json:"chart_type,omitempty"`
	Title      string        `json:"title,omitempty"`
	Categories []string      `json:"categories,omitempty"`
	Series     []ChartSeries `json:"series,omitempty"`
	Summary    string        `json:"summary,omitempty"` // textual description, possibly AI-supplied
}

// SlideElement is a single element on a slide. Only the fields matching
// Kind are populated; the rest stay zero.
type SlideElement struct {
	ID           string      `json:"id"`
	Kind         ElementKind `json:"element_type"`
	Bounds       BoundingBox `json:"bounds"`
	ReadingOrder int         `json:"reading_order"` // not guaranteed unique after manual edits

	// Text
	Paragraphs []Paragraph `json:"paragraphs,omitempty"`

	// Image
	ImageData  []byte `json:"image_data,omitempty"`
	AltText    string `json:"alt_text,omitempty"`
	Decorative bool   `json:"is_decorative,omitempty"`

	// Table
	Table *TableData `json:"table_data,omitempty"`

	// Chart
	Chart *ChartData `json:"chart_data,omitempty"`

	Language     string `json:"language,omitempty"`
	HeadingLevel int    `json:"heading_level,omitempty"` // 1-6, 0 = not a heading
}

// Slide is one slide with its elements in document order.
type Slide struct {
	Number          int            `json:"slide_number"` // 1-based
	Title           string         `json:"title,omitempty"`
	Elements        []SlideElement `json:"elements"`
	SpeakerNotes    string         `json:"speaker_notes,omitempty"`
	BackgroundColor string         `json:"background_color,omitempty"`

	// Reading-order analysis state, filled by the external analysis stage.
	ReadingOrderAnalyzed   bool    `json:"reading_order_analyzed,omitempty"`
	ReadingOrderConfidence float64 `json:"reading_order_confidence,omitempty"`
}

// Presentation is the root of the model.
type Presentation struct {
	Filename        string  `json:"filename,omitempty"`
	Title           string  `json:"title,omitempty"`
	Author          string  `json:"author,omitempty"`
	Slides          []Slide `json:"slides"`
	DefaultLanguage string  `json:"default_language,omitempty"`
	Issues          []Issue `json:"accessibility_issues,omitempty"`
}
