package structure

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/wudi/deckkit/model"
	"github.com/wudi/deckkit/observability"
)

// Builder maps presentations to structure trees. It is stateless and safe
// for concurrent use on independent presentations.
type Builder struct {
	logger observability.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger installs a logger; the default is a no-op.
func WithLogger(l observability.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder returns a structure builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{logger: observability.NopLogger{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build constructs a fresh structure tree for the presentation. The input
// is never mutated and the returned tree shares no state with it beyond
// image payload slices.
func (b *Builder) Build(ctx context.Context, p *model.Presentation) *Node {
	title := p.Title
	if title == "" {
		title = p.Filename
	}

	root := &Node{
		Role:     RoleDocument,
		Language: normalizeLanguage(p.DefaultLanguage),
		Attributes: map[string]any{
			"title":  title,
			"author": p.Author,
		},
	}

	for i := range p.Slides {
		root.AddChild(b.buildSlide(&p.Slides[i]))
	}

	b.logger.Debug("structure tree built",
		observability.Int(observability.MetricSlideCount, len(p.Slides)),
		observability.Int(observability.MetricStructureNodes, root.Count()),
	)
	return root
}

// buildSlide maps one slide to a Sect. Elements are visited in reading
// order; the sort is stable so elements sharing a reading order keep
// their original relative position.
func (b *Builder) buildSlide(slide *model.Slide) *Node {
	section := &Node{
		Role:       RoleSect,
		Attributes: map[string]any{"slide_number": slide.Number},
	}

	ordered := make([]*model.SlideElement, len(slide.Elements))
	for i := range slide.Elements {
		ordered[i] = &slide.Elements[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ReadingOrder < ordered[j].ReadingOrder
	})

	for _, el := range ordered {
		for _, node := range b.buildElement(el) {
			section.AddChild(node)
		}
	}

	if slide.SpeakerNotes != "" {
		note := &Node{Role: RoleNote, Content: slide.SpeakerNotes}
		if len(slide.Elements) > 0 {
			note.Language = slide.Elements[0].Language
		}
		section.AddChild(note)
	}

	return section
}

func (b *Builder) buildElement(el *model.SlideElement) []*Node {
	switch el.Kind {
	case model.KindText:
		return b.buildText(el)
	case model.KindImage:
		if node := b.buildImage(el); node != nil {
			return []*Node{node}
		}
	case model.KindTable:
		if node := b.buildTable(el); node != nil {
			return []*Node{node}
		}
	case model.KindChart:
		return b.buildChart(el)
	}
	// Shapes, groups and placeholders carry no logical content.
	return nil
}

func (b *Builder) buildText(el *model.SlideElement) []*Node {
	if len(el.Paragraphs) == 0 {
		return nil
	}

	if role, ok := headingRoles[el.HeadingLevel]; ok {
		content := joinParagraphs(el.Paragraphs)
		return []*Node{{
			Role:     role,
			Content:  content,
			Language: el.Language,
			Bounds:   boundsOf(el),
		}}
	}

	if isList(el.Paragraphs) {
		list := b.buildList(el.Paragraphs, el.Language)
		list.Bounds = boundsOf(el)
		return []*Node{list}
	}

	var nodes []*Node
	for _, para := range el.Paragraphs {
		content := joinRuns(para.Runs)
		if strings.TrimSpace(content) == "" {
			continue
		}
		nodes = append(nodes, &Node{
			Role:     RoleP,
			Content:  content,
			Language: el.Language,
			Bounds:   boundsOf(el),
		})
	}
	return nodes
}

// buildList emits the whole element as one list: once any paragraph
// carries a bullet or indent, every non-empty paragraph becomes a list
// item with an optional bullet label.
func (b *Builder) buildList(paragraphs []model.Paragraph, lang string) *Node {
	list := &Node{Role: RoleList, Language: lang}

	for _, para := range paragraphs {
		content := joinRuns(para.Runs)
		if strings.TrimSpace(content) == "" {
			continue
		}

		item := list.AddChild(&Node{Role: RoleListItem})
		if para.BulletChar != "" {
			item.AddChild(&Node{Role: RoleLabel, Content: para.BulletChar})
		}
		item.AddChild(&Node{Role: RoleListBody, Content: content, Language: lang})
	}

	return list
}

// buildImage maps a non-decorative image to a Figure. Decorative images
// are omitted; the rendering stage marks them as artifacts.
func (b *Builder) buildImage(el *model.SlideElement) *Node {
	if el.Decorative {
		return nil
	}

	alt := el.AltText
	if alt == "" {
		alt = "Image"
	}

	node := &Node{
		Role:      RoleFigure,
		AltText:   alt,
		ImageData: el.ImageData,
		Bounds:    boundsOf(el),
	}
	if meta := sniffImageMeta(el.ImageData); meta != nil {
		node.Attributes = meta
	}
	return node
}

func (b *Builder) buildTable(el *model.SlideElement) *Node {
	if el.Table == nil || len(el.Table.Rows) == 0 {
		return nil
	}

	table := &Node{Role: RoleTable, Bounds: boundsOf(el)}

	for rowIdx, row := range el.Table.Rows {
		tr := table.AddChild(&Node{Role: RoleTableRow})

		for colIdx, cell := range row {
			isHeader := (rowIdx == 0 && el.Table.HasHeaderRow) ||
				(colIdx == 0 && el.Table.HasHeaderColumn) ||
				cell.Header

			role := RoleTD
			if isHeader {
				role = RoleTH
			}
			tr.AddChild(&Node{
				Role:    role,
				Content: cell.Text,
				Attributes: map[string]any{
					"row_span": spanOrOne(cell.RowSpan),
					"col_span": spanOrOne(cell.ColSpan),
				},
			})
		}
	}

	return table
}

// buildChart emits a Figure and, when the chart carries both categories
// and series, a companion data table as the accessible alternative.
func (b *Builder) buildChart(el *model.SlideElement) []*Node {
	alt := "Chart"
	if el.Chart != nil && el.Chart.Summary != "" {
		alt = el.Chart.Summary
	}

	nodes := []*Node{{
		Role:    RoleFigure,
		AltText: alt,
		Bounds:  boundsOf(el),
	}}

	if el.Chart != nil && len(el.Chart.Categories) > 0 && len(el.Chart.Series) > 0 {
		nodes = append(nodes, buildChartDataTable(el.Chart))
	}
	return nodes
}

func buildChartDataTable(chart *model.ChartData) *Node {
	table := &Node{Role: RoleTable}

	header := table.AddChild(&Node{Role: RoleTableRow})
	header.AddChild(&Node{Role: RoleTH, Content: ""})
	for _, cat := range chart.Categories {
		header.AddChild(&Node{Role: RoleTH, Content: cat})
	}

	for _, series := range chart.Series {
		row := table.AddChild(&Node{Role: RoleTableRow})
		row.AddChild(&Node{Role: RoleTH, Content: series.Name})
		for _, value := range series.Values {
			content := ""
			if value != nil {
				content = strconv.FormatFloat(*value, 'g', -1, 64)
			}
			row.AddChild(&Node{Role: RoleTD, Content: content})
		}
	}

	return table
}

func isList(paragraphs []model.Paragraph) bool {
	for _, para := range paragraphs {
		if para.Bullet || para.Level > 0 {
			return true
		}
	}
	return false
}

// joinRuns concatenates run text with single spaces, matching the
// source deck's run segmentation.
func joinRuns(runs []model.Run) string {
	parts := make([]string, 0, len(runs))
	for _, run := range runs {
		parts = append(parts, run.Text)
	}
	return strings.Join(parts, " ")
}

func joinParagraphs(paragraphs []model.Paragraph) string {
	var parts []string
	for _, para := range paragraphs {
		text := joinRuns(para.Runs)
		if strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func boundsOf(el *model.SlideElement) *model.BoundingBox {
	bounds := el.Bounds
	return &bounds
}

func spanOrOne(span int) int {
	if span < 1 {
		return 1
	}
	return span
}

// normalizeLanguage canonicalizes a BCP 47 tag, defaulting to "en" when
// the tag is absent or unparseable.
func normalizeLanguage(lang string) string {
	if lang == "" {
		return "en"
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	return tag.String()
}
