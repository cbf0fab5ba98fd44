package structure_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/wudi/deckkit/model"
	"github.com/wudi/deckkit/structure"
)

func build(t *testing.T, p *model.Presentation) *structure.Node {
	t.Helper()
	root := structure.NewBuilder().Build(context.Background(), p)
	if root == nil || root.Role != structure.RoleDocument {
		t.Fatalf("expected a Document root, got %+v", root)
	}
	return root
}

func onlySect(t *testing.T, root *structure.Node) *structure.Node {
	t.Helper()
	if len(root.Children) != 1 {
		t.Fatalf("expected one Sect, got %d children", len(root.Children))
	}
	sect := root.Children[0]
	if sect.Role != structure.RoleSect {
		t.Fatalf("expected Sect, got %s", sect.Role)
	}
	return sect
}

func textElement(id string, order int, paragraphs ...model.Paragraph) model.SlideElement {
	return model.SlideElement{ID: id, Kind: model.KindText, ReadingOrder: order, Paragraphs: paragraphs}
}

func para(text string) model.Paragraph {
	return model.Paragraph{Runs: []model.Run{{Text: text}}}
}

func TestDocumentRoot(t *testing.T) {
	root := build(t, &model.Presentation{
		Title:           "Quarterly Review",
		Author:          "Dana",
		DefaultLanguage: "EN-us",
	})

	if root.Language != "en-US" {
		t.Fatalf("language not canonicalized: %q", root.Language)
	}
	if root.Attributes["title"] != "Quarterly Review" || root.Attributes["author"] != "Dana" {
		t.Fatalf("root attributes: %+v", root.Attributes)
	}
}

func TestDocumentLanguageDefaults(t *testing.T) {
	if root := build(t, &model.Presentation{}); root.Language != "en" {
		t.Fatalf("missing language must default to en, got %q", root.Language)
	}
	// Unparseable tags pass through untouched.
	if root := build(t, &model.Presentation{DefaultLanguage: "!!"}); root.Language != "!!" {
		t.Fatalf("got %q", root.Language)
	}
}

func TestTitleFallsBackToFilename(t *testing.T) {
	root := build(t, &model.Presentation{Filename: "deck.pptx"})
	if root.Attributes["title"] != "deck.pptx" {
		t.Fatalf("root attributes: %+v", root.Attributes)
	}
}

func TestDecorativeImagesOmitted(t *testing.T) {
	pres := &model.Presentation{Slides: []model.Slide{{
		Number: 1,
		Elements: []model.SlideElement{
			{ID: "deco", Kind: model.KindImage, Decorative: true, ReadingOrder: 1},
			{ID: "cat", Kind: model.KindImage, AltText: "Cat", ReadingOrder: 2},
		},
	}}}

	sect := onlySect(t, build(t, pres))
	if len(sect.Children) != 1 {
		t.Fatalf("expected exactly one Figure, got %d children", len(sect.Children))
	}
	fig := sect.Children[0]
	if fig.Role != structure.RoleFigure || fig.AltText != "Cat" {
		t.Fatalf("got %s with alt %q", fig.Role, fig.AltText)
	}
}

func TestImageAltTextFallback(t *testing.T) {
	pres := &model.Presentation{Slides: []model.Slide{{
		Number:   1,
		Elements: []model.SlideElement{{ID: "i", Kind: model.KindImage}},
	}}}

	fig := onlySect(t, build(t, pres)).Children[0]
	if fig.AltText != "Image" {
		t.Fatalf("alt fallback: got %q, want Image", fig.AltText)
	}
}

// Elements sharing a reading order keep their original relative position.
func TestReadingOrderStableSort(t *testing.T) {
	pres := &model.Presentation{Slides: []model.Slide{{
		Number: 1,
		Elements: []model.SlideElement{
			textElement("c", 2, para("third")),
			textElement("a", 1, para("first")),
			textElement("b", 1, para("second")),
		},
	}}}

	sect := onlySect(t, build(t, pres))
	var got []string
	for _, child := range sect.Children {
		got = append(got, child.Content)
	}
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
}

func TestHeadingElement(t *testing.T) {
	el := textElement("h", 1, para("Results"), model.Paragraph{}, para("2026"))
	el.HeadingLevel = 3

	pres := &model.Presentation{Slides: []model.Slide{{Number: 1, Elements: []model.SlideElement{el}}}}
	sect := onlySect(t, build(t, pres))

	if len(sect.Children) != 1 {
		t.Fatalf("heading must collapse to one node, got %d", len(sect.Children))
	}
	h := sect.Children[0]
	if h.Role != structure.RoleH3 || h.Content != "Results 2026" {
		t.Fatalf("got %s %q", h.Role, h.Content)
	}
}

// One bulleted paragraph switches the whole element into list mode,
// including its unbulleted paragraphs.
func TestListMode(t *testing.T) {
	bullet := para("First point")
	bullet.Bullet = true
	bullet.BulletChar = "•"
	plain := para("Second point")

	el := textElement("l", 1, bullet, plain, para(" "))
	pres := &model.Presentation{Slides: []model.Slide{{Number: 1, Elements: []model.SlideElement{el}}}}

	sect := onlySect(t, build(t, pres))
	if len(sect.Children) != 1 || sect.Children[0].Role != structure.RoleList {
		t.Fatalf("expected one list node, got %+v", sect.Children)
	}

	list := sect.Children[0]
	if len(list.Children) != 2 {
		t.Fatalf("expected 2 list items, got %d", len(list.Children))
	}

	first := list.Children[0]
	if len(first.Children) != 2 || first.Children[0].Role != structure.RoleLabel || first.Children[0].Content != "•" {
		t.Fatalf("first item: %+v", first.Children)
	}
	if first.Children[1].Role != structure.RoleListBody || first.Children[1].Content != "First point" {
		t.Fatalf("first body: %+v", first.Children[1])
	}

	second := list.Children[1]
	if len(second.Children) != 1 || second.Children[0].Role != structure.RoleListBody {
		t.Fatalf("unbulleted item must still get a body: %+v", second.Children)
	}
}

func TestIndentTriggersListMode(t *testing.T) {
	indented := para("nested")
	indented.Level = 1

	el := textElement("l", 1, indented)
	pres := &model.Presentation{Slides: []model.Slide{{Number: 1, Elements: []model.SlideElement{el}}}}
	sect := onlySect(t, build(t, pres))
	if sect.Children[0].Role != structure.RoleList {
		t.Fatalf("indent level > 0 must trigger a list, got %s", sect.Children[0].Role)
	}
}

func TestPlainParagraphs(t *testing.T) {
	el := textElement("p", 1, para("one"), para("  "), para("two"))
	pres := &model.Presentation{Slides: []model.Slide{{Number: 1, Elements: []model.SlideElement{el}}}}

	sect := onlySect(t, build(t, pres))
	if len(sect.Children) != 2 {
		t.Fatalf("empty paragraphs must be dropped: %+v", sect.Children)
	}
	for _, child := range sect.Children {
		if child.Role != structure.RoleP {
			t.Fatalf("got %s, want P", child.Role)
		}
	}
}

func TestTableHeaderRoles(t *testing.T) {
	table := &model.TableData{
		HasHeaderRow:    true,
		HasHeaderColumn: true,
		Rows: [][]model.TableCell{
			{{Text: "Region"}, {Text: "Q1"}},
			{{Text: "North"}, {Text: "42"}},
			{{Text: "South"}, {Text: "17", Header: true, ColSpan: 2}},
		},
	}
	pres := &model.Presentation{Slides: []model.Slide{{
		Number:   1,
		Elements: []model.SlideElement{{ID: "t", Kind: model.KindTable, Table: table}},
	}}}

	node := onlySect(t, build(t, pres)).Children[0]
	if node.Role != structure.RoleTable || len(node.Children) != 3 {
		t.Fatalf("got %s with %d rows", node.Role, len(node.Children))
	}

	roles := func(row *structure.Node) []structure.Role {
		var out []structure.Role
		for _, cell := range row.Children {
			out = append(out, cell.Role)
		}
		return out
	}

	// Header row: all TH. Data row: header column cell then TD. Flagged
	// cell is TH despite position.
	if r := roles(node.Children[0]); r[0] != structure.RoleTH || r[1] != structure.RoleTH {
		t.Fatalf("header row roles: %v", r)
	}
	if r := roles(node.Children[1]); r[0] != structure.RoleTH || r[1] != structure.RoleTD {
		t.Fatalf("data row roles: %v", r)
	}
	if r := roles(node.Children[2]); r[1] != structure.RoleTH {
		t.Fatalf("flagged cell must be TH: %v", r)
	}

	spanned := node.Children[2].Children[1]
	if spanned.Attributes["col_span"] != 2 || spanned.Attributes["row_span"] != 1 {
		t.Fatalf("span attributes: %+v", spanned.Attributes)
	}
}

func TestEmptyTableOmitted(t *testing.T) {
	pres := &model.Presentation{Slides: []model.Slide{{
		Number:   1,
		Elements: []model.SlideElement{{ID: "t", Kind: model.KindTable}},
	}}}
	if sect := onlySect(t, build(t, pres)); len(sect.Children) != 0 {
		t.Fatalf("nil table data must contribute nothing: %+v", sect.Children)
	}
}

func TestChartWithDataTable(t *testing.T) {
	v1, v3 := 10.5, 7.0
	chart := &model.ChartData{
		Summary:    "Revenue grew in both regions",
		Categories: []string{"Q1", "Q2"},
		Series: []model.ChartSeries{
			{Name: "North", Values: []*float64{&v1, nil}},
			{Name: "South", Values: []*float64{&v3}},
		},
	}
	pres := &model.Presentation{Slides: []model.Slide{{
		Number:   1,
		Elements: []model.SlideElement{{ID: "c", Kind: model.KindChart, Chart: chart}},
	}}}

	sect := onlySect(t, build(t, pres))
	if len(sect.Children) != 2 {
		t.Fatalf("expected Figure + data table, got %d nodes", len(sect.Children))
	}

	fig, table := sect.Children[0], sect.Children[1]
	if fig.Role != structure.RoleFigure || fig.AltText != "Revenue grew in both regions" {
		t.Fatalf("figure: %s %q", fig.Role, fig.AltText)
	}
	if table.Role != structure.RoleTable || len(table.Children) != 3 {
		t.Fatalf("table: %s with %d rows", table.Role, len(table.Children))
	}

	header := table.Children[0]
	if header.Children[0].Content != "" || header.Children[1].Content != "Q1" || header.Children[2].Content != "Q2" {
		t.Fatalf("header row: %+v", header.Children)
	}

	north := table.Children[1]
	if north.Children[0].Role != structure.RoleTH || north.Children[0].Content != "North" {
		t.Fatalf("series name cell: %+v", north.Children[0])
	}
	if north.Children[1].Content != "10.5" || north.Children[2].Content != "" {
		t.Fatalf("series values: %+v", north.Children)
	}
}

func TestChartWithoutCategoriesHasNoTable(t *testing.T) {
	v := 1.0
	chart := &model.ChartData{Series: []model.ChartSeries{{Name: "s", Values: []*float64{&v}}}}
	pres := &model.Presentation{Slides: []model.Slide{{
		Number:   1,
		Elements: []model.SlideElement{{ID: "c", Kind: model.KindChart, Chart: chart}},
	}}}

	sect := onlySect(t, build(t, pres))
	if len(sect.Children) != 1 {
		t.Fatalf("no categories means no data table: %+v", sect.Children)
	}
	if sect.Children[0].AltText != "Chart" {
		t.Fatalf("alt fallback: %q", sect.Children[0].AltText)
	}
}

func TestSpeakerNotesLast(t *testing.T) {
	pres := &model.Presentation{Slides: []model.Slide{{
		Number:       1,
		SpeakerNotes: "remember to pause",
		Elements:     []model.SlideElement{textElement("p", 1, para("body"))},
	}}}

	sect := onlySect(t, build(t, pres))
	last := sect.Children[len(sect.Children)-1]
	if last.Role != structure.RoleNote || last.Content != "remember to pause" {
		t.Fatalf("last child: %s %q", last.Role, last.Content)
	}
}

func TestShapesContributeNothing(t *testing.T) {
	pres := &model.Presentation{Slides: []model.Slide{{
		Number: 1,
		Elements: []model.SlideElement{
			{ID: "s", Kind: model.KindShape},
			{ID: "g", Kind: model.KindGroup},
			{ID: "ph", Kind: model.KindPlaceholder},
		},
	}}}
	if sect := onlySect(t, build(t, pres)); len(sect.Children) != 0 {
		t.Fatalf("shapes/groups/placeholders must not appear: %+v", sect.Children)
	}
}

func TestFigureImageMetadata(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 3))); err != nil {
		t.Fatal(err)
	}

	pres := &model.Presentation{Slides: []model.Slide{{
		Number: 1,
		Elements: []model.SlideElement{{
			ID: "i", Kind: model.KindImage, AltText: "dot", ImageData: buf.Bytes(),
		}},
	}}}

	fig := onlySect(t, build(t, pres)).Children[0]
	if fig.Attributes["format"] != "png" {
		t.Fatalf("format: %+v", fig.Attributes)
	}
	if fig.Attributes["pixel_width"] != 2 || fig.Attributes["pixel_height"] != 3 {
		t.Fatalf("dimensions: %+v", fig.Attributes)
	}
	if len(fig.ImageData) == 0 {
		t.Fatal("payload must be carried on the node")
	}
}

func TestUndecodablePayloadIsHarmless(t *testing.T) {
	pres := &model.Presentation{Slides: []model.Slide{{
		Number: 1,
		Elements: []model.SlideElement{{
			ID: "i", Kind: model.KindImage, AltText: "x", ImageData: []byte("not an image"),
		}},
	}}}

	fig := onlySect(t, build(t, pres)).Children[0]
	if fig.Attributes != nil {
		t.Fatalf("expected no attributes: %+v", fig.Attributes)
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	pres := &model.Presentation{Slides: []model.Slide{{
		Number: 1,
		Elements: []model.SlideElement{
			textElement("b", 2, para("second")),
			textElement("a", 1, para("first")),
		},
	}}}

	build(t, pres)
	if pres.Slides[0].Elements[0].ID != "b" {
		t.Fatal("builder must not reorder the input model")
	}
}

func TestNodeCount(t *testing.T) {
	pres := &model.Presentation{Slides: []model.Slide{
		{Number: 1, Elements: []model.SlideElement{textElement("p", 1, para("x"))}},
		{Number: 2},
	}}
	root := build(t, pres)
	// Document + 2 Sect + 1 P.
	if got := root.Count(); got != 4 {
		t.Fatalf("count: got %d, want 4", got)
	}
}
