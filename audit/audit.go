// Package audit runs the accessibility rule battery over a presentation
// model and aggregates the findings into a scored report. The rules are
// an ordered pipeline of pure functions; the resulting issue list order
// is deterministic: document-level issues first, then per-slide issues in
// slide order, then the whole-deck contrast pass.
package audit

import (
	"context"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"

	"github.com/wudi/deckkit/contrast"
	"github.com/wudi/deckkit/model"
	"github.com/wudi/deckkit/observability"
)

// Issue severity weights and bonuses for the score calculation.
const (
	errorWeight   = 10
	warningWeight = 3
	infoWeight    = 1

	titleBonus    = 2
	languageBonus = 2
	altTextBonus  = 5
)

const minReadingOrderConfidence = 0.5

// Text below this point size is flagged as hard to read.
const minBodyFontSize = 12

// Checker runs the accessibility rule battery. It is stateless and safe
// for concurrent use on independent presentations.
type Checker struct {
	contrast *contrast.Checker
	logger   observability.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger installs a logger; the default is a no-op.
func WithLogger(l observability.Logger) Option {
	return func(c *Checker) { c.logger = l }
}

// NewChecker returns an accessibility checker.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		contrast: contrast.NewChecker(),
		logger:   observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check runs every rule over the presentation and returns the findings in
// their fixed evaluation order. The input is never mutated.
func (c *Checker) Check(ctx context.Context, p *model.Presentation) []model.Issue {
	issues := []model.Issue{}

	issues = append(issues, c.checkDocumentLevel(p)...)

	for i := range p.Slides {
		issues = append(issues, c.checkSlide(&p.Slides[i])...)
	}

	issues = append(issues, c.checkContrast(p)...)

	c.logger.Debug("accessibility check complete",
		observability.Int(observability.MetricSlideCount, len(p.Slides)),
		observability.Int(observability.MetricIssueCount, len(issues)),
	)
	return issues
}

func (c *Checker) checkDocumentLevel(p *model.Presentation) []model.Issue {
	var issues []model.Issue

	if p.Title == "" {
		issues = append(issues, model.Issue{
			Type:        model.IssueMissingTitle,
			Severity:    model.SeverityError,
			SlideNumber: 0,
			Message:     "Document is missing a title",
			Suggestion:  "Add a title in the presentation properties for screen reader navigation",
		})
	}

	if p.DefaultLanguage == "" {
		issues = append(issues, model.Issue{
			Type:        model.IssueMissingLanguage,
			Severity:    model.SeverityError,
			SlideNumber: 0,
			Message:     "Document language is not specified",
			Suggestion:  "Ensure text content is present for automatic language detection",
		})
	} else if _, err := language.Parse(p.DefaultLanguage); err != nil {
		issues = append(issues, model.Issue{
			Type:        model.IssueMissingLanguage,
			Severity:    model.SeverityWarning,
			SlideNumber: 0,
			Message:     fmt.Sprintf("Document language %q is not a valid BCP 47 tag", p.DefaultLanguage),
			Suggestion:  "Use a standard language tag such as \"en\" or \"de-DE\"",
		})
	}

	return issues
}

func (c *Checker) checkSlide(slide *model.Slide) []model.Issue {
	var issues []model.Issue

	if slide.Title == "" {
		issues = append(issues, model.Issue{
			Type:        model.IssueMissingTitle,
			Severity:    model.SeverityWarning,
			SlideNumber: slide.Number,
			Message:     fmt.Sprintf("Slide %d is missing a title", slide.Number),
			Suggestion:  "Add a descriptive title to help screen reader users navigate",
		})
	}

	if !slide.ReadingOrderAnalyzed || slide.ReadingOrderConfidence < minReadingOrderConfidence {
		issues = append(issues, model.Issue{
			Type:        model.IssueReadingOrder,
			Severity:    model.SeverityWarning,
			SlideNumber: slide.Number,
			Message:     fmt.Sprintf("Reading order for slide %d may need review", slide.Number),
			Suggestion:  "Verify the reading order matches logical content flow",
		})
	}

	for i := range slide.Elements {
		issues = append(issues, c.checkElement(&slide.Elements[i], slide.Number)...)
	}

	return issues
}

func (c *Checker) checkElement(el *model.SlideElement, slideNumber int) []model.Issue {
	var issues []model.Issue

	if el.Kind == model.KindImage && !el.Decorative && el.AltText == "" {
		issues = append(issues, model.Issue{
			Type:        model.IssueMissingAltText,
			Severity:    model.SeverityError,
			SlideNumber: slideNumber,
			ElementID:   el.ID,
			Message:     "Image is missing alternative text",
			Suggestion:  "Add descriptive alt-text or mark as decorative if purely visual",
		})
	}

	if el.Kind == model.KindChart && (el.Chart == nil || el.Chart.Summary == "") {
		issues = append(issues, model.Issue{
			Type:        model.IssueMissingAltText,
			Severity:    model.SeverityWarning,
			SlideNumber: slideNumber,
			ElementID:   el.ID,
			Message:     "Chart is missing a text description",
			Suggestion:  "Add a summary describing the chart's key insights",
		})
	}

	// Small text is reported at most once per element.
scan:
	for _, para := range el.Paragraphs {
		for _, run := range para.Runs {
			if run.Style.FontSize > 0 && run.Style.FontSize < minBodyFontSize {
				issues = append(issues, model.Issue{
					Type:        model.IssueSmallText,
					Severity:    model.SeverityInfo,
					SlideNumber: slideNumber,
					ElementID:   el.ID,
					Message:     fmt.Sprintf("Text size (%vpt) may be difficult to read", run.Style.FontSize),
					Suggestion:  "Consider using at least 12pt font for body text",
					Details:     map[string]any{"font_size": run.Style.FontSize},
				})
				break scan
			}
		}
	}

	return issues
}

// checkContrast walks every non-empty run in the deck. The run's own
// highlight color wins over the slide background; slides without an
// explicit background count as white. Every failing run yields its own
// issue.
func (c *Checker) checkContrast(p *model.Presentation) []model.Issue {
	var issues []model.Issue

	for si := range p.Slides {
		slide := &p.Slides[si]
		background := slide.BackgroundColor
		if background == "" {
			background = "#FFFFFF"
		}

		for ei := range slide.Elements {
			el := &slide.Elements[ei]
			for _, para := range el.Paragraphs {
				for _, run := range para.Runs {
					if strings.TrimSpace(run.Text) == "" {
						continue
					}
					bg := run.Style.BackgroundColor
					if bg == "" {
						bg = background
					}
					issue := c.contrast.CheckElement(run.Style.Color, bg, run.Style.FontSize, run.Style.Bold, slide.Number, el.ID)
					if issue != nil {
						issues = append(issues, *issue)
					}
				}
			}
		}
	}

	return issues
}

// GenerateReport runs the full check and packages counts, score and
// PDF/UA readiness under the caller's job identifier.
func (c *Checker) GenerateReport(ctx context.Context, p *model.Presentation, jobID string) *model.Report {
	issues := c.Check(ctx, p)

	totalElements := 0
	totalImages := 0
	imagesWithAlt := 0
	for _, slide := range p.Slides {
		totalElements += len(slide.Elements)
		for _, el := range slide.Elements {
			if el.Kind == model.KindImage {
				totalImages++
				if el.AltText != "" || el.Decorative {
					imagesWithAlt++
				}
			}
		}
	}

	report := &model.Report{
		JobID:             jobID,
		TotalSlides:       len(p.Slides),
		TotalElements:     totalElements,
		TotalImages:       totalImages,
		ImagesWithAltText: imagesWithAlt,
		Issues:            issues,
		Score:             c.score(p, issues, totalImages, imagesWithAlt),
	}
	report.PDFUAReady = report.ErrorCount() == 0

	c.logger.Info("accessibility report generated",
		observability.String("job_id", jobID),
		observability.Int(observability.MetricElementCount, totalElements),
		observability.Float64(observability.MetricAuditScore, report.Score),
	)
	return report
}

// score starts at 100, subtracts per-issue penalties and adds the good
// practice bonuses, clamping to [0,100]. The all-images bonus requires at
// least one image: an image-free deck has nothing to cover.
func (c *Checker) score(p *model.Presentation, issues []model.Issue, totalImages, imagesWithAlt int) float64 {
	score := 100.0

	for _, issue := range issues {
		switch issue.Severity {
		case model.SeverityError:
			score -= errorWeight
		case model.SeverityWarning:
			score -= warningWeight
		case model.SeverityInfo:
			score -= infoWeight
		}
	}

	if p.Title != "" {
		score += titleBonus
	}
	if p.DefaultLanguage != "" {
		score += languageBonus
	}
	if totalImages > 0 && imagesWithAlt == totalImages {
		score += altTextBonus
	}

	return math.Max(0, math.Min(100, math.Round(score*10)/10))
}
