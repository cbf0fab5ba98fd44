// Package contrast implements the WCAG 2.1 color contrast algorithm:
// relative luminance, contrast ratio, AA/AAA classification and a bounded
// search for an improved foreground color.
package contrast

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wudi/deckkit/model"
)

// WCAG 2.1 contrast ratio requirements.
const (
	AANormalText  = 4.5
	AALargeText   = 3.0
	AAANormalText = 7.0
	AAALargeText  = 4.5
)

// Large text is 18pt, or 14pt when bold.
const (
	LargeTextSize     = 18
	LargeTextBoldSize = 14
)

// Result is the outcome of a contrast check between two colors.
type Result struct {
	Ratio           float64
	PassesAANormal  bool
	PassesAALarge   bool
	PassesAAANormal bool
	PassesAAALarge  bool
	Foreground      string
	Background      string
}

// Checker evaluates colors against the WCAG thresholds. It is stateless
// and safe for concurrent use.
type Checker struct{}

// NewChecker returns a contrast checker.
func NewChecker() *Checker { return &Checker{} }

// Check computes the contrast ratio between two hex colors and classifies
// it against the AA/AAA thresholds. The AAA flags are informational only;
// issue emission is driven by the AA thresholds.
func (c *Checker) Check(foreground, background string) Result {
	fgLum := c.RelativeLuminance(foreground)
	bgLum := c.RelativeLuminance(background)

	lighter := math.Max(fgLum, bgLum)
	darker := math.Min(fgLum, bgLum)
	ratio := round2((lighter + 0.05) / (darker + 0.05))

	return Result{
		Ratio:           ratio,
		PassesAANormal:  ratio >= AANormalText,
		PassesAALarge:   ratio >= AALargeText,
		PassesAAANormal: ratio >= AAANormalText,
		PassesAAALarge:  ratio >= AAALargeText,
		Foreground:      foreground,
		Background:      background,
	}
}

// Ratio returns the rounded contrast ratio between two hex colors.
func (c *Checker) Ratio(foreground, background string) float64 {
	return c.Check(foreground, background).Ratio
}

// CheckElement checks one text run against the AA threshold that applies
// to its size and weight. It returns a LowContrast issue when the run
// fails, nil when it passes or when either color is unspecified.
func (c *Checker) CheckElement(foreground, background string, fontSize float64, bold bool, slideNumber int, elementID string) *model.Issue {
	if foreground == "" || background == "" {
		return nil
	}

	result := c.Check(foreground, background)

	isLarge := false
	if fontSize > 0 {
		if fontSize >= LargeTextSize {
			isLarge = true
		} else if fontSize >= LargeTextBoldSize && bold {
			isLarge = true
		}
	}

	required := AANormalText
	if isLarge {
		required = AALargeText
	}
	if result.Ratio >= required {
		return nil
	}

	return &model.Issue{
		Type:        model.IssueLowContrast,
		Severity:    model.SeverityError,
		SlideNumber: slideNumber,
		ElementID:   elementID,
		Message:     fmt.Sprintf("Insufficient color contrast ratio: %v:1 (required: %v:1)", result.Ratio, required),
		Suggestion:  fmt.Sprintf("Increase contrast between text (%s) and background (%s)", foreground, background),
		Details: map[string]any{
			"ratio":         result.Ratio,
			"required":      required,
			"foreground":    foreground,
			"background":    background,
			"is_large_text": isLarge,
		},
	}
}

// SuggestImprovedColor searches for a foreground color meeting targetRatio
// against the background: darkening on light backgrounds, lightening on
// dark ones, in steps of 2 per channel for at most 100 iterations. When
// the search fails it falls back to whichever of pure black or pure white
// contrasts better with the background.
func (c *Checker) SuggestImprovedColor(foreground, background string, targetRatio float64) string {
	r, g, b := hexToRGB(foreground)
	bgLum := c.RelativeLuminance(background)

	for factor := 0; factor < 100; factor++ {
		var nr, ng, nb int
		if bgLum > 0.5 {
			nr = max(0, r-factor*2)
			ng = max(0, g-factor*2)
			nb = max(0, b-factor*2)
		} else {
			nr = min(255, r+factor*2)
			ng = min(255, g+factor*2)
			nb = min(255, b+factor*2)
		}
		candidate := fmt.Sprintf("#%02x%02x%02x", nr, ng, nb)
		if c.Check(candidate, background).Ratio >= targetRatio {
			return candidate
		}
	}

	if c.Check("#000000", background).Ratio > c.Check("#FFFFFF", background).Ratio {
		return "#000000"
	}
	return "#FFFFFF"
}

// RelativeLuminance computes the WCAG relative luminance of a hex color.
// Malformed colors are treated as black.
func (c *Checker) RelativeLuminance(color string) float64 {
	r, g, b := hexToRGB(color)
	return 0.2126*linearize(float64(r)/255) +
		0.7152*linearize(float64(g)/255) +
		0.0722*linearize(float64(b)/255)
}

// linearize removes sRGB gamma from a [0,1] channel value.
func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// hexToRGB parses "#RGB" or "#RRGGBB" (leading # optional). Shorthand
// digits are doubled. Anything unparseable maps to black.
func hexToRGB(color string) (int, int, int) {
	s := color
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0
	}
	r, err1 := strconv.ParseUint(s[0:2], 16, 8)
	g, err2 := strconv.ParseUint(s[2:4], 16, 8)
	b, err3 := strconv.ParseUint(s[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0
	}
	return int(r), int(g), int(b)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
