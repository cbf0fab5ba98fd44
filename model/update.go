package model

// ElementUpdate carries reviewed accessibility edits for one element,
// typically collected from a human review pass over the analysis output.
// Nil fields are left untouched.
type ElementUpdate struct {
	ElementID    string  `json:"element_id"`
	SlideNumber  int     `json:"slide_number"`
	AltText      *string `json:"alt_text,omitempty"`
	ReadingOrder *int    `json:"reading_order,omitempty"`
	Decorative   *bool   `json:"is_decorative,omitempty"`
	HeadingLevel *int    `json:"heading_level,omitempty"`
}

// ApplyUpdates applies element updates to the presentation in place and
// returns the number of elements that matched. Slide and element ordering
// is never changed; a new ReadingOrder value only takes effect when the
// structure builder re-sorts. Heading levels outside 1-6 are ignored.
func ApplyUpdates(p *Presentation, updates []ElementUpdate) int {
	if p == nil {
		return 0
	}
	matched := 0
	for _, u := range updates {
		for si := range p.Slides {
			slide := &p.Slides[si]
			if slide.Number != u.SlideNumber {
				continue
			}
			for ei := range slide.Elements {
				el := &slide.Elements[ei]
				if el.ID != u.ElementID {
					continue
				}
				matched++
				if u.AltText != nil {
					el.AltText = *u.AltText
				}
				if u.ReadingOrder != nil {
					el.ReadingOrder = *u.ReadingOrder
				}
				if u.Decorative != nil {
					el.Decorative = *u.Decorative
				}
				if u.HeadingLevel != nil && *u.HeadingLevel >= 1 && *u.HeadingLevel <= 6 {
					el.HeadingLevel = *u.HeadingLevel
				}
			}
		}
	}
	return matched
}
