package page

import (
	"fmt"
	"strings"
)

// Category tags one summary line.
type Category string

const (
	CategoryViewport Category = "viewport"
	CategoryFocus    Category = "focus"
	CategoryTitle    Category = "title"
	CategoryHeading  Category = "heading"
	CategoryAction   Category = "action"
	CategoryField    Category = "field"
)

// SummaryItem is one labeled line of the UI summary.
type SummaryItem struct {
	Category   Category
	Text       string
	Qualifiers []string // e.g. "required", "invalid", "disabled"
}

// SummaryOptions caps each category and the assembled summary. Caps are
// hard truncation in document order, never a sample.
type SummaryOptions struct {
	MaxHeadings int
	MaxActions  int
	MaxFields   int
	MaxTotal    int
}

func (o *SummaryOptions) defaults() {
	if o.MaxHeadings <= 0 {
		o.MaxHeadings = 14
	}
	if o.MaxActions <= 0 {
		o.MaxActions = 20
	}
	if o.MaxFields <= 0 {
		o.MaxFields = 20
	}
	if o.MaxTotal <= 0 {
		o.MaxTotal = 120
	}
}

// Summarize assembles the ordered, bounded UI summary for a document.
// Order: viewport hint, focused element, title, headings, actions,
// fields; each category in document order. Elements without a resolved
// label are dropped. In rendered mode invisible elements are excluded.
// Output is a pure function of the document: identical input yields
// byte-identical lines.
func Summarize(doc *Document, opts SummaryOptions) []SummaryItem {
	opts.defaults()

	items := make([]SummaryItem, 0, 32)

	if doc.Rendered && doc.Viewport != nil {
		pos := "top"
		if doc.Viewport.ScrollY >= 80 {
			pos = "scrolled"
		}
		items = append(items, SummaryItem{
			Category: CategoryViewport,
			Text:     fmt.Sprintf("%dx%d %s", doc.Viewport.W, doc.Viewport.H, pos),
		})
	}

	if doc.Rendered {
		for _, e := range doc.Elements {
			if e.Focused && e.visible(true) && strings.TrimSpace(e.Label) != "" {
				items = append(items, SummaryItem{
					Category:   CategoryFocus,
					Text:       strings.TrimSpace(e.Label),
					Qualifiers: qualifiers(e),
				})
				break
			}
		}
	}

	if t := strings.TrimSpace(doc.Title); t != "" {
		items = append(items, SummaryItem{Category: CategoryTitle, Text: t})
	}

	counts := map[Kind]int{}
	caps := map[Kind]int{
		KindHeading: opts.MaxHeadings,
		KindAction:  opts.MaxActions,
		KindField:   opts.MaxFields,
	}
	byKind := map[Kind]Category{
		KindHeading: CategoryHeading,
		KindAction:  CategoryAction,
		KindField:   CategoryField,
	}

	for _, kind := range []Kind{KindHeading, KindAction, KindField} {
		for _, e := range doc.Elements {
			if e.Kind != kind || !e.visible(doc.Rendered) {
				continue
			}
			label := strings.TrimSpace(e.Label)
			if label == "" {
				continue
			}
			if counts[kind] >= caps[kind] {
				break
			}
			counts[kind]++
			items = append(items, SummaryItem{
				Category:   byKind[kind],
				Text:       fieldText(label, e.Error),
				Qualifiers: qualifiers(e),
			})
		}
	}

	if len(items) > opts.MaxTotal {
		items = items[:opts.MaxTotal]
	}
	return items
}

func qualifiers(e Element) []string {
	var q []string
	if e.Required {
		q = append(q, "required")
	}
	if e.Invalid {
		q = append(q, "invalid")
	}
	if e.Disabled {
		q = append(q, "disabled")
	}
	return q
}

func fieldText(label, errText string) string {
	errText = strings.TrimSpace(errText)
	if errText == "" {
		return label
	}
	return label + " [" + errText + "]"
}

// markers maps category to the bracketed line marker per prompt
// language. "ja" is the default working language, "en" the second.
var markers = map[string]map[Category]string{
	"ja": {
		CategoryViewport: "[画面]",
		CategoryFocus:    "[フォーカス]",
		CategoryTitle:    "[タイトル]",
		CategoryHeading:  "[見出し]",
		CategoryAction:   "[アクション]",
		CategoryField:    "[入力欄]",
	},
	"en": {
		CategoryViewport: "[viewport]",
		CategoryFocus:    "[focus]",
		CategoryTitle:    "[title]",
		CategoryHeading:  "[heading]",
		CategoryAction:   "[action]",
		CategoryField:    "[field]",
	},
}

// Line renders the item as a single prompt line in the given language
// ("ja" or "en"; anything else falls back to "ja").
func (it SummaryItem) Line(lang string) string {
	set, ok := markers[lang]
	if !ok {
		set = markers["ja"]
	}
	var sb strings.Builder
	sb.WriteString(set[it.Category])
	sb.WriteByte(' ')
	sb.WriteString(it.Text)
	if len(it.Qualifiers) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(it.Qualifiers, ", "))
		sb.WriteByte(')')
	}
	return sb.String()
}

// Lines renders a whole summary, one item per line.
func Lines(items []SummaryItem, lang string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Line(lang)
	}
	return out
}
