package page

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML builds a Document from static, unrendered markup. No
// geometry is available, so every matched node is assumed visible.
func ParseHTML(raw []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	d := &Document{
		Title: collapse(doc.Find("title").First().Text()),
	}

	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		d.Elements = append(d.Elements, Element{
			Kind:  KindHeading,
			Label: collapse(sel.Text()),
		})
	})

	doc.Find("button, input[type='submit'], input[type='button'], a[href], [role='button']").
		Each(func(_ int, sel *goquery.Selection) {
			d.Elements = append(d.Elements, Element{
				Kind:     KindAction,
				Label:    actionLabel(sel),
				Disabled: hasAttr(sel, "disabled") || sel.AttrOr("aria-disabled", "") == "true",
			})
		})

	doc.Find("input, textarea, select").Each(func(_ int, sel *goquery.Selection) {
		if sel.AttrOr("type", "") == "hidden" {
			return
		}
		switch sel.AttrOr("type", "") {
		case "submit", "button":
			return // already captured as actions
		}
		d.Elements = append(d.Elements, Element{
			Kind:     KindField,
			Label:    fieldLabel(doc, sel),
			Error:    fieldError(doc, sel),
			Required: hasAttr(sel, "required") || sel.AttrOr("aria-required", "") == "true",
			Invalid:  sel.AttrOr("aria-invalid", "") == "true",
			Disabled: hasAttr(sel, "disabled") || sel.AttrOr("aria-disabled", "") == "true",
		})
	})

	return d, nil
}

// actionLabel resolves a button or link label: visible text, falling
// back to aria-label. Inputs of type submit/button use their value.
func actionLabel(sel *goquery.Selection) string {
	if goquery.NodeName(sel) == "input" {
		if v := collapse(sel.AttrOr("value", "")); v != "" {
			return v
		}
		return collapse(sel.AttrOr("aria-label", ""))
	}
	if t := collapse(sel.Text()); t != "" {
		return t
	}
	return collapse(sel.AttrOr("aria-label", ""))
}

// fieldLabel resolves a form control label:
// aria-label → <label for=id> → enclosing <label> → placeholder.
func fieldLabel(doc *goquery.Document, sel *goquery.Selection) string {
	if v := collapse(sel.AttrOr("aria-label", "")); v != "" {
		return v
	}
	if id := sel.AttrOr("id", ""); id != "" {
		if lbl := doc.Find(`label[for="` + id + `"]`).First(); lbl.Length() > 0 {
			if v := collapse(lbl.Text()); v != "" {
				return v
			}
		}
	}
	if lbl := sel.Closest("label"); lbl.Length() > 0 {
		if v := collapse(lbl.Text()); v != "" {
			return v
		}
	}
	return collapse(sel.AttrOr("placeholder", ""))
}

// fieldError resolves the error message associated with a control:
// aria-describedby target first, then a sibling following the common
// error-styling conventions.
func fieldError(doc *goquery.Document, sel *goquery.Selection) string {
	if ids := sel.AttrOr("aria-describedby", ""); ids != "" {
		for _, id := range strings.Fields(ids) {
			if t := collapse(doc.Find("#" + id).First().Text()); t != "" {
				return t
			}
		}
	}
	sib := sel.Siblings().Filter(".error, .field-error, .invalid-feedback, [role='alert']").First()
	return collapse(sib.Text())
}

func hasAttr(sel *goquery.Selection, name string) bool {
	_, ok := sel.Attr(name)
	return ok
}

// collapse trims and collapses internal whitespace runs to one space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
