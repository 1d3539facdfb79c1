package page

import (
	"testing"
)

func parseOrFail(t *testing.T, html string) *Document {
	t.Helper()
	doc, err := ParseHTML([]byte(html))
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	return doc
}

func elementsOfKind(doc *Document, kind Kind) []Element {
	var out []Element
	for _, e := range doc.Elements {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func TestParseHTML_TitleAndHeadings(t *testing.T) {
	doc := parseOrFail(t, `<html><head><title>  My   Shop </title></head>
		<body><h1>Welcome</h1><h2> Deals </h2><h3></h3><h4>skipped</h4></body></html>`)

	if doc.Title != "My Shop" {
		t.Errorf("expected collapsed title, got %q", doc.Title)
	}
	if doc.Rendered {
		t.Error("static parse must not claim rendered mode")
	}

	hs := elementsOfKind(doc, KindHeading)
	if len(hs) != 3 {
		t.Fatalf("expected 3 heading nodes (h1-h3 only), got %d", len(hs))
	}
	if hs[0].Label != "Welcome" || hs[1].Label != "Deals" {
		t.Errorf("unexpected heading labels: %q, %q", hs[0].Label, hs[1].Label)
	}
	if hs[2].Label != "" {
		t.Errorf("empty heading should have empty label, got %q", hs[2].Label)
	}
}

func TestParseHTML_Actions(t *testing.T) {
	doc := parseOrFail(t, `<body>
		<button>Buy now</button>
		<button disabled>Sold out</button>
		<a href="/cart">Cart</a>
		<a>no href, ignored</a>
		<div role="button" aria-label="Close dialog"></div>
		<span role="button" aria-disabled="true">Next</span>
		<input type="submit" value="Send">
	</body>`)

	as := elementsOfKind(doc, KindAction)
	if len(as) != 6 {
		t.Fatalf("expected 6 actions, got %d: %+v", len(as), as)
	}
	if as[0].Label != "Buy now" || as[0].Disabled {
		t.Errorf("unexpected first action: %+v", as[0])
	}
	if !as[1].Disabled {
		t.Error("native disabled attribute not recorded")
	}
	if as[3].Label != "Close dialog" {
		t.Errorf("aria-label fallback failed, got %q", as[3].Label)
	}
	if !as[4].Disabled {
		t.Error("aria-disabled=true not recorded")
	}
	if as[5].Label != "Send" {
		t.Errorf("input[type=submit] value not used, got %q", as[5].Label)
	}
}

func TestParseHTML_FieldLabelResolution(t *testing.T) {
	doc := parseOrFail(t, `<body>
		<input aria-label="Search term" placeholder="ignored">
		<label for="em">Email address</label><input id="em" type="email">
		<label>Phone <input type="tel"></label>
		<input placeholder="Postcode">
		<select></select>
		<input type="hidden" name="csrf">
	</body>`)

	fs := elementsOfKind(doc, KindField)
	if len(fs) != 5 {
		t.Fatalf("expected 5 fields (hidden input skipped), got %d", len(fs))
	}
	want := []string{"Search term", "Email address", "Phone", "Postcode", ""}
	for i, w := range want {
		if fs[i].Label != w {
			t.Errorf("field %d: expected label %q, got %q", i, w, fs[i].Label)
		}
	}
}

func TestParseHTML_FieldQualifiersAndErrors(t *testing.T) {
	doc := parseOrFail(t, `<body>
		<input aria-label="Name" required>
		<input aria-label="Email" aria-required="true" aria-invalid="true"
			aria-describedby="em-err">
		<span id="em-err">メールアドレスが不正です</span>
		<div>
			<input aria-label="Card" aria-invalid="true">
			<p class="error">Card number is invalid</p>
		</div>
		<input aria-label="Coupon" disabled>
	</body>`)

	fs := elementsOfKind(doc, KindField)
	if len(fs) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(fs))
	}
	if !fs[0].Required {
		t.Error("native required not recorded")
	}
	if !fs[1].Required || !fs[1].Invalid {
		t.Errorf("aria required/invalid not recorded: %+v", fs[1])
	}
	if fs[1].Error != "メールアドレスが不正です" {
		t.Errorf("aria-describedby error not resolved, got %q", fs[1].Error)
	}
	if fs[2].Error != "Card number is invalid" {
		t.Errorf("sibling error convention not resolved, got %q", fs[2].Error)
	}
	if !fs[3].Disabled {
		t.Error("disabled field not recorded")
	}
}

func TestParseHTML_NeverFailsOnJunk(t *testing.T) {
	for _, html := range []string{"", "<<<>>>", "plain text", "<body><input"} {
		if _, err := ParseHTML([]byte(html)); err != nil {
			t.Errorf("ParseHTML(%q) returned error: %v", html, err)
		}
	}
}
