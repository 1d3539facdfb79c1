package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/mira/internal/page"
	"github.com/MikeSquared-Agency/mira/internal/persona"
)

var testSummary = []page.SummaryItem{
	{Category: page.CategoryTitle, Text: "My Shop"},
	{Category: page.CategoryHeading, Text: "Sign up"},
	{Category: page.CategoryField, Text: "Email", Qualifiers: []string{"required"}},
}

func testProfile() persona.Profile {
	return persona.Profile{
		ID:                   "tester",
		Name:                 "Tester (30)",
		Age:                  30,
		Traits:               []string{"careful"},
		Goal:                 "complete signup",
		TechLevel:            2,
		Device:               "desktop",
		TimeConstraint:       "relaxed",
		FrustrationThreshold: "low",
		Behaviors:            &persona.Behaviors{ReadsInstructions: true, UsesHelp: true},
	}
}

func TestCompile_Deterministic(t *testing.T) {
	p := testProfile()

	a, err := Compile(p, testSummary, nil, Options{Lang: "ja"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	b, _ := Compile(p, testSummary, nil, Options{Lang: "ja"})
	if a.Text != b.Text {
		t.Error("identical inputs must compile to byte-identical prompts")
	}
}

func TestCompile_StructureJA(t *testing.T) {
	c, err := Compile(testProfile(), testSummary, nil, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	for _, want := range []string{
		"complete signup",
		"[タイトル] My Shop",
		"[入力欄] Email (required)",
		"[摩擦スコア判定基準]",
		"発話:",
		"次アクション:",
		"摩擦: <0|1|2|3>",
	} {
		if !strings.Contains(c.Text, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	// Narrative comes first, goal restated after it.
	if !strings.HasPrefix(c.Text, "あなたはTester (30)、30歳です。") {
		t.Errorf("prompt must open with the persona narrative, got %q", c.Text[:60])
	}
}

func TestCompile_StructureEN(t *testing.T) {
	c, err := Compile(testProfile(), testSummary, nil, Options{Lang: "en"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	for _, want := range []string{
		"[title] My Shop",
		"Utterance:",
		"Next action:",
		"Friction: <0|1|2|3>",
	} {
		if !strings.Contains(c.Text, want) {
			t.Errorf("english prompt missing %q", want)
		}
	}
}

func TestCompile_InvalidPersona(t *testing.T) {
	_, err := Compile(persona.Profile{Name: "no id"}, testSummary, nil, Options{})
	if !errors.Is(err, ErrInvalidPersona) {
		t.Fatalf("expected ErrInvalidPersona, got %v", err)
	}
}

func TestCompile_ImagePassthrough(t *testing.T) {
	img := []byte{0x89, 'P', 'N', 'G'}

	with, err := Compile(testProfile(), testSummary, img, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	without, _ := Compile(testProfile(), testSummary, nil, Options{})

	if string(with.Image) != string(img) {
		t.Error("image payload not carried through")
	}
	if with.Text != without.Text {
		t.Error("attaching an image must not alter the prompt text")
	}
}

func TestNarrative_OverrideWins(t *testing.T) {
	p := testProfile()
	p.Narrative = "custom narrative text"
	if got := Narrative(p, "ja"); got != "custom narrative text" {
		t.Errorf("expected override, got %q", got)
	}
}

func TestNarrative_VariesByAttributes(t *testing.T) {
	base := testProfile()

	hurried := base
	hurried.TimeConstraint = "hurried"

	a11y := base
	a11y.Disabilities = []string{"low vision"}

	expert := base
	expert.TechLevel = 5

	for _, lang := range []string{"ja", "en"} {
		n := Narrative(base, lang)
		if n == Narrative(hurried, lang) {
			t.Errorf("%s: time pressure must change the narrative", lang)
		}
		if n == Narrative(a11y, lang) {
			t.Errorf("%s: disabilities must change the narrative", lang)
		}
		if n == Narrative(expert, lang) {
			t.Errorf("%s: tech level must change the narrative", lang)
		}
	}
}

func TestNarrative_AllCatalogPersonasDistinct(t *testing.T) {
	catalog := persona.Default()
	for _, lang := range []string{"ja", "en"} {
		seen := map[string]string{}
		for _, p := range catalog.All() {
			p.Narrative = "" // force generated expansion
			n := Narrative(p, lang)
			if n == "" {
				t.Errorf("%s: persona %s expands to empty narrative", lang, p.ID)
			}
			if prev, dup := seen[n]; dup {
				t.Errorf("%s: personas %s and %s share a narrative", lang, prev, p.ID)
			}
			seen[n] = p.ID
		}
	}
}

func TestNarrative_Stable(t *testing.T) {
	p := testProfile()
	if Narrative(p, "en") != Narrative(p, "en") {
		t.Error("narrative expansion must be stable")
	}
}
