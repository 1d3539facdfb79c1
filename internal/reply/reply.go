// Package reply parses the model's free-text answer back into typed,
// bounded fields. The three-line labeled format is the one fragile
// boundary of the system, so parsing is total: any input, including
// the empty string, yields a well-formed result and never an error.
package reply

import (
	"regexp"
	"strings"
)

// Label tokens of the output contract, in both working languages. The
// prompt compiler instructs the model with these exact tokens and the
// parser matches them case-sensitively.
const (
	LabelUtteranceJA  = "発話"
	LabelNextActionJA = "次アクション"
	LabelFrictionJA   = "摩擦"

	LabelUtteranceEN  = "Utterance"
	LabelNextActionEN = "Next action"
	LabelFrictionEN   = "Friction"
)

const (
	maxUtterance  = 800
	maxNextAction = 200

	// fallbackFriction is used whenever no in-range digit can be
	// recovered. A neutral middle value: inference degradation must
	// never block a response.
	fallbackFriction = 1
)

// Labels are matched anywhere in the reply, introduced by the token and
// a half- or full-width colon; the value runs to the end of the line.
var (
	utteranceRe  = regexp.MustCompile(`(?:` + LabelUtteranceJA + `|` + LabelUtteranceEN + `)[:：][ \t]*(.+)`)
	nextActionRe = regexp.MustCompile(`(?:` + LabelNextActionJA + `|` + LabelNextActionEN + `)[:：][ \t]*(.+)`)
	frictionRe   = regexp.MustCompile(`(?:` + LabelFrictionJA + `|` + LabelFrictionEN + `)[:：][ \t]*(\d)`)
)

// Assessment is the typed outcome of one run.
type Assessment struct {
	Utterance     string `json:"utterance"`
	NextAction    string `json:"next_action"`
	FrictionScore int    `json:"friction_score"`
	Raw           string `json:"raw"`
}

// Parse extracts the three labeled fields from raw model output.
//
//   - Utterance: the labeled line, else the whole reply. Capped at 800.
//   - Next action: the labeled line, else empty. Capped at 200.
//   - Friction: the first digit after the label, range-validated to
//     0..3; anything else (missing, non-numeric, out of range) falls
//     back to 1. Out-of-range digits are rejected rather than clamped
//     so a reply of "9" reads as "contract not honoured", not "maximum
//     friction".
//
// Parse is a pure function of its input.
func Parse(raw string) Assessment {
	raw = strings.TrimSpace(raw)

	utterance := raw
	if m := utteranceRe.FindStringSubmatch(raw); m != nil {
		utterance = strings.TrimSpace(m[1])
	}

	nextAction := ""
	if m := nextActionRe.FindStringSubmatch(raw); m != nil {
		nextAction = strings.TrimSpace(m[1])
	}

	friction := fallbackFriction
	if m := frictionRe.FindStringSubmatch(raw); m != nil {
		if n := int(m[1][0] - '0'); n >= 0 && n <= 3 {
			friction = n
		}
	}

	return Assessment{
		Utterance:     truncate(utterance, maxUtterance),
		NextAction:    truncate(nextAction, maxNextAction),
		FrictionScore: friction,
		Raw:           raw,
	}
}

// truncate caps s at n runes so multi-byte text is never split.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
