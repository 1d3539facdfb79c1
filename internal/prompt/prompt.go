// Package prompt deterministically compiles a persona profile and a UI
// summary into one model-ready prompt with a strict output contract.
// Two calls with identical inputs produce byte-identical text.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/mira/internal/page"
	"github.com/MikeSquared-Agency/mira/internal/persona"
	"github.com/MikeSquared-Agency/mira/internal/reply"
)

// ErrInvalidPersona is returned for a profile without an id. The
// compiler refuses to emit a degraded prompt.
var ErrInvalidPersona = errors.New("prompt: persona profile has no id")

// Compiled is the opaque prompt block, optionally paired with a
// screenshot of the captured page.
type Compiled struct {
	Text  string
	Image []byte // PNG, may be nil
}

// Options controls compilation.
type Options struct {
	Lang string // "ja" (default) or "en"
}

func (o *Options) defaults() {
	if o.Lang != "en" {
		o.Lang = "ja"
	}
}

const instructionsJA = `上記のペルソナになりきり、以下の画面を見たときの独り言を述べてください。

[現在の目標]
%s

[画面の内容]
%s

[摩擦スコア判定基準]
- 0: このペルソナにとって全く問題なし
- 1: 少し考えるが問題なく進められる
- 2: 困惑や不安、明らかな使いにくさを感じる
- 3: 操作を諦めたくなる、大きな障壁がある

【重要】あなたのペルソナの特徴（年齢、技術レベル、制約）を強く反映させて回答してください。

出力形式:
%s: <ペルソナらしい独り言 1-3文>
%s: <具体的な行動 1行>
%s: <0|1|2|3>`

const instructionsEN = `Stay fully in character as the persona above and think aloud about the screen below.

[Current goal]
%s

[Screen contents]
%s

[Friction score rubric]
- 0: No problem at all for this persona
- 1: Needs a moment of thought but can proceed
- 2: Confusion, anxiety or clear awkwardness
- 3: A major barrier; the persona wants to give up

IMPORTANT: let the persona's age, technical level and constraints strongly shape the answer.

Output format:
%s: <1-3 sentences of in-character inner monologue>
%s: <one concrete action, one line>
%s: <0|1|2|3>`

// Compile builds the prompt text for one run. The screenshot, when
// present, is attached unchanged; it never alters the text structure.
func Compile(p persona.Profile, summary []page.SummaryItem, screenshot []byte, opts Options) (Compiled, error) {
	if p.ID == "" {
		return Compiled{}, ErrInvalidPersona
	}
	opts.defaults()

	lines := strings.Join(page.Lines(summary, opts.Lang), "\n")

	tmpl := instructionsJA
	labels := []any{p.Goal, lines, reply.LabelUtteranceJA, reply.LabelNextActionJA, reply.LabelFrictionJA}
	if opts.Lang == "en" {
		tmpl = instructionsEN
		labels = []any{p.Goal, lines, reply.LabelUtteranceEN, reply.LabelNextActionEN, reply.LabelFrictionEN}
	}

	text := Narrative(p, opts.Lang) + "\n\n" + fmt.Sprintf(tmpl, labels...)

	return Compiled{Text: text, Image: screenshot}, nil
}
