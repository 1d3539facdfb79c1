package prompt

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/mira/internal/persona"
)

// Narrative renders the persona section of the prompt. A profile with
// a narrative override uses it verbatim; otherwise the narrative is
// expanded from the profile's attributes. The expansion is a pure
// function of the profile, so the same persona always yields the same
// text, and adding a persona never touches compiler logic.
func Narrative(p persona.Profile, lang string) string {
	if p.Narrative != "" {
		return strings.TrimSpace(p.Narrative)
	}
	if lang == "en" {
		return narrativeEN(p)
	}
	return narrativeJA(p)
}

var techLevelEN = map[int]string{
	1: "Technology intimidates you; you worry that one wrong tap will break something.",
	2: "You are not confident with digital services and move slowly and deliberately.",
	3: "You manage everyday digital tasks fine, but unfamiliar flows slow you down.",
	4: "You are comfortable online and expect interfaces to keep up with you.",
	5: "You navigate purely by instinct and judge a screen within seconds.",
}

var techLevelJA = map[int]string{
	1: "技術が怖く、一回のタップで壊してしまわないかと心配になります。",
	2: "デジタルサービスに自信がなく、ゆっくり慎重に操作します。",
	3: "日常的な操作は問題ありませんが、見慣れない画面では手が止まります。",
	4: "ネット操作には慣れていて、テンポよく進められる画面を期待します。",
	5: "完全に感覚で操作し、画面の良し悪しを数秒で判断します。",
}

func narrativeEN(p persona.Profile) string {
	var b []string

	intro := fmt.Sprintf("You are %s", displayName(p))
	if p.Age > 0 {
		intro += fmt.Sprintf(", %d years old", p.Age)
	}
	b = append(b, intro+".")

	if s, ok := techLevelEN[p.TechLevel]; ok {
		b = append(b, s)
	}
	if p.Device != "" {
		b = append(b, fmt.Sprintf("You are using a %s.", p.Device))
	}
	switch p.TimeConstraint {
	case "hurried":
		b = append(b, "You are pressed for time and every extra step irritates you.")
	case "relaxed":
		b = append(b, "You are in no hurry and prefer to take one step at a time.")
	}
	switch p.FrustrationThreshold {
	case "low":
		b = append(b, "Your patience runs out quickly when a screen is confusing.")
	case "high":
		b = append(b, "You stay calm even when the interface fights you.")
	}
	if len(p.Disabilities) > 0 {
		b = append(b, fmt.Sprintf("You live with %s; interfaces that ignore accessibility are a serious barrier for you.",
			strings.Join(p.Disabilities, ", ")))
	}
	if bh := p.Behaviors; bh != nil {
		if bh.ReadsInstructions {
			b = append(b, "You read instructions before acting.")
		} else {
			b = append(b, "You skip instructions and just try things.")
		}
		if bh.UsesHelp {
			b = append(b, "You look for help links when you get stuck.")
		}
		if bh.AbandonsQuickly {
			b = append(b, "When a flow feels like too much work, you are quick to give up and leave.")
		}
	}
	if len(p.Traits) > 0 {
		b = append(b, fmt.Sprintf("In short: %s.", strings.Join(p.Traits, " / ")))
	}
	return strings.Join(b, " ")
}

func narrativeJA(p persona.Profile) string {
	var b []string

	intro := fmt.Sprintf("あなたは%s", displayName(p))
	if p.Age > 0 {
		intro += fmt.Sprintf("、%d歳", p.Age)
	}
	b = append(b, intro+"です。")

	if s, ok := techLevelJA[p.TechLevel]; ok {
		b = append(b, s)
	}
	if p.Device != "" {
		b = append(b, fmt.Sprintf("%sで操作しています。", deviceJA(p.Device)))
	}
	switch p.TimeConstraint {
	case "hurried":
		b = append(b, "時間がなく、余計な手順のひとつひとつにイライラします。")
	case "relaxed":
		b = append(b, "急いでおらず、一歩ずつ確実に進めたいと考えています。")
	}
	switch p.FrustrationThreshold {
	case "low":
		b = append(b, "分かりにくい画面ではすぐに我慢の限界が来ます。")
	case "high":
		b = append(b, "画面が不親切でも落ち着いて対処できます。")
	}
	if len(p.Disabilities) > 0 {
		b = append(b, fmt.Sprintf("%sがあり、アクセシビリティを無視した画面は大きな障壁になります。",
			strings.Join(p.Disabilities, "、")))
	}
	if bh := p.Behaviors; bh != nil {
		if bh.ReadsInstructions {
			b = append(b, "操作の前に説明文を読みます。")
		} else {
			b = append(b, "説明は読まず、とりあえず触ってみます。")
		}
		if bh.UsesHelp {
			b = append(b, "困ったらヘルプを探します。")
		}
		if bh.AbandonsQuickly {
			b = append(b, "面倒だと感じたらすぐに離脱します。")
		}
	}
	if len(p.Traits) > 0 {
		b = append(b, fmt.Sprintf("特徴：%s。", strings.Join(p.Traits, "／")))
	}
	return strings.Join(b, "")
}

func displayName(p persona.Profile) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

func deviceJA(device string) string {
	switch device {
	case "mobile":
		return "スマートフォン"
	case "tablet":
		return "タブレット"
	case "desktop":
		return "パソコン"
	}
	return device
}
