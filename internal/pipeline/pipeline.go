// Package pipeline drives one think-aloud run: validate the target,
// capture the page, compile the prompt, run (or fake) inference, parse
// the reply and persist the outcome. Stages are sequential per run;
// concurrent runs share nothing but the log store.
package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/mira/internal/events"
	"github.com/MikeSquared-Agency/mira/internal/page"
	"github.com/MikeSquared-Agency/mira/internal/persona"
	"github.com/MikeSquared-Agency/mira/internal/prompt"
	"github.com/MikeSquared-Agency/mira/internal/reply"
	"github.com/MikeSquared-Agency/mira/internal/store"
)

// Retriever supplies the document representation for a target URL.
type Retriever interface {
	Capture(ctx context.Context, url string) (*page.Document, error)
}

// Inferencer sends one prompt (plus optional image) to the model.
type Inferencer interface {
	Complete(ctx context.Context, text string, image []byte) (string, error)
}

// Notifier broadcasts a completed run. Failures are absorbed.
type Notifier interface {
	RunCompleted(evt events.RunCompleted) error
}

// Runner executes runs. All collaborators are injected; a nil
// Inferencer selects the deterministic placeholder path and a nil
// Notifier disables event publishing.
type Runner struct {
	catalog   *persona.Catalog
	retriever Retriever
	llm       Inferencer
	logs      store.LogStore
	notifier  Notifier
	lang      string
	logger    *slog.Logger
}

func New(catalog *persona.Catalog, retriever Retriever, llm Inferencer, logs store.LogStore, notifier Notifier, lang string, logger *slog.Logger) *Runner {
	if lang != "en" {
		lang = "ja"
	}
	return &Runner{
		catalog:   catalog,
		retriever: retriever,
		llm:       llm,
		logs:      logs,
		notifier:  notifier,
		lang:      lang,
		logger:    logger,
	}
}

// Meta describes the captured page state returned to the caller.
type Meta struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	W       int    `json:"w"`
	H       int    `json:"h"`
	ScrollY int    `json:"scrollY"`
}

// Result is the outcome of one successful run.
type Result struct {
	RunID             string
	Status            string
	TookMS            int64
	PersonaID         string
	Meta              Meta
	VisibleText       []string
	Assessment        reply.Assessment
	ScreenshotDataURL string
}

// Placeholder texts used when no inference service is configured.
const (
	placeholderUtteranceJA  = "（ダミー）見出しとボタンは把握できるが、入力の説明は少し不足。"
	placeholderNextActionJA = "必要項目を入力して「送信」を押す"
	placeholderUtteranceEN  = "(placeholder) Headings and buttons are clear, but the field descriptions feel a little thin."
	placeholderNextActionEN = "Fill in the required fields and press Submit"
	placeholderFriction     = 1
)

// Run drives the full pipeline for one target + persona.
func (r *Runner) Run(ctx context.Context, rawURL, personaID string) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()

	// Validating: reject before any side effect.
	if !validTarget(rawURL) {
		return nil, ErrBadTarget
	}

	p := r.catalog.Lookup(personaID)
	r.logger.Info("run started", "run_id", runID, "url", rawURL, "persona", p.ID)

	// Extracting: single attempt, no internal retry.
	doc, err := r.retriever.Capture(ctx, rawURL)
	if err != nil {
		return nil, &RetrievalError{URL: rawURL, Err: err}
	}
	items := page.Summarize(doc, page.SummaryOptions{})

	// Compiling: pure. The catalog never hands out an id-less profile,
	// so a failure here is a programming error, not a run error.
	compiled, err := prompt.Compile(p, items, doc.Screenshot, prompt.Options{Lang: r.lang})
	if err != nil {
		return nil, fmt.Errorf("compile prompt: %w", err)
	}

	// Inferring: unconfigured inference is a designed fallback, not a
	// failure; a failing live call aborts the run.
	var assessment reply.Assessment
	if r.llm == nil {
		assessment = r.placeholder()
	} else {
		raw, err := r.llm.Complete(ctx, compiled.Text, compiled.Image)
		if err != nil {
			return nil, &InferenceError{Err: err}
		}
		// Parsing: total, never fails.
		assessment = reply.Parse(raw)
	}

	// Logging: best-effort; the assessment already exists.
	entry := store.Entry{
		Persona:       p.ID,
		URL:           rawURL,
		Utterance:     assessment.Utterance,
		NextAction:    assessment.NextAction,
		FrictionScore: assessment.FrictionScore,
	}
	if err := r.logs.Append(ctx, entry); err != nil {
		r.logger.Error("log append failed", "run_id", runID, "error", err)
	}

	if r.notifier != nil {
		evt := events.RunCompleted{
			RunID:         runID,
			Persona:       p.ID,
			URL:           rawURL,
			FrictionScore: assessment.FrictionScore,
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
		}
		if err := r.notifier.RunCompleted(evt); err != nil {
			r.logger.Warn("event publish failed", "run_id", runID, "error", err)
		}
	}

	// Responding.
	res := &Result{
		RunID:       runID,
		Status:      "done",
		TookMS:      time.Since(start).Milliseconds(),
		PersonaID:   p.ID,
		Meta:        Meta{URL: rawURL, Title: doc.Title},
		VisibleText: page.Lines(items, r.lang),
		Assessment:  assessment,
	}
	if doc.Viewport != nil {
		res.Meta.W = doc.Viewport.W
		res.Meta.H = doc.Viewport.H
		res.Meta.ScrollY = doc.Viewport.ScrollY
	}
	if len(doc.Screenshot) > 0 {
		res.ScreenshotDataURL = "data:image/png;base64," + base64.StdEncoding.EncodeToString(doc.Screenshot)
	}

	r.logger.Info("run finished",
		"run_id", runID,
		"persona", p.ID,
		"friction", assessment.FrictionScore,
		"took_ms", res.TookMS,
	)
	return res, nil
}

func (r *Runner) placeholder() reply.Assessment {
	if r.lang == "en" {
		return reply.Assessment{
			Utterance:     placeholderUtteranceEN,
			NextAction:    placeholderNextActionEN,
			FrictionScore: placeholderFriction,
		}
	}
	return reply.Assessment{
		Utterance:     placeholderUtteranceJA,
		NextAction:    placeholderNextActionJA,
		FrictionScore: placeholderFriction,
	}
}

func validTarget(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
