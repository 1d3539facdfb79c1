package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-rod/rod"

	"github.com/MikeSquared-Agency/mira/internal/page"
)

// snapshotScript runs in the page and returns the captured UI state as
// JSON. Label and qualifier resolution mirrors the static parser; on
// top of that it records computed display/visibility, bounding-box
// area, the focused element and the viewport.
const snapshotScript = `() => {
	const collapse = s => (s || '').replace(/\s+/g, ' ').trim();
	const style = el => window.getComputedStyle(el);
	const area = el => { const r = el.getBoundingClientRect(); return r.width * r.height; };
	const active = document.activeElement;
	const els = [];
	const push = (el, kind, label, extra) => {
		const cs = style(el);
		els.push(Object.assign({
			kind: kind,
			label: collapse(label),
			display: cs.display,
			visibility: cs.visibility,
			area: area(el),
			focused: el === active
		}, extra || {}));
	};

	for (const h of document.querySelectorAll('h1, h2, h3')) {
		push(h, 'heading', h.textContent);
	}

	const actionSel = "button, input[type='submit'], input[type='button'], a[href], [role='button']";
	for (const a of document.querySelectorAll(actionSel)) {
		const label = a.matches('input')
			? (a.value || a.getAttribute('aria-label'))
			: (collapse(a.textContent) || a.getAttribute('aria-label'));
		push(a, 'action', label, {
			disabled: a.disabled === true || a.getAttribute('aria-disabled') === 'true'
		});
	}

	const fieldLabel = el => {
		const aria = el.getAttribute('aria-label');
		if (aria) return aria;
		if (el.labels && el.labels.length) return el.labels[0].textContent;
		const wrap = el.closest('label');
		if (wrap) return wrap.textContent;
		return el.getAttribute('placeholder') || '';
	};
	const fieldError = el => {
		const ids = el.getAttribute('aria-describedby');
		if (ids) {
			for (const id of ids.split(/\s+/)) {
				const t = document.getElementById(id);
				if (t && collapse(t.textContent) &&
					style(t).display !== 'none' && style(t).visibility !== 'hidden' && area(t) > 0) {
					return t.textContent;
				}
			}
		}
		const sib = el.parentElement &&
			el.parentElement.querySelector(":scope > .error, :scope > .field-error, :scope > .invalid-feedback, :scope > [role='alert']");
		return sib ? sib.textContent : '';
	};
	for (const f of document.querySelectorAll('input, textarea, select')) {
		if (f.type === 'hidden' || f.type === 'submit' || f.type === 'button') continue;
		push(f, 'field', fieldLabel(f), {
			error: collapse(fieldError(f)),
			required: f.required === true || f.getAttribute('aria-required') === 'true',
			invalid: f.getAttribute('aria-invalid') === 'true',
			disabled: f.disabled === true || f.getAttribute('aria-disabled') === 'true'
		});
	}

	return JSON.stringify({
		title: document.title || '',
		viewport: { w: window.innerWidth, h: window.innerHeight, scrollY: Math.round(window.scrollY) },
		elements: els
	});
}`

func snapshot(ctx context.Context, p *rod.Page) (*page.Document, error) {
	res, err := p.Context(ctx).Eval(snapshotScript)
	if err != nil {
		return nil, fmt.Errorf("browser: snapshot eval: %w", err)
	}

	return decodeSnapshot([]byte(res.Value.Str()))
}

func decodeSnapshot(raw []byte) (*page.Document, error) {
	var doc page.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("browser: decode snapshot: %w", err)
	}
	doc.Rendered = true
	return &doc, nil
}
