// Package notify drafts the operator-reviewable pond status message. The
// draft is never auto-sent; broadcast is a separate, explicit step.
package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"finguard/internal/llm"
	"finguard/internal/pond"
)

// SignOff is the fixed token every drafted message carries.
const SignOff = "FinGuard AI"

// Draft is a staged message awaiting operator edit and approval.
type Draft struct {
	Text string `json:"text"`
	// Fallback is true when the deterministic template was used because
	// the generative path failed.
	Fallback bool `json:"fallback"`
}

// Drafter composes status messages from pond state.
type Drafter struct {
	gen llm.TextGenerator
}

func NewDrafter(gen llm.TextGenerator) *Drafter {
	return &Drafter{gen: gen}
}

// Draft produces a short status message for the pond in the target
// language. Any generative failure degrades to FallbackText, which is
// textually stable and locale-independent.
func (d *Drafter) Draft(ctx context.Context, p pond.Pond, lang string) Draft {
	if strings.TrimSpace(lang) == "" {
		lang = "en"
	}
	if d.gen != nil {
		prompt := fmt.Sprintf(
			"Draft a professional, ultra-short SMS report for a farmer in %s. Pond: %s. Score: %d/100. End with '%s'.",
			lang, p.Name, p.HealthScore, SignOff,
		)
		text, err := d.gen.GenerateText(ctx, llm.TextRequest{Prompt: prompt})
		if err == nil && strings.TrimSpace(text) != "" {
			return Draft{Text: strings.TrimSpace(text)}
		}
		if err != nil {
			log.Printf("notify: draft generation failed, using template: %v", err)
		}
	}
	return Draft{Text: FallbackText(p.Name, p.HealthScore), Fallback: true}
}

// FallbackText is the deterministic template used when the generative
// adapter is unavailable. Callers depend on this exact shape.
func FallbackText(pondName string, score int) string {
	return fmt.Sprintf("%s: %s health score %d/100.", SignOff, pondName, score)
}
