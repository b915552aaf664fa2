package resume

import (
	"context"
	"fmt"
	"strings"
)

// Provider returns resume snippets relevant to a topic. A nil Provider means
// no resume was uploaded, which is a valid state distinct from "the provider
// found nothing"; both yield empty context.
type Provider interface {
	Lookup(ctx context.Context, topic string) ([]string, error)
}

// Context assembles the resume excerpts for every declared technology into a
// single prompt block. Lookup errors for individual topics are skipped: a
// technology that is absent from the resume simply contributes nothing.
func Context(ctx context.Context, provider Provider, techStack []string) string {
	if provider == nil {
		return ""
	}

	var b strings.Builder
	for _, tech := range techStack {
		snippets, err := provider.Lookup(ctx, tech)
		if err != nil || len(snippets) == 0 {
			continue
		}

		fmt.Fprintf(&b, "Context from resume related to %s:\n", tech)
		for _, snippet := range snippets {
			fmt.Fprintf(&b, "- %s\n", snippet)
		}
	}

	return b.String()
}
