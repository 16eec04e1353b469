package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/blackcoderx/surge/internal/listeners"
)

// RenderSummary turns an AggregateListener's per-sampler statistics into a
// glamour-rendered markdown report, the same renderer cmd/falcon's CLI mode
// uses for saved-output display.
func RenderSummary(stats map[string]listeners.SamplerStats) string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("# Test Run Summary\n\n")
	sb.WriteString("| Sampler | Total | Success % | Avg | P95 | P99 | RPS |\n")
	sb.WriteString("|---|---|---|---|---|---|---|\n")
	for _, name := range names {
		s := stats[name]
		sb.WriteString(fmt.Sprintf("| %s | %d | %.1f%% | %s | %s | %s | %.1f |\n",
			name, s.Total, s.SuccessRate, s.AvgLatency, s.P95, s.P99, s.RPS))
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return sb.String()
	}
	out, err := renderer.Render(sb.String())
	if err != nil {
		return sb.String()
	}
	return out
}
