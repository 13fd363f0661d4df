package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/credlens/credlens/pkg/audience"
	"github.com/credlens/credlens/pkg/explain"
	"github.com/credlens/credlens/pkg/hops"
	"github.com/credlens/credlens/pkg/scoring"
)

// TerminalRenderer renders a unified score result as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func gradeColor(grade string) string {
	if noColor() {
		return ""
	}
	switch grade {
	case "S", "A":
		return colorGreen
	case "B", "C":
		return colorYellow
	case "D":
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, result *scoring.TwitterScoreResult) error {
	gc := gradeColor(result.Grade)

	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("Credlens: %s — Score %d, Grade %s (confidence %s)",
			result.AccountID, result.TwitterScore1000,
			colored(result.Grade, gc), result.Confidence)))

	c := result.Components
	fmt.Fprintln(w, "Components:")
	fmt.Fprintf(w, "  influence      %.2f\n", c.Influence)
	fmt.Fprintf(w, "  quality        %.2f\n", c.Quality)
	fmt.Fprintf(w, "  trend          %.2f\n", c.Trend)
	fmt.Fprintf(w, "  network_proxy  %.2f\n", c.NetworkProxy)
	fmt.Fprintf(w, "  consistency    %.2f\n", c.Consistency)
	if c.RiskPenalty > 0 {
		fmt.Fprintf(w, "  %s\n", colored(fmt.Sprintf("risk_penalty   -%.2f", c.RiskPenalty), colorRed))
	}
	fmt.Fprintln(w)

	renderExplanation(w, result.Explain)

	if len(result.Meta.DefaultedFields) > 0 {
		fmt.Fprintf(w, "%s\n\n", dim("Defaulted: "+strings.Join(result.Meta.DefaultedFields, ", ")))
	}

	return nil
}

// RenderAudience writes an audience quality result as terminal output.
func RenderAudience(w io.Writer, result *audience.Result) error {
	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("Credlens audience quality: %s — %.3f (confidence %s)",
			result.AccountID, result.Score, result.Confidence)))

	ev := result.Evidence
	fmt.Fprintln(w, "Evidence:")
	fmt.Fprintf(w, "  overlap_pressure  %.2f\n", ev.OverlapPressure)
	fmt.Fprintf(w, "  bot_risk          %.2f\n", ev.BotRisk)
	fmt.Fprintf(w, "  purity            %.2f\n", ev.Purity)
	fmt.Fprintf(w, "  signal_quality    %.2f\n", ev.SignalQuality)
	fmt.Fprintf(w, "  %s\n", dim("inputs used: "+strings.Join(ev.InputsUsed, ", ")))
	fmt.Fprintln(w)

	renderExplanation(w, result.Explain)
	return nil
}

// RenderHops writes a hops result as terminal output.
func RenderHops(w io.Writer, result *hops.Result) error {
	s := result.Summary
	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("Credlens hops: %s — proximity %.3f (confidence %s)",
			result.SourceID, s.AuthorityProximity, s.Confidence)))

	fmt.Fprintf(w, "Reached %d top account(s) within %d hops", s.ReachableTopNodes, s.MaxHops)
	if s.ReachableTopNodes > 0 {
		fmt.Fprintf(w, ", closest at %d hop(s), avg %.1f", s.MinHopsToAnyTop, s.AvgHopsToReachedTop)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	if len(s.ClosestTopTargets) > 0 {
		fmt.Fprintln(w, "Closest paths:")
		for _, p := range s.ClosestTopTargets {
			fmt.Fprintf(w, "  %s %s (%d hops, strength %.2f)\n",
				bold(p.TargetID), dim(strings.Join(p.Path, " -> ")), p.Hops, p.PathStrength)
		}
		fmt.Fprintln(w)
	}

	renderExplanation(w, result.Explain)
	return nil
}

func renderExplanation(w io.Writer, e explain.Explanation) {
	fmt.Fprintf(w, "%s\n\n", e.Summary)

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintln(w, title+":")
		for _, item := range items {
			for i, line := range wrapText(item, 70) {
				if i == 0 {
					fmt.Fprintf(w, "  • %s\n", line)
				} else {
					fmt.Fprintf(w, "    %s\n", dim(line))
				}
			}
		}
		fmt.Fprintln(w)
	}

	section("Drivers", e.Drivers)
	section("Concerns", e.Concerns)
	section("Recommendations", e.Recommendations)
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
