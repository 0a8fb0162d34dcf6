package cli

import (
	"fmt"
	"io"
	"strings"

	gh "github.com/johnqtcg/ghdump/internal/github"
)

// ItemStatus indicates per-item run outcome.
type ItemStatus string

const (
	// StatusOK indicates a single item succeeded.
	StatusOK ItemStatus = "OK"
	// StatusFailed indicates a single item failed.
	StatusFailed ItemStatus = "FAILED"
)

// ItemResult stores one item's processing result. ID is the zero padded
// number, the branch or the sha.
type ItemResult struct {
	Kind       gh.ResourceKind
	ID         string
	Status     ItemStatus
	Reason     string
	OutputPath string
}

// RunSummary stores overall run stats and per-item outcomes.
type RunSummary struct {
	Total     int
	Succeeded int
	Failed    int
	Items     []ItemResult
}

// BuildSummary computes aggregate counters from item results.
func BuildSummary(items []ItemResult) RunSummary {
	out := RunSummary{
		Total: len(items),
		Items: append([]ItemResult(nil), items...),
	}

	for _, item := range items {
		if item.Status == StatusOK {
			out.Succeeded++
		} else {
			out.Failed++
		}
	}
	return out
}

// FormatSummary renders a human-readable summary with failure details.
func FormatSummary(summary RunSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "OK total=%d succeeded=%d failed=%d\n", summary.Total, summary.Succeeded, summary.Failed)
	for _, item := range summary.Items {
		if item.Status != StatusFailed {
			continue
		}
		fmt.Fprintf(&b, "FAILED kind=%s id=%s reason=%s\n", item.Kind, item.ID, item.Reason)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func writeStatusLine(w io.Writer, item ItemResult) {
	switch item.Status {
	case StatusOK:
		if _, err := fmt.Fprintf(w, "OK kind=%s id=%s output=%s\n", item.Kind, item.ID, item.OutputPath); err != nil {
			return
		}
	default:
		if _, err := fmt.Fprintf(w, "FAILED kind=%s id=%s reason=%s\n", item.Kind, item.ID, item.Reason); err != nil {
			return
		}
	}
}

func writeErrorLine(w io.Writer, err error) {
	if _, writeErr := fmt.Fprintf(w, "error: %v\n", err); writeErr != nil {
		return
	}
}

func writeUsage(w io.Writer, usage string) {
	if usage == "" {
		return
	}
	if _, err := fmt.Fprint(w, usage); err != nil {
		return
	}
}
