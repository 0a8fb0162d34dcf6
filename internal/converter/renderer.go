package converter

import (
	"fmt"
	"strings"
	"time"

	gh "github.com/johnqtcg/ghdump/internal/github"
)

// timestampLayout renders timestamps as "YYYY-MM-DD HH:MM:SS <tz>".
const timestampLayout = "2006-01-02 15:04:05 MST"

// Document is one rendered markdown file. FileName has no directory part.
type Document struct {
	FileName string
	Content  []byte
}

// Renderer converts an aggregated record into a markdown document.
type Renderer interface {
	Render(rec gh.Record) (Document, error)
}

type renderer struct{}

// NewRenderer creates a markdown renderer instance.
func NewRenderer() Renderer {
	return &renderer{}
}

func (r *renderer) Render(rec gh.Record) (Document, error) {
	switch {
	case rec.Kind.IsThread():
		if rec.Thread == nil {
			return Document{}, fmt.Errorf("render %s: missing thread item", rec.Kind)
		}
		return Document{
			FileName: ThreadFileName(rec.Thread.Kind, rec.Thread.Number, rec.Thread.Title),
			Content:  joinParts(threadParts(*rec.Thread)),
		}, nil
	case rec.Kind == gh.KindCommit:
		if rec.Commit == nil {
			return Document{}, fmt.Errorf("render commit: missing commit record")
		}
		return Document{
			FileName: CommitFileName(rec.Commit.OID),
			Content:  joinParts(commitParts(*rec.Commit)),
		}, nil
	case rec.Kind == gh.KindCommitHistory:
		if rec.History == nil {
			return Document{}, fmt.Errorf("render commits: missing commit history")
		}
		return Document{
			FileName: HistoryFileName(rec.History.Branch),
			Content:  joinParts(historyParts(*rec.History)),
		}, nil
	default:
		return Document{}, fmt.Errorf("render markdown: unsupported resource type %q", rec.Kind)
	}
}

// joinParts separates every part with one newline. Parts carry their own
// trailing newlines, so headings and bodies end up separated by blank lines.
func joinParts(parts []string) []byte {
	return []byte(strings.Join(parts, "\n"))
}

func formatTimestamp(ts time.Time) string {
	return ts.UTC().Format(timestampLayout)
}
