package converter

import (
	"time"

	gh "github.com/johnqtcg/ghdump/internal/github"
)

func utc(value string) time.Time {
	ts, err := time.Parse(time.DateTime, value)
	if err != nil {
		panic(err)
	}
	return ts.UTC()
}

func sampleIssueItem() gh.ThreadItem {
	return gh.ThreadItem{
		URL:       "https://github.com/octo/repo/issues/12",
		Kind:      gh.KindIssue,
		Number:    12,
		State:     "OPEN",
		Title:     "Panic on nil config",
		Body:      "App panics when config is nil.",
		Author:    "alice",
		CreatedAt: utc("2024-01-02 03:04:05"),
		Comments: []gh.Comment{
			{ID: "c1", Author: "bob", Body: "I can reproduce this.", CreatedAt: utc("2024-01-02 04:00:00")},
			{ID: "c2", Author: "carol", Body: "Fixed in #13?", CreatedAt: utc("2024-01-03 05:06:07")},
		},
	}
}

func sampleDiscussionItem() gh.ThreadItem {
	return gh.ThreadItem{
		URL:       "https://github.com/octo/repo/discussions/4",
		Kind:      gh.KindDiscussion,
		Number:    4,
		Title:     "Roadmap: v2 / ideas",
		Body:      "What should v2 include?",
		Author:    gh.MissingAuthor,
		CreatedAt: utc("2024-05-05 10:00:00"),
		Comments: []gh.Comment{
			{
				ID:        "dc1",
				Author:    "carol",
				Body:      "Plugin support.",
				CreatedAt: utc("2024-05-05 11:00:00"),
				Replies: []gh.Reply{
					{ID: "r1", Author: "dave", Body: "+1", CreatedAt: utc("2024-05-05 12:00:00")},
					{ID: "r2", Author: gh.MissingAuthor, Body: "Agreed, with a stable API.", CreatedAt: utc("2024-05-06 08:30:00")},
				},
			},
			{ID: "dc2", Author: "erin", Body: "Better docs.", CreatedAt: utc("2024-05-07 09:00:00")},
		},
	}
}

func sampleCommit() gh.CommitRecord {
	return gh.CommitRecord{
		OID:         "abc123def",
		Message:     "Fix parser\n\nHandle empty input.",
		CommittedAt: utc("2024-04-04 04:04:04"),
		Author:      "Dana",
		URL:         "https://github.com/octo/repo/commit/abc123def",
	}
}

// sampleHistory is in fetch order; rendering sorts it latest first.
func sampleHistory() gh.CommitHistory {
	return gh.CommitHistory{
		Branch: "main",
		Commits: []gh.CommitRecord{
			{OID: "aaa111", Message: "Initial commit", Author: "Al", CommittedAt: utc("2024-01-01 00:00:00")},
			{OID: "bbb222", Message: "Add feature", Author: "Bo", CommittedAt: utc("2024-03-01 00:00:00")},
			{OID: "ccc333", Message: "Refactor", Author: "Cy", CommittedAt: utc("2024-02-01 00:00:00")},
		},
	}
}

func threadRecord(item gh.ThreadItem) gh.Record {
	return gh.Record{Kind: item.Kind, Thread: &item}
}
