package converter

import (
	"fmt"
	"sort"

	gh "github.com/johnqtcg/ghdump/internal/github"
)

func commitParts(commit gh.CommitRecord) []string {
	return []string{
		fmt.Sprintf("# Commit: %s\n", commit.OID),
		commitAuthorLine(commit),
		commit.Message + "\n",
		"---\n",
	}
}

// historyParts lists commits latest first. The counter starts at the number
// of commits and counts down to 1.
func historyParts(history gh.CommitHistory) []string {
	commits := sortByCommittedDesc(history.Commits)

	parts := []string{
		fmt.Sprintf("# Commits on branch: %s\n", history.Branch),
		"---\n",
	}
	for i, commit := range commits {
		parts = append(parts,
			fmt.Sprintf("## Commit %03d: %s\n", len(commits)-i, commit.OID),
			commitAuthorLine(commit),
			commit.Message+"\n",
			"---\n",
		)
	}
	return parts
}

func commitAuthorLine(commit gh.CommitRecord) string {
	return fmt.Sprintf("**Author**: %s &emsp; **Committed at**: %s\n\n", commit.Author, formatTimestamp(commit.CommittedAt))
}

// sortByCommittedDesc returns a sorted copy; commits with equal timestamps keep
// their fetch order.
func sortByCommittedDesc(in []gh.CommitRecord) []gh.CommitRecord {
	out := make([]gh.CommitRecord, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CommittedAt.After(out[j].CommittedAt)
	})
	return out
}
