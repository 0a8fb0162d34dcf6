package converter

import (
	"fmt"

	gh "github.com/johnqtcg/ghdump/internal/github"
)

func threadParts(item gh.ThreadItem) []string {
	parts := []string{
		fmt.Sprintf("# [%s](%s)\n", item.Title, item.URL),
		fmt.Sprintf("**@%s** &emsp; **Created at**: %s  &emsp; %s\n\n", item.Author, formatTimestamp(item.CreatedAt), item.State),
		item.Body + "\n",
		"---\n",
	}

	withReplies := item.Kind == gh.KindDiscussion
	for i, comment := range item.Comments {
		parts = append(parts,
			fmt.Sprintf("## **Comment %d**, **@%s** &emsp; **at**: %s\n\n", i+1, comment.Author, formatTimestamp(comment.CreatedAt)),
			comment.Body+"\n",
		)
		if withReplies {
			for j, reply := range comment.Replies {
				parts = append(parts,
					fmt.Sprintf("### **Reply %d**, **@%s** &emsp; **at**: %s\n\n", j+1, reply.Author, formatTimestamp(reply.CreatedAt)),
					reply.Body+"\n",
				)
			}
		}
		parts = append(parts, "---\n")
	}
	return parts
}
