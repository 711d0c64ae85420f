package cmd

import (
	"fmt"
	"strings"
	"time"

	"echoes/internal/threads"
	"echoes/pkg/whisper"
)

func printEcho(echo *whisper.Echo) {
	if echo.MoodEmoji != nil && echo.MoodName != nil {
		fmt.Printf("%s %s\n", *echo.MoodEmoji, *echo.MoodName)
	}
	fmt.Println(echo.Content)
	fmt.Printf("%s · %s · %d replies\n", formatTimeAgo(echo.CreatedAt), formatReactions(&echo.ReactionCounts, &echo.UserReactions), echo.ReplyCount)
}

func printThread(nodes []*threads.Node) {
	for _, node := range nodes {
		indent := strings.Repeat(" ", threads.Indent(node.Reply.ThreadDepth))
		fmt.Printf("%s%s · %s\n", indent, node.Reply.AnonymousName, formatTimeAgo(node.Reply.CreatedAt))
		fmt.Printf("%s%s\n", indent, node.Reply.Content)
		if node.Reply.Total > 0 {
			fmt.Printf("%s%s\n", indent, formatReactions(&node.Reply.ReactionCounts, &node.Reply.UserReactions))
		}
		printThread(node.Children)
	}
}

// formatReactions renders the non-zero counters in display order, marking the
// kinds the caller has active.
func formatReactions(counts *whisper.ReactionCounts, user *whisper.UserReactions) string {
	parts := make([]string, 0, len(whisper.KindConfigs))
	for _, kc := range whisper.KindConfigs {
		n := counts.Count(kc.Kind)
		if n == 0 {
			continue
		}
		mark := ""
		if user.Active(kc.Kind) {
			mark = "*"
		}
		parts = append(parts, fmt.Sprintf("%s %d%s", kc.Emoji, n, mark))
	}
	if len(parts) == 0 {
		return "no reactions yet"
	}
	return strings.Join(parts, "  ")
}

func formatTimeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
