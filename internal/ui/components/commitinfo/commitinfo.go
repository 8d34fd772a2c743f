// Package commitinfo formats single commits for the cluster detail panel.
package commitinfo

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yourusername/clusterlog/internal/cluster"
	"github.com/yourusername/clusterlog/internal/ui/styles"
)

// Line renders one commit as "hash author  when  subject", cut to width.
func Line(st *styles.Styles, c cluster.CommitRef, width int, bg lipgloss.Color, now time.Time) string {
	hashStyle := lipgloss.NewStyle().Foreground(st.Theme.Hash).Background(bg)
	authorStyle := lipgloss.NewStyle().Foreground(st.Theme.Author).Background(bg)
	timeStyle := lipgloss.NewStyle().Foreground(st.Theme.Subtext).Background(bg)
	subjectStyle := lipgloss.NewStyle().Foreground(st.Theme.Foreground).Background(bg)
	spacer := lipgloss.NewStyle().Background(bg).Render(" ")

	author := c.Author.Name
	if len(c.CoAuthors) > 0 {
		author = fmt.Sprintf("%s +%d", author, len(c.CoAuthors))
	}

	line := hashStyle.Render(c.ShortHash) + spacer +
		authorStyle.Render(author) + spacer +
		timeStyle.Render(FormatRelativeTime(c.Date, now)) + spacer +
		subjectStyle.Render(c.Subject)

	return ansi.Truncate(line, width, "…")
}

// FileLine renders one changed file of a commit, indented under it:
// "  +added -deleted path". The path keeps its tail when cut.
func FileLine(st *styles.Styles, f cluster.FileChange, width int, bg lipgloss.Color) string {
	addStyle := lipgloss.NewStyle().Foreground(st.Theme.Scope).Background(bg)
	delStyle := lipgloss.NewStyle().Foreground(st.Theme.Hash).Background(bg)
	pathStyle := lipgloss.NewStyle().Foreground(st.Theme.Subtext).Background(bg)
	pad := lipgloss.NewStyle().Background(bg)

	counts := pad.Render("  ") +
		addStyle.Render(fmt.Sprintf("+%d", f.Added)) + pad.Render(" ") +
		delStyle.Render(fmt.Sprintf("-%d", f.Deleted)) + pad.Render(" ")

	room := width - ansi.StringWidth(counts)
	if room < 1 {
		return ansi.Truncate(counts, width, "")
	}
	path := f.Path
	if w := ansi.StringWidth(path); w > room {
		path = "…" + ansi.TruncateLeft(path, w-room+1, "")
	}
	return counts + pathStyle.Render(path)
}

// Header renders the detail panel's first line: commit count, author count
// and every tag in the cluster.
func Header(st *styles.Styles, c cluster.Cluster, width int, bg lipgloss.Color) string {
	labelStyle := lipgloss.NewStyle().Foreground(st.Theme.Subtext).Background(bg).Bold(true)
	tagStyle := lipgloss.NewStyle().Foreground(st.Theme.Tag).Background(bg)

	authors := make(map[string]bool)
	for _, group := range c.Summary.AuthorNames {
		for _, name := range group {
			authors[name] = true
		}
	}

	text := labelStyle.Render(fmt.Sprintf("%s · %s",
		plural(len(c.Commits), "commit"), plural(len(authors), "author")))

	if len(c.Tags) > 0 {
		names := make([]string, len(c.Tags))
		for i, t := range c.Tags {
			names[i] = t.Name
		}
		text += labelStyle.Render(" · ") + tagStyle.Render("t:"+strings.Join(names, ", "))
	}
	return ansi.Truncate(text, width, "…")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// FormatRelativeTime describes t relative to now ("3 days ago").
func FormatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return ago(int(diff.Minutes()), "min")
	case diff < 24*time.Hour:
		return ago(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "yesterday"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		return ago(int(diff.Hours()/24/7), "week")
	case diff < 365*24*time.Hour:
		return ago(int(diff.Hours()/24/30), "month")
	default:
		return ago(int(diff.Hours()/24/365), "year")
	}
}

func ago(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
