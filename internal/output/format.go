// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"nenkin/internal/checklist"
)

const (
	// ListSeparator is the separator line for section headers.
	ListSeparator = "------------"

	// BarWidth is the number of cells in a progress bar.
	BarWidth = 20

	// answerIndent aligns answer lines under the item title.
	answerIndent = "          "
)

// ProgressBar renders "[###-----]  37%" for done out of total.
func ProgressBar(done, total, width int) string {
	filled, pct := 0, 0
	if total > 0 {
		filled = done * width / total
		pct = done * 100 / total
	}
	return fmt.Sprintf("[%s%s] %3d%%",
		strings.Repeat("#", filled), strings.Repeat("-", width-filled), pct)
}

// FormatHeader writes the checklist heading and overall progress.
func FormatHeader(w io.Writer, done, total int) {
	fmt.Fprintln(w, checklist.Title)
	fmt.Fprintln(w, checklist.Subtitle)
	fmt.Fprintln(w, checklist.Deadline)
	fmt.Fprintf(w, "%d/%d %s\n", done, total, ProgressBar(done, total, BarWidth))
}

// FormatSectionHeader formats a section header.
func FormatSectionHeader(w io.Writer, section string) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, normalizeSection(section))
	fmt.Fprintln(w, ListSeparator)
}

// FormatItem formats an item line followed by its answer, if any.
// Format: "{N:>4}  [x] {TITLE}\n", answer lines indented under the title.
func FormatItem(w io.Writer, num int, it checklist.Item) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Checkbox(it.Checked), normalizeTitle(it.Title))
	for _, line := range answerLines(it.Answer) {
		fmt.Fprintln(w, answerIndent+line)
	}
}

// FormatChecklist writes the header and every section with numbered items.
// Numbers are display positions and do not change when pendingOnly hides
// checked items.
func FormatChecklist(w io.Writer, items []checklist.Item, pendingOnly bool) {
	done, total := checklist.Progress(items)
	FormatHeader(w, done, total)
	if len(items) == 0 {
		fmt.Fprintln(w, "(no items)")
		return
	}

	num := 0
	for _, g := range checklist.GroupBySection(items) {
		var lines []checklist.Item
		var nums []int
		for _, it := range g.Items {
			num++
			if pendingOnly && it.Checked {
				continue
			}
			lines = append(lines, it)
			nums = append(nums, num)
		}
		if len(lines) == 0 {
			continue
		}
		FormatSectionHeader(w, g.Section)
		for i, it := range lines {
			FormatItem(w, nums[i], it)
		}
	}
}

// FormatDetail formats a single item with every field.
func FormatDetail(w io.Writer, num int, it checklist.Item) {
	fmt.Fprintf(w, "#%d %s\n", num, it.ID)
	fmt.Fprintf(w, "section:  %s\n", normalizeSection(it.Section))
	fmt.Fprintf(w, "title:    %s\n", normalizeTitle(it.Title))
	fmt.Fprintf(w, "question: %s\n", it.Question)
	fmt.Fprintf(w, "checked:  %s\n", yesNo(it.Checked))
	lines := answerLines(it.Answer)
	if len(lines) == 0 {
		fmt.Fprintln(w, "answer:   (none)")
		return
	}
	fmt.Fprintln(w, "answer:")
	for _, line := range lines {
		fmt.Fprintln(w, "  "+line)
	}
}

// FormatStatus formats per-section and overall progress.
func FormatStatus(w io.Writer, items []checklist.Item) {
	for _, g := range checklist.GroupBySection(items) {
		done, total := checklist.Progress(g.Items)
		fmt.Fprintf(w, "%3d/%-3d %s\n", done, total, normalizeSection(g.Section))
	}
	done, total := checklist.Progress(items)
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintf(w, "%3d/%-3d %s\n", done, total, ProgressBar(done, total, BarWidth))
}

// Checkbox returns "[x]" or "[ ]".
func Checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// answerLines splits an answer into display lines.
// Whitespace-only answers produce no lines.
func answerLines(answer string) []string {
	answer = strings.ReplaceAll(answer, "\r\n", "\n")
	if strings.TrimSpace(answer) == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(answer, "\n"), "\n")
}

// normalizeTitle normalizes an item title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeSection normalizes a section name for display.
// Empty or whitespace-only names become "(no section)".
func normalizeSection(section string) string {
	if strings.TrimSpace(section) == "" {
		return "(no section)"
	}
	return section
}
