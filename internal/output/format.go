// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"taskdash/internal/service"
)

const (
	// SectionSeparator is the separator line around section headers.
	SectionSeparator = "------------"

	// detailIndent aligns detail lines under the task title.
	detailIndent = "      "

	// DueDateLayout is the display layout for due dates.
	DueDateLayout = "02 Jan 2006"

	// InvalidDate is shown for a due date that cannot be parsed.
	InvalidDate = "invalid date"
)

// dueDateLayouts are the accepted input layouts, most specific first.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDueDate renders an API due date in loc, e.g. "30 Dec 2025".
// Empty input returns "".
func FormatDueDate(s string, loc *time.Location) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc).Format(DueDateLayout)
		}
	}
	return InvalidDate
}

// PriorityLabel returns the display label for a priority.
func PriorityLabel(p service.Priority) string {
	switch p {
	case service.PriorityHigh:
		return "High"
	case service.PriorityMedium:
		return "Medium"
	case service.PriorityLow:
		return "Low"
	default:
		return string(p)
	}
}

// StatusLabel returns the display label for a status.
func StatusLabel(s service.Status) string {
	switch s {
	case service.StatusCompleted:
		return "Completed"
	case service.StatusInProgress:
		return "In progress"
	case service.StatusPending:
		return "Pending"
	default:
		return string(s)
	}
}

// FormatTask writes a task block:
//
//	  12  [ ] Title
//	      High priority, Pending, due 30 Dec 2025
//	      Description
//	      created by Ana, assigned to Bo
func FormatTask(w io.Writer, task service.Task, loc *time.Location) {
	mark := "[ ]"
	if task.Completed() {
		mark = "[x]"
	}
	fmt.Fprintf(w, "%4d  %s %s\n", task.ID, mark, normalizeTitle(task.Title))

	details := []string{
		PriorityLabel(task.Priority) + " priority",
		StatusLabel(task.Status),
	}
	if due := FormatDueDate(service.StringValue(task.DueDate), loc); due != "" {
		details = append(details, "due "+due)
	}
	fmt.Fprintln(w, detailIndent+strings.Join(details, ", "))

	if desc := normalizeText(service.StringValue(task.Description)); desc != "" {
		fmt.Fprintln(w, detailIndent+desc)
	}

	var people []string
	if task.Creator.Name != "" {
		people = append(people, "created by "+task.Creator.Name)
	}
	if task.Assignee != nil && task.Assignee.Name != "" {
		people = append(people, "assigned to "+task.Assignee.Name)
	}
	if len(people) > 0 {
		fmt.Fprintln(w, detailIndent+strings.Join(people, ", "))
	}
}

// FormatTasks writes every task in order.
func FormatTasks(w io.Writer, tasks []service.Task, loc *time.Location) {
	for _, t := range tasks {
		FormatTask(w, t, loc)
	}
}

// FormatSectionHeader formats a section header.
func FormatSectionHeader(w io.Writer, title string) {
	fmt.Fprintln(w, SectionSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, SectionSeparator)
}

// FormatStats writes the dashboard summary and breakdowns.
func FormatStats(w io.Writer, s service.Stats) {
	fmt.Fprintf(w, "%-15s %d\n", "Total tasks", s.Total)
	fmt.Fprintf(w, "%-15s %d\n", "Completed", s.Completed)
	fmt.Fprintf(w, "%-15s %d\n", "Pending", s.Open)
	fmt.Fprintf(w, "%-15s %d\n", "High priority", s.HighPriority)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "By status:")
	for _, st := range service.Statuses {
		fmt.Fprintf(w, "  %-13s %d\n", StatusLabel(st), s.ByStatus[st])
	}
	fmt.Fprintln(w, "By priority:")
	for _, p := range service.Priorities {
		fmt.Fprintf(w, "  %-13s %d\n", PriorityLabel(p), s.ByPriority[p])
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = normalizeText(title)
	if title == "" {
		return "(untitled)"
	}
	return title
}

// normalizeText flattens newlines and trims surrounding space.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
