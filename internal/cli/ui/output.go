package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aki/mknote/internal/core/listing"
	"github.com/aki/mknote/internal/filemanager"
)

// Stdout and Stderr are where the print functions write. Tests swap them.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Print functions for consistent output

func Error(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "%s %s\n", ErrorIcon, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

func Success(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, "%s %s\n", SuccessIcon, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

func Info(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, "%s %s\n", InfoIcon, InfoStyle.Render(fmt.Sprintf(format, args...)))
}

func Warning(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, "%s %s\n", WarningIcon, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// Output prints without a trailing newline
func Output(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, format, args...)
}

// OutputLine prints one line
func OutputLine(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, format+"\n", args...)
}

// PrintKeyValue prints an aligned "key: value" line
func PrintKeyValue(key string, value interface{}) {
	fmt.Fprintf(Stdout, "  %-12s %v\n", DimStyle.Render(key+":"), value)
}

// EntryIcon returns the icon for an entry type
func EntryIcon(t filemanager.FileType) string {
	switch t {
	case filemanager.TypeDirectory:
		return FolderIcon
	case filemanager.TypeSymbolicLink:
		return LinkIcon
	default:
		return NoteIcon
	}
}

// EntryName renders an entry name, styling directories
func EntryName(e listing.Entry) string {
	if e.IsDir() {
		return DirStyle.Render(e.Name + "/")
	}
	return e.Name
}

// PrintEntryList displays a directory listing using a table
func PrintEntryList(title string, entries []listing.Entry) {
	if len(entries) == 0 {
		Info("%s is empty", title)
		return
	}

	tbl := NewTable("NAME", "SIZE", "MODIFIED")
	for _, e := range entries {
		size := "-"
		if !e.IsDir() {
			size = FormatSize(e.Stat.Size)
		}
		tbl.AddRow(EntryIcon(e.Type)+" "+EntryName(e), size, FormatTime(time.UnixMilli(e.Stat.MtimeMillis)))
	}

	PrintSectionHeader(FolderIcon, title, len(entries))
	tbl.Print()
}

// PrintTree displays nodes as an indented tree
func PrintTree(nodes []listing.Node) {
	printTree(nodes, "")
}

func printTree(nodes []listing.Node, prefix string) {
	for i, n := range nodes {
		branch, next := "├── ", "│   "
		if i == len(nodes)-1 {
			branch, next = "└── ", "    "
		}
		OutputLine("%s%s", DimStyle.Render(prefix+branch), EntryName(n.Entry))
		if len(n.Children) > 0 {
			printTree(n.Children, prefix+next)
		}
	}
}

// FormatSize formats a byte count into a human-readable string
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%dB", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatTime formats a time for display
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	default:
		return t.Format("2006-01-02 15:04")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
