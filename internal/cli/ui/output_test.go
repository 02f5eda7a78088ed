package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aki/mknote/internal/core/listing"
	"github.com/aki/mknote/internal/filemanager"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0B"},
		{1, "1B"},
		{1023, "1023B"},
		{1024, "1.0KB"},
		{1536, "1.5KB"},
		{1048576, "1.0MB"},
		{1073741824, "1.0GB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSize(tt.bytes))
		})
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "never", FormatTime(time.Time{}))
	assert.Equal(t, "just now", FormatTime(time.Now()))
	assert.Equal(t, "1 minute ago", FormatTime(time.Now().Add(-90*time.Second)))
	assert.Equal(t, "3 hours ago", FormatTime(time.Now().Add(-3*time.Hour-time.Minute)))
	old := time.Date(2020, 1, 2, 3, 4, 0, 0, time.Local)
	assert.Equal(t, "2020-01-02 03:04", FormatTime(old))
}

func TestPrintTree(t *testing.T) {
	out, _ := captureOutput(t)
	nodes := []listing.Node{
		{
			Entry: listing.Entry{Name: "journal", Type: filemanager.TypeDirectory},
			Children: []listing.Node{
				{Entry: listing.Entry{Name: "a.md", Type: filemanager.TypeFile}},
			},
		},
		{Entry: listing.Entry{Name: "todo.md", Type: filemanager.TypeFile}},
	}

	PrintTree(nodes)
	assert.Contains(t, out.String(), "journal/")
	assert.Contains(t, out.String(), "a.md")
	assert.Contains(t, out.String(), "todo.md")
}

func TestPrintEntryList(t *testing.T) {
	out, _ := captureOutput(t)

	PrintEntryList("notes", nil)
	assert.Contains(t, out.String(), "notes is empty")

	out.Reset()
	PrintEntryList("notes", []listing.Entry{
		{Name: "a.md", Type: filemanager.TypeFile, Stat: filemanager.Stat{Size: 2048, MtimeMillis: time.Now().UnixMilli()}},
	})
	assert.Contains(t, out.String(), "a.md")
	assert.Contains(t, out.String(), "2.0KB")
	assert.Contains(t, out.String(), "NAME")
}
