package status

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 35 // Base width for filename
	nsWidth    = 30 // Width for namespace
)

// 🎯 FileOperation represents a published file for report output
type FileOperation struct {
	Path        string // Destination path, relative to the publish root
	Namespace   string // Namespace assigned to the file
	IsRewritten bool   // Whether a namespace declaration was rewritten
	IsSkipped   bool   // Whether the file was skipped by an ignore pattern
}

// 🎯 Formatter renders a per-entry publish report
type Formatter struct {
	console    io.Writer
	mu         sync.Mutex
	operations []FileOperation
}

// 🏭 NewFormatter creates a new formatter writing to console
func NewFormatter(console io.Writer) *Formatter {
	return &Formatter{
		console: console,
	}
}

// 📝 StartPublish prints the header for one publish entry
func (f *Formatter) StartPublish(source, destination, ns string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.operations = nil

	fmt.Fprintf(f.console, "[publishing %s]\n",
		color.New(color.FgCyan).Sprint(destination))

	fmt.Fprintf(f.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(source),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(ns))
}

// 📝 LogFileOperation prints one file line
func (f *Formatter) LogFileOperation(op FileOperation) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.operations = append(f.operations, op)
	fmt.Fprintln(f.console, f.formatFileOperation(op))
}

// 📝 EndPublish prints the summary line for the current entry
func (f *Formatter) EndPublish() {
	f.mu.Lock()
	defer f.mu.Unlock()

	fmt.Fprintf(f.console, "  %s\n",
		color.New(color.Faint).Sprintf("%d files published", f.publishedLocked()))
}

// 📊 PublishedCount reports how many logged files were published rather
// than skipped.
func (f *Formatter) PublishedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.publishedLocked()
}

// publishedLocked counts published operations; callers hold f.mu.
func (f *Formatter) publishedLocked() int {
	published := 0
	for _, op := range f.operations {
		if !op.IsSkipped {
			published++
		}
	}
	return published
}

// formatFileOperation formats one file line for display
func (f *Formatter) formatFileOperation(op FileOperation) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
	case op.IsRewritten:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", nsWidth, op.Namespace)))
}
