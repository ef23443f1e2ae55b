package status

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about publish progress
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎨 FileEventType represents what happened to a single published file
type FileEventType int

const (
	FilePublished FileEventType = iota
	FileRewritten
	FileSkipped
)

// 🖼️ FileEvent represents one per-file outcome during a publish
type FileEvent struct {
	Type      FileEventType
	Path      string
	Namespace string
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogFileEvent logs a file event with appropriate emoji and formatting
func (u *UserLogger) LogFileEvent(event FileEvent) {
	// Base name for cleaner output
	relPath := filepath.Base(event.Path)

	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch event.Type {
	case FilePublished:
		prefix = "✨"
		action = "Published"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case FileRewritten:
		prefix = "✏️"
		action = "Rewritten"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	case FileSkipped:
		prefix = "⏭️"
		action = "Skipped"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s %s", action, relPath)
	if event.Namespace != "" {
		msg += fmt.Sprintf(" (namespace %s)", event.Namespace)
	}

	printer.Println(msg)
	u.log.Info().Msg(msg) // Also log to zerolog for debugging
}

// 📊 LogPublishStart announces one publish entry
func (u *UserLogger) LogPublishStart(source, destination, ns string) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"})
	printer.Printf("Publishing %s -> %s as %s\n", source, destination, ns)
	u.log.Info().
		Str("source", source).
		Str("destination", destination).
		Str("namespace", ns).
		Msg("publishing tree")
}

// ✅ LogPublishDone reports the outcome of one publish entry
func (u *UserLogger) LogPublishDone(destination string, files int, err error) {
	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Printf("Publish of %s failed\n", destination)
		pterm.Error.Println(err)
		u.log.Error().Err(err).Str("destination", destination).Msg("publish failed")
		return
	}
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Printf("Published %d files to %s\n", files, destination)
	u.log.Info().Int("files", files).Str("destination", destination).Msg("publish complete")
}
