package diag

import (
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// StderrReporter writes "[LEVEL] message" lines to os.Stderr. It is the
// default reporter installed when no other is configured.
type StderrReporter struct{}

func (StderrReporter) Report(level Level, message string) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", level, message)
}

// FileReporter writes "[LEVEL] message" lines to a size-rotated log file,
// backed by lumberjack so long-running batch conversions don't grow an
// unbounded log on disk.
type FileReporter struct {
	mu  sync.Mutex
	out io.WriteCloser
}

// FileReporterOptions configures the rotation policy for NewFileReporter.
// Zero values fall back to lumberjack's own defaults (100MB max size, no
// age/backup limit, no compression).
type FileReporterOptions struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewFileReporter opens (or creates) path for rotating, leveled logging.
func NewFileReporter(path string, opts FileReporterOptions) *FileReporter {
	return &FileReporter{
		out: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		},
	}
}

func (f *FileReporter) Report(level Level, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fmt.Fprintf(f.out, "[%s] %s\n", level, message)
}

// Close releases the underlying log file.
func (f *FileReporter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.Close()
}

// BufferingReporter accumulates messages in a bounded ring buffer. It's
// useful for tests that want to assert on emitted diagnostics, or for
// batch jobs that want to flush accumulated warnings at the end of a run
// rather than interleaving them with other output.
type BufferingReporter struct {
	mu       sync.Mutex
	max      int
	messages []Message
}

// NewBufferingReporter creates a BufferingReporter. max caps the number of
// retained messages (oldest dropped first); max <= 0 means unbounded.
func NewBufferingReporter(max int) *BufferingReporter {
	return &BufferingReporter{max: max}
}

func (b *BufferingReporter) Report(level Level, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.max > 0 && len(b.messages) >= b.max {
		b.messages = b.messages[1:]
	}
	b.messages = append(b.messages, Message{Level: level, Text: message})
}

// TakeMessages returns and clears the buffered messages.
func (b *BufferingReporter) TakeMessages() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.messages
	b.messages = nil
	return out
}

// FlushTo reports every buffered message to target and clears the buffer.
func (b *BufferingReporter) FlushTo(target Reporter) {
	for _, m := range b.TakeMessages() {
		target.Report(m.Level, m.Text)
	}
}

// ForEach visits buffered messages without clearing the buffer.
func (b *BufferingReporter) ForEach(fn func(Level, string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, m := range b.messages {
		fn(m.Level, m.Text)
	}
}
