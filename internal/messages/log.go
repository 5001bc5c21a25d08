// Package messages keeps the shop's shared log of outbound customer messages.
package messages

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"

	"github.com/kisankhidmat/khidmat/internal/models"
)

// Header is the canonical column set of the message log file.
var Header = []string{"Phone", "Message", "Date"}

// EventPublisher receives every entry after it has been persisted.
type EventPublisher interface {
	PublishMessageLogged(ctx context.Context, entry models.MessageEntry) error
}

// NopPublisher discards events.
type NopPublisher struct{}

func (NopPublisher) PublishMessageLogged(context.Context, models.MessageEntry) error { return nil }

// Log is an append-only message log stored as a single CSV file.
// Each append rewrites the whole file atomically; concurrent appends may lose an entry.
type Log struct {
	path      string
	publisher EventPublisher
	now       func() time.Time
}

// Option configures a Log.
type Option func(*Log)

// WithPublisher sets the publisher notified after each append.
func WithPublisher(p EventPublisher) Option {
	return func(l *Log) { l.publisher = p }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// New creates a Log backed by the file at path.
func New(path string, opts ...Option) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create message log directory: %w", err)
	}
	l := &Log{path: path, publisher: NopPublisher{}, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Append records message for phone, stamped with the current minute, after all
// existing entries.
func (l *Log) Append(ctx context.Context, phone, message string) (models.MessageEntry, error) {
	entry := models.MessageEntry{
		Phone:    phone,
		Message:  message,
		LoggedAt: l.now().Truncate(time.Minute),
	}

	entries, err := l.All()
	if err != nil {
		return models.MessageEntry{}, err
	}
	entries = append(entries, entry)

	data, err := encode(entries)
	if err != nil {
		return models.MessageEntry{}, fmt.Errorf("failed to encode message log: %w", err)
	}
	if err := renameio.WriteFile(l.path, data, 0644); err != nil {
		return models.MessageEntry{}, fmt.Errorf("failed to write message log: %w", err)
	}

	if err := l.publisher.PublishMessageLogged(ctx, entry); err != nil {
		slog.Warn("Failed to publish message event", "phone", phone, "error", err)
	}
	return entry, nil
}

// All returns every entry in persisted order. A missing log is empty.
func (l *Log) All() ([]models.MessageEntry, error) {
	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return []models.MessageEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open message log: %w", err)
	}
	defer f.Close()

	entries, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read message log: %w", err)
	}
	return entries, nil
}

func encode(entries []models.MessageEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := w.Write([]string{e.Phone, e.Message, e.LoggedAt.Format(models.MessageTimeLayout)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func decode(r io.Reader) ([]models.MessageEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	entries := []models.MessageEntry{}
	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		return nil, err
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		at, err := time.ParseInLocation(models.MessageTimeLayout, rec[2], time.Local)
		if err != nil {
			return nil, fmt.Errorf("date %q: %w", rec[2], err)
		}
		entries = append(entries, models.MessageEntry{Phone: rec[0], Message: rec[1], LoggedAt: at})
	}
}
