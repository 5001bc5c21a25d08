package models

import "time"

// MessageTimeLayout is the minute-resolution timestamp format of the message log.
const MessageTimeLayout = "2006-01-02 15:04"

// MessageEntry is one outbound message recorded in the shared message log.
// Entries are append-only; they are never edited or deleted.
type MessageEntry struct {
	Phone    string
	Message  string
	LoggedAt time.Time
}
