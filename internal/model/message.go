// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// MessageKind discriminates chat export records by content type.
type MessageKind string

// Message kind constants.
const (
	KindText     MessageKind = "text"
	KindImage    MessageKind = "image"
	KindVideo    MessageKind = "video"
	KindAudio    MessageKind = "audio"
	KindSticker  MessageKind = "sticker"
	KindDocument MessageKind = "document"
	KindGIF      MessageKind = "gif"
	KindContact  MessageKind = "contact"
	KindCall     MessageKind = "call"
	KindSystem   MessageKind = "system"
)

// Message is a single parsed chat message. Immutable once parsed.
type Message struct {
	Timestamp    time.Time
	Sender       string
	Text         string
	Kind         MessageKind
	Hash         string
	CallDuration time.Duration // Only set for call records
}

// IsText reports whether the message carries classifiable text content.
func (m *Message) IsText() bool {
	return m.Kind == KindText && strings.TrimSpace(m.Text) != ""
}

// WordCount returns the number of whitespace-separated words in the text.
func (m *Message) WordCount() int {
	return len(strings.Fields(m.Text))
}

// GenerateHash creates a stable hash for duplicate detection across imports.
func (m *Message) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s",
		m.Timestamp.Format(time.RFC3339),
		m.Sender,
		m.Text)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
