package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessageIsText(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want bool
	}{
		{"plain text", Message{Kind: KindText, Text: "oi amor"}, true},
		{"blank text", Message{Kind: KindText, Text: "   "}, false},
		{"image", Message{Kind: KindImage, Text: "image omitted"}, false},
		{"call", Message{Kind: KindCall, Text: "Voice call"}, false},
		{"system", Message{Kind: KindSystem, Text: "Messages are end-to-end encrypted"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.IsText())
		})
	}
}

func TestMessageWordCount(t *testing.T) {
	m := Message{Text: "te amo muito  meu amor"}
	assert.Equal(t, 5, m.WordCount())

	empty := Message{Text: ""}
	assert.Zero(t, empty.WordCount())
}

func TestGenerateHashStable(t *testing.T) {
	ts := time.Date(2025, 6, 1, 21, 30, 0, 0, time.UTC)
	a := Message{Timestamp: ts, Sender: "Ana", Text: "te amo"}
	b := Message{Timestamp: ts, Sender: "Ana", Text: "te amo"}
	c := Message{Timestamp: ts, Sender: "Bruno", Text: "te amo"}

	assert.Equal(t, a.GenerateHash(), b.GenerateHash())
	assert.NotEqual(t, a.GenerateHash(), c.GenerateHash())
	assert.Len(t, a.GenerateHash(), 64)
}
