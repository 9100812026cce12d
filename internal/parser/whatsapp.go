// Package parser reads WhatsApp chat export files into ordered message
// slices. The export format is line-oriented with multi-line continuations:
//
//	[6/1/25, 9:41:07 PM] Ana: te amo
//	[6/1/25, 9:42:10 PM] Bruno: também te amo
//	e muito
package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/navi-hq/navi/internal/common"
	"github.com/navi-hq/navi/internal/model"
)

// messageLine matches the head line of one exported message:
// [M/D/YY, H:MM:SS AM/PM] Sender: text
var messageLine = regexp.MustCompile(
	`^\[(\d{1,2}/\d{1,2}/\d{2}),\s*(\d{1,2}:\d{2}:\d{2}\s*[AP]M)\]\s*([^:]+):\s*(.*)$`)

// Attachment classification by file extension.
var mediaKinds = []struct {
	kind model.MessageKind
	re   *regexp.Regexp
}{
	{model.KindImage, regexp.MustCompile(`(?i)<attached:.*\.(?:jpg|jpeg|png|webp)>`)},
	{model.KindVideo, regexp.MustCompile(`(?i)<attached:.*\.(?:mp4|mov|avi|3gp)>`)},
	{model.KindAudio, regexp.MustCompile(`(?i)<attached:.*\.(?:opus|mp3|m4a|aac|ogg)>`)},
	{model.KindDocument, regexp.MustCompile(`(?i)<attached:.*\.(?:pdf|docx?|xlsx?|pptx?|txt|zip)>`)},
}

// Omitted-media markers, lowercase.
var omittedKinds = map[string]model.MessageKind{
	"image omitted":        model.KindImage,
	"video omitted":        model.KindVideo,
	"audio omitted":        model.KindAudio,
	"sticker omitted":      model.KindSticker,
	"document omitted":     model.KindDocument,
	"gif omitted":          model.KindGIF,
	"contact card omitted": model.KindContact,
}

var callMarker = regexp.MustCompile(
	`(?i)(?:chamada de (?:voz|vídeo)|videochamada|ligação de voz|voice call|video call)`)

var systemMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)messages and calls are end-to-end encrypted`),
	regexp.MustCompile(`(?i)as mensagens e as chamadas são protegidas`),
	regexp.MustCompile(`(?i)this message was deleted`),
	regexp.MustCompile(`(?i)you deleted this message`),
	regexp.MustCompile(`(?i)esta mensagem foi apagada`),
	regexp.MustCompile(`(?i)^location:`),
}

// Call duration formats: "1h 2min 30seg", "1:23:45", "5:30".
var (
	durationHours   = regexp.MustCompile(`(?i)(\d+)\s*h(?:ora)?s?\b`)
	durationMinutes = regexp.MustCompile(`(?i)(\d+)\s*min(?:uto)?s?\b`)
	durationSeconds = regexp.MustCompile(`(?i)(\d+)\s*s(?:eg(?:undo)?s?)?\b`)
	durationClock   = regexp.MustCompile(`(\d+):(\d{2})(?::(\d{2}))?`)
)

// ParseFile reads and parses a WhatsApp export at the given path.
func ParseFile(path string) ([]model.Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewUserError(
			fmt.Sprintf("cannot open chat export %q", path), err)
	}
	defer f.Close()

	messages, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return messages, nil
}

// Parse reads a WhatsApp export stream into time-ordered messages. Lines
// that match no message head continue the previous message's text. An
// export that yields no messages at all is an error: nothing downstream can
// score an empty stream.
func Parse(r io.Reader) ([]model.Message, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var messages []model.Message
	var current *model.Message

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.TrimSpace(current.Text)
		current.Hash = current.GenerateHash()
		messages = append(messages, *current)
		current = nil
	}

	for scanner.Scan() {
		line := strings.TrimPrefix(scanner.Text(), "‎")

		m := messageLine.FindStringSubmatch(line)
		if m == nil {
			if current != nil && strings.TrimSpace(line) != "" {
				current.Text += "\n" + line
			}
			continue
		}
		flush()

		ts, err := parseTimestamp(m[1], m[2])
		if err != nil {
			common.LogDebug("skipping line with bad timestamp", common.Fields{
				"date": m[1],
				"time": m[2],
			})
			continue
		}

		text := strings.TrimSpace(m[4])
		kind, callDuration := classify(text)
		current = &model.Message{
			Timestamp:    ts,
			Sender:       strings.TrimSpace(m[3]),
			Text:         text,
			Kind:         kind,
			CallDuration: callDuration,
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	if len(messages) == 0 {
		return nil, common.ErrInvalidExport
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}

// parseTimestamp tries M/D/YY first, then D/M/YY for exports from devices
// with day-first locales.
func parseTimestamp(date, clock string) (time.Time, error) {
	raw := date + " " + strings.Join(strings.Fields(clock), " ")
	ts, err := time.Parse("1/2/06 3:04:05 PM", raw)
	if err == nil {
		return ts, nil
	}
	return time.Parse("2/1/06 3:04:05 PM", raw)
}

// classify determines a message's kind from its text, extracting the call
// duration when the text records a call.
func classify(text string) (model.MessageKind, time.Duration) {
	if callMarker.MatchString(text) {
		return model.KindCall, callDuration(text)
	}
	for _, mk := range mediaKinds {
		if mk.re.MatchString(text) {
			return mk.kind, 0
		}
	}
	lower := strings.ToLower(text)
	for marker, kind := range omittedKinds {
		if strings.Contains(lower, marker) {
			return kind, 0
		}
	}
	for _, re := range systemMarkers {
		if re.MatchString(text) {
			return model.KindSystem, 0
		}
	}
	return model.KindText, 0
}

// callDuration extracts a call duration from text like "Chamada de voz. 5
// min" or "Videochamada. 1:02:45". Zero when no duration is present.
func callDuration(text string) time.Duration {
	if m := durationClock.FindStringSubmatch(text); m != nil {
		if m[3] != "" {
			return parseUnits(m[1], "h") + parseUnits(m[2], "m") + parseUnits(m[3], "s")
		}
		return parseUnits(m[1], "m") + parseUnits(m[2], "s")
	}

	var d time.Duration
	if m := durationHours.FindStringSubmatch(text); m != nil {
		d += parseUnits(m[1], "h")
	}
	if m := durationMinutes.FindStringSubmatch(text); m != nil {
		d += parseUnits(m[1], "m")
	}
	if m := durationSeconds.FindStringSubmatch(text); m != nil {
		d += parseUnits(m[1], "s")
	}
	return d
}

func parseUnits(value, unit string) time.Duration {
	if value == "" {
		return 0
	}
	var n int
	fmt.Sscanf(value, "%d", &n)
	switch unit {
	case "h":
		return time.Duration(n) * time.Hour
	case "m":
		return time.Duration(n) * time.Minute
	default:
		return time.Duration(n) * time.Second
	}
}

// Participants returns the distinct senders in first-seen order, skipping
// system records.
func Participants(messages []model.Message) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range messages {
		if m.Kind == model.KindSystem || seen[m.Sender] {
			continue
		}
		seen[m.Sender] = true
		out = append(out, m.Sender)
	}
	return out
}
