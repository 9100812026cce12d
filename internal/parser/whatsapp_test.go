package parser

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navi-hq/navi/internal/common"
	"github.com/navi-hq/navi/internal/model"
)

const sampleExport = `[6/1/25, 9:41:07 PM] Ana: te amo
[6/1/25, 9:42:10 PM] Bruno: também te amo
e muito
[6/1/25, 9:43:00 PM] Ana: image omitted
[6/1/25, 9:44:30 PM] Bruno: <attached: 00000042-PHOTO-2025-06-01-21-44-30.jpg>
[6/1/25, 9:45:00 PM] Ana: Chamada de voz. 5 min
[6/1/25, 9:50:00 PM] Bruno: Videochamada. 1:02:45
[6/1/25, 9:51:00 PM] Ana: This message was deleted.
[6/1/25, 9:52:00 PM] Bruno: sticker omitted
`

func TestParseSampleExport(t *testing.T) {
	messages, err := Parse(strings.NewReader(sampleExport))
	require.NoError(t, err)
	require.Len(t, messages, 8)

	first := messages[0]
	assert.Equal(t, "Ana", first.Sender)
	assert.Equal(t, "te amo", first.Text)
	assert.Equal(t, model.KindText, first.Kind)
	assert.Equal(t, time.Date(2025, 6, 1, 21, 41, 7, 0, time.UTC), first.Timestamp)
	assert.NotEmpty(t, first.Hash)

	multiline := messages[1]
	assert.Equal(t, "também te amo\ne muito", multiline.Text)
	assert.Equal(t, model.KindText, multiline.Kind)

	assert.Equal(t, model.KindImage, messages[2].Kind)
	assert.Equal(t, model.KindImage, messages[3].Kind)

	voice := messages[4]
	assert.Equal(t, model.KindCall, voice.Kind)
	assert.Equal(t, 5*time.Minute, voice.CallDuration)

	video := messages[5]
	assert.Equal(t, model.KindCall, video.Kind)
	assert.Equal(t, time.Hour+2*time.Minute+45*time.Second, video.CallDuration)

	assert.Equal(t, model.KindSystem, messages[6].Kind)
	assert.Equal(t, model.KindSticker, messages[7].Kind)
}

func TestParseSortsOutOfOrderMessages(t *testing.T) {
	export := `[6/2/25, 8:00:00 AM] Bruno: bom dia
[6/1/25, 9:00:00 PM] Ana: boa noite
`
	messages, err := Parse(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "Ana", messages[0].Sender)
	assert.Equal(t, "Bruno", messages[1].Sender)
}

func TestParseEmptyExportFails(t *testing.T) {
	_, err := Parse(strings.NewReader("nothing resembling an export here\n"))
	assert.ErrorIs(t, err, common.ErrInvalidExport)
}

func TestParseFileMissingPath(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "no-such-export.txt"))
	require.Error(t, err)

	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.UserMessage, "no-such-export.txt")
}

func TestParseSkipsBadTimestampLines(t *testing.T) {
	export := `[13/45/25, 9:00:00 PM] Ana: linha inválida
[6/1/25, 9:00:00 PM] Bruno: linha válida
`
	messages, err := Parse(strings.NewReader(export))
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Bruno", messages[0].Sender)
}

func TestParseDayFirstFallback(t *testing.T) {
	// 23/6 only parses day-first.
	export := `[23/6/25, 9:00:00 AM] Ana: oi
`
	messages, err := Parse(strings.NewReader(export))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 23, 9, 0, 0, 0, time.UTC), messages[0].Timestamp)
}

func TestCallDurationFormats(t *testing.T) {
	tests := []struct {
		text string
		want time.Duration
	}{
		{"Chamada de voz. 5 min", 5 * time.Minute},
		{"Chamada de voz. 2 min 30 seg", 2*time.Minute + 30*time.Second},
		{"Videochamada. 1:02:45", time.Hour + 2*time.Minute + 45*time.Second},
		{"Chamada de voz. 5:30", 5*time.Minute + 30*time.Second},
		{"Chamada de voz. 1 hora 10 minutos", time.Hour + 10*time.Minute},
		{"Chamada de voz perdida", 0},
	}
	for _, tt := range tests {
		kind, d := classify(tt.text)
		assert.Equal(t, model.KindCall, kind, tt.text)
		assert.Equal(t, tt.want, d, tt.text)
	}
}

func TestParticipants(t *testing.T) {
	messages, err := Parse(strings.NewReader(sampleExport))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana", "Bruno"}, Participants(messages))
}
