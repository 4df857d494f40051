package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatstat/internal/stats"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestNewPNG_DPIRange(t *testing.T) {
	_, err := NewPNG(t.TempDir(), 72)
	require.ErrorIs(t, err, ErrInvalidDPI)

	_, err = NewPNG(t.TempDir(), 401)
	require.ErrorIs(t, err, ErrInvalidDPI)

	p, err := NewPNG(t.TempDir(), MinDPI)
	require.NoError(t, err)
	require.Equal(t, MinDPI, p.DPI)
}

func TestPNG_Render(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	p, err := NewPNG(dir, MinDPI)
	require.NoError(t, err)

	senders := Senders([]stats.SenderStats{{Sender: "alice", Messages: 2, Words: 5}, {Sender: "bob", Messages: 1, Words: 1}})
	activity := Activity([]stats.Bucket{{Key: "09", Count: 3}, {Key: "10", Count: 1}}, stats.Hour)

	require.NoError(t, p.Render(senders, activity))

	for _, name := range []string{SendersFile, ActivityFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		require.True(t, bytes.HasPrefix(data, pngMagic), name)
	}
}

func TestPNG_RenderEmpty(t *testing.T) {
	p, err := NewPNG(t.TempDir(), DefaultDPI)
	require.NoError(t, err)

	err = p.Render(Activity(nil, stats.Day))
	require.ErrorIs(t, err, ErrEmptyChart)
}
