package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatstat/internal/chart"
	"github.com/Zuo-Peng/chatstat/internal/index"
	"github.com/Zuo-Peng/chatstat/internal/stats"
)

const sample = "[01.01.20, 10:00:00] alice: hello world\n" +
	"[01.01.20, 10:05:00] bob: hi\n" +
	"[02.01.20, 23:15:00] alice: good night\n"

func setup(t *testing.T) (home, chatFile string) {
	t.Helper()
	home = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CHATSTAT_CONFIG", "")
	chatFile = filepath.Join(home, "chats", "family.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(chatFile), 0o755))
	require.NoError(t, os.WriteFile(chatFile, []byte(sample), 0o644))
	return home, chatFile
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestReport_SavesCharts(t *testing.T) {
	home, chatFile := setup(t)
	out := filepath.Join(home, "charts")

	err := run(t, "report", "--file", chatFile, "--senders", "Alice,Bob", "--mode", "save", "--out", out, "--dpi", "300", "--log-level", "error")
	require.NoError(t, err)

	require.FileExists(t, filepath.Join(out, chart.SendersFile))
	require.FileExists(t, filepath.Join(out, chart.ActivityFile))
}

func TestActivity_InvalidGranularity(t *testing.T) {
	_, chatFile := setup(t)

	// pflag reports Set errors with %v, so match on the message
	err := run(t, "activity", "--file", chatFile, "--senders", "alice", "--granularity", "week")
	require.ErrorContains(t, err, stats.ErrInvalidGranularity.Error())
}

func TestSenders_InvalidMode(t *testing.T) {
	_, chatFile := setup(t)

	err := run(t, "senders", "--file", chatFile, "--senders", "alice", "--mode", "print")
	require.ErrorContains(t, err, chart.ErrInvalidOutputMode.Error())
}

func TestActivity_GranularityFromConfig(t *testing.T) {
	home, chatFile := setup(t)
	t.Setenv("CHATSTAT_GRANULARITY", "fortnight")

	err := run(t, "activity", "--file", chatFile, "--senders", "alice", "--mode", "save", "--out", home)
	require.ErrorContains(t, err, "invalid config")
}

func TestSenders_MissingFile(t *testing.T) {
	home, _ := setup(t)

	err := run(t, "senders", "--file", filepath.Join(home, "missing.txt"), "--senders", "alice", "--mode", "save", "--out", home, "--log-level", "error")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSenders_RequiresConfig(t *testing.T) {
	_, chatFile := setup(t)

	require.ErrorIs(t, run(t, "senders", "--senders", "alice"), errNoChatFile)
	require.ErrorIs(t, run(t, "senders", "--file", chatFile), errNoSenders)
}

func TestSenders_BadDPI(t *testing.T) {
	_, chatFile := setup(t)

	err := run(t, "senders", "--file", chatFile, "--senders", "alice", "--dpi", "96")
	require.ErrorContains(t, err, "invalid config")
}

func TestIndexAndChats(t *testing.T) {
	home, _ := setup(t)

	require.NoError(t, run(t, "index", "--senders", "alice,bob", "--log-level", "error"))

	db, err := index.OpenDB(filepath.Join(home, ".config", "chatstat", "chatstat.db"))
	require.NoError(t, err)
	defer db.Close()

	n, err := db.MessageCount()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	require.NoError(t, run(t, "chats"))
}
