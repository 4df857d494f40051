package open

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatstat/internal/index"
)

func TestEditorCommand(t *testing.T) {
	cmd := editorCommand("nvim", "/tmp/chat.txt", 12)
	require.Equal(t, []string{"nvim", "+12", "/tmp/chat.txt"}, cmd.Args)

	cmd = editorCommand("code", "/tmp/chat.txt", 3)
	require.Equal(t, []string{"code", "--goto", "/tmp/chat.txt:3"}, cmd.Args)

	cmd = editorCommand("emacs", "/tmp/chat.txt", 3)
	require.Equal(t, []string{"emacs", "/tmp/chat.txt"}, cmd.Args)
}

func TestOpenMessage_Errors(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "family.txt")
	require.NoError(t, os.WriteFile(path, []byte("[01.01.20, 10:00:00] alice: hi\n"), 0o644))

	db, err := index.OpenDB(filepath.Join(t.TempDir(), "chatstat.db"))
	require.NoError(t, err)
	defer db.Close()
	_, err = index.IndexAll(db, root, []string{"alice"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	err = OpenMessage(db, "chat:missing", 1)
	require.ErrorContains(t, err, "chat not found")

	err = OpenMessage(db, "chat:family", 5)
	require.ErrorContains(t, err, "message 5 not found")

	require.NoError(t, os.Remove(path))
	err = OpenMessage(db, "chat:family", 1)
	require.ErrorContains(t, err, "file not found")
}
