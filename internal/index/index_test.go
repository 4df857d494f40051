package index

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/scan"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

const family = "[01.01.20, 10:00:00] alice: hello world\n" +
	"[01.01.20, 10:05:00] bob: hi alice\n" +
	"[01.01.20, 11:00:00] alice: dinner at eight\n"

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "db", "chatstat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func writeChat(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestIndexAll(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	writeChat(t, filepath.Join(root, "family.txt"), family)

	stats, err := IndexAll(db, root, []string{"alice", "bob"}, discard)
	require.NoError(t, err)
	require.Equal(t, Stats{Scanned: 1, Updated: 1}, stats)

	chat, err := db.GetChatByKey("chat:family")
	require.NoError(t, err)
	require.NotNil(t, chat)
	require.Equal(t, 3, chat.MessageCount)
	require.Equal(t, "alice,bob", chat.Senders)
	require.Equal(t, "01.01.20, 10:00:00", chat.FirstTs)
	require.Equal(t, "01.01.20, 11:00:00", chat.LastTs)

	msgs, err := db.GetMessages("chat:family")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	require.Equal(t, "bob", msgs[1].Sender)
	require.Equal(t, "hi alice", msgs[1].Body)
	require.Equal(t, 2, msgs[1].LineNumber)

	n, err := db.FTSCount()
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestIndexChat_FailedRefreshKeepsPreviousRows(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	path := filepath.Join(root, "family.txt")
	writeChat(t, path, family)

	_, err := IndexAll(db, root, []string{"alice", "bob"}, discard)
	require.NoError(t, err)

	// duplicate seq violates the messages primary key
	broken := parse.Result{Messages: []parse.Message{
		{Seq: 1, Timestamp: "02.01.20, 09:00:00", Sender: "alice", Body: "one"},
		{Seq: 1, Timestamp: "02.01.20, 09:01:00", Sender: "bob", Body: "two"},
	}}
	fi := scan.FileInfo{Path: path, Rel: "family", Mtime: 1, Size: 1}
	require.Error(t, indexChat(db, "chat:family", "alice,bob", fi, broken))

	chat, err := db.GetChatByKey("chat:family")
	require.NoError(t, err)
	require.NotNil(t, chat)
	require.Equal(t, 3, chat.MessageCount)

	msgs, err := db.GetMessages("chat:family")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	require.Equal(t, "hello world", msgs[0].Body)
}

func TestIndexAll_SkipsUnchanged(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	writeChat(t, filepath.Join(root, "family.txt"), family)

	_, err := IndexAll(db, root, []string{"alice", "bob"}, discard)
	require.NoError(t, err)

	stats, err := IndexAll(db, root, []string{"alice", "bob"}, discard)
	require.NoError(t, err)
	require.Equal(t, Stats{Scanned: 1, Skipped: 1}, stats)

	// a different sender list re-attributes every message
	stats, err = IndexAll(db, root, []string{"alice"}, discard)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Updated)

	msgs, err := db.GetMessages("chat:family")
	require.NoError(t, err)
	require.Equal(t, "alice", msgs[1].Sender)
}

func TestIndexAll_Prunes(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	path := filepath.Join(root, "family.txt")
	writeChat(t, path, family)

	_, err := IndexAll(db, root, []string{"alice"}, discard)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	stats, err := IndexAll(db, root, []string{"alice"}, discard)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Pruned)

	n, err := db.MessageCount()
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestGetMessagesWindow(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	writeChat(t, filepath.Join(root, "family.txt"), family)
	_, err := IndexAll(db, root, []string{"alice", "bob"}, discard)
	require.NoError(t, err)

	msgs, before, after, err := db.GetMessagesWindow("chat:family", 1, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, 0, before)
	require.Equal(t, 1, after)

	msgs, before, after, err = db.GetMessagesWindow("chat:family", 3, 1)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3}, []int{msgs[0].Seq, msgs[1].Seq})
	require.Equal(t, 1, before)
	require.Equal(t, 0, after)

	msgs, _, _, err = db.GetMessagesWindow("chat:family", -1, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
}

func TestGetMessage(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	writeChat(t, filepath.Join(root, "family.txt"), family)
	_, err := IndexAll(db, root, []string{"alice", "bob"}, discard)
	require.NoError(t, err)

	m, err := db.GetMessage("chat:family", 3)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "dinner at eight", m.Body)

	m, err = db.GetMessage("chat:family", 9)
	require.NoError(t, err)
	require.Nil(t, m)
}

func TestListChats(t *testing.T) {
	db := openTestDB(t)
	root := t.TempDir()
	writeChat(t, filepath.Join(root, "work.txt"), family)
	writeChat(t, filepath.Join(root, "family.txt"), family)
	_, err := IndexAll(db, root, []string{"alice"}, discard)
	require.NoError(t, err)

	chats, err := db.ListChats()
	require.NoError(t, err)
	require.Len(t, chats, 2)
	require.Equal(t, "chat:family", chats[0].ChatKey)
	require.Equal(t, "chat:work", chats[1].ChatKey)
}
