package search

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatstat/internal/index"
)

func indexedDB(t *testing.T) *index.DB {
	t.Helper()
	root := t.TempDir()
	chat := "[01.01.20, 10:00:00] alice: dinner tonight?\n" +
		"[01.01.20, 10:05:00] bob: dinner sounds good\n" +
		"[01.01.20, 10:06:00] bob: 今晚吃饭\n" +
		"[01.01.20, 10:07:00] alice: see you\n" +
		"[01.01.20, 10:08:00] bob: don't be late\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "family.txt"), []byte(chat), 0o644))

	db, err := index.OpenDB(filepath.Join(t.TempDir(), "chatstat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = index.IndexAll(db, root, []string{"alice", "bob"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return db
}

func TestSearch_FTS(t *testing.T) {
	db := indexedDB(t)

	results, err := Search(db, Options{Query: "Dinner"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		require.Equal(t, "chat:family", r.ChatKey)
		require.Contains(t, r.Snippet, ">>>dinner<<<")
	}
}

func TestSearch_SenderFilter(t *testing.T) {
	db := indexedDB(t)

	results, err := Search(db, Options{Query: "dinner", Sender: "Bob"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 2, results[0].Seq)
	require.Equal(t, "bob", results[0].Sender)
	require.Equal(t, "01.01.20, 10:05:00", results[0].Timestamp)
}

func TestSearch_PunctuationIsLiteral(t *testing.T) {
	db := indexedDB(t)

	results, err := Search(db, Options{Query: "don't"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 5, results[0].Seq)

	results, err = Search(db, Options{Query: "tonight?"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 1, results[0].Seq)

	_, err = Search(db, Options{Query: `say "hi OR (`})
	require.NoError(t, err)
}

func TestMatchQuery(t *testing.T) {
	require.Equal(t, `"don't" "be"`, matchQuery("don't  be"))
	require.Equal(t, `"say" """hi"`, matchQuery(`say "hi`))
}

func TestSearch_CJK(t *testing.T) {
	db := indexedDB(t)

	results, err := Search(db, Options{Query: "吃饭"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 3, results[0].Seq)
	require.Equal(t, "今晚>>>吃饭<<<", results[0].Snippet)
}

func TestSearch_EmptyQuery(t *testing.T) {
	db := indexedDB(t)

	results, err := Search(db, Options{Query: "  "})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestMakeSnippet(t *testing.T) {
	require.Equal(t, "...lo >>>world<<< an...", makeSnippet("hello world and more", "world", 3))
	require.Equal(t, "abcd...", makeSnippet("abcdefgh", "zz", 2))
	require.Equal(t, "abc", makeSnippet("abc", "zz", 2))
}
