package search

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Zuo-Peng/chatstat/internal/index"
)

type Result struct {
	ChatKey   string
	Seq       int
	Timestamp string
	Sender    string
	Snippet   string
	Rank      float64
}

type Options struct {
	Query  string
	Chat   string // "" = all chats
	Sender string // "" = all senders
	Limit  int
}

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	idx := strings.Index(strings.ToLower(text), strings.ToLower(query))
	runes := []rune(text)
	if idx < 0 {
		if len(runes) > contextChars*2 {
			return string(runes[:contextChars*2]) + "..."
		}
		return text
	}

	pos := len([]rune(text[:idx]))
	qLen := len([]rune(query))
	start := max(pos-contextChars, 0)
	end := min(pos+qLen+contextChars, len(runes))

	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(string(runes[start:pos]))
	b.WriteString(">>>" + string(runes[pos:pos+qLen]) + "<<<")
	b.WriteString(string(runes[pos+qLen : end]))
	if end < len(runes) {
		b.WriteString("...")
	}
	return b.String()
}

// Search runs a full-text query over indexed message bodies.
func Search(db *index.DB, opts Options) ([]Result, error) {
	if strings.TrimSpace(opts.Query) == "" {
		return nil, nil
	}
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	// bodies are stored lowercased
	opts.Query = strings.ToLower(opts.Query)
	opts.Sender = strings.ToLower(opts.Sender)

	if containsCJK(opts.Query) {
		return searchLike(db, opts)
	}
	return searchFTS(db, opts)
}

func filters(opts Options) ([]string, []any) {
	var conditions []string
	var args []any
	if opts.Chat != "" {
		conditions = append(conditions, "m.chat_key = ?")
		args = append(args, opts.Chat)
	}
	if opts.Sender != "" {
		conditions = append(conditions, "m.sender = ?")
		args = append(args, opts.Sender)
	}
	return conditions, args
}

// matchQuery quotes every term so punctuation in chat text ("don't",
// "what?") is never read as FTS5 query syntax. Terms are ANDed.
func matchQuery(q string) string {
	terms := strings.Fields(q)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

func searchFTS(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"messages_fts MATCH ?"}
	args := []any{matchQuery(opts.Query)}
	fc, fa := filters(opts)
	conditions = append(conditions, fc...)
	args = append(args, fa...)

	query := fmt.Sprintf(`
		SELECT
			m.chat_key,
			m.seq,
			m.ts,
			m.sender,
			snippet(messages_fts, 0, '>>>', '<<<', '...', 20) AS snip,
			bm25(messages_fts) AS rank
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.rowid
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, strings.Join(conditions, " AND "))
	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ChatKey, &r.Seq, &r.Timestamp, &r.Sender, &r.Snippet, &r.Rank); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func searchLike(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"m.body LIKE ?"}
	args := []any{"%" + opts.Query + "%"}
	fc, fa := filters(opts)
	conditions = append(conditions, fc...)
	args = append(args, fa...)

	query := fmt.Sprintf(`
		SELECT m.chat_key, m.seq, m.ts, m.sender, m.body
		FROM messages m
		WHERE %s
		ORDER BY m.chat_key, m.seq
		LIMIT ?
	`, strings.Join(conditions, " AND "))
	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var body string
		if err := rows.Scan(&r.ChatKey, &r.Seq, &r.Timestamp, &r.Sender, &body); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(body, opts.Query, 30)
		results = append(results, r)
	}
	return results, rows.Err()
}

