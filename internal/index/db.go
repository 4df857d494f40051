package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS chats (
    chat_key      TEXT PRIMARY KEY,
    file_path     TEXT NOT NULL,
    senders       TEXT NOT NULL DEFAULT '',
    message_count INTEGER NOT NULL DEFAULT 0,
    first_ts      TEXT NOT NULL DEFAULT '',
    last_ts       TEXT NOT NULL DEFAULT '',
    mtime         INTEGER NOT NULL DEFAULT 0,
    size          INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS messages (
    chat_key    TEXT NOT NULL,
    seq         INTEGER NOT NULL,
    ts          TEXT NOT NULL DEFAULT '',
    sender      TEXT NOT NULL DEFAULT '',
    body        TEXT NOT NULL DEFAULT '',
    line_number INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (chat_key, seq)
);

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    body,
    content=messages,
    content_rowid=rowid,
    tokenize='unicode61'
);

CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, body) VALUES (new.rowid, new.body);
END;

CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, body) VALUES('delete', old.rowid, old.body);
END;

CREATE TRIGGER IF NOT EXISTS messages_au AFTER UPDATE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, body) VALUES('delete', old.rowid, old.body);
    INSERT INTO messages_fts(rowid, body) VALUES (new.rowid, new.body);
END;

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

// schemaVersion should be bumped whenever message parsing changes
// to force a full re-index.
const schemaVersion = "1"

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// a single connection keeps ":memory:" databases coherent
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	d := &DB{db: db}
	if err := d.migrateSchemaVersion(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return d, nil
}

func (d *DB) migrateSchemaVersion() error {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err == nil && ver == schemaVersion {
		return nil
	}
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	// force re-index by resetting all chat mtime/size to 0
	if _, err := d.db.Exec("UPDATE chats SET mtime = 0, size = 0"); err != nil {
		return err
	}
	_, err = d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	return err
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

type ChatInfo struct {
	Senders string
	Mtime   int64
	Size    int64
}

// GetChatInfo returns nil when the chat has not been indexed.
func (d *DB) GetChatInfo(chatKey string) (*ChatInfo, error) {
	var info ChatInfo
	err := d.db.QueryRow(
		"SELECT senders, mtime, size FROM chats WHERE chat_key = ?",
		chatKey,
	).Scan(&info.Senders, &info.Mtime, &info.Size)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (d *DB) AllChatKeys() (map[string]struct{}, error) {
	rows, err := d.db.Query("SELECT chat_key FROM chats")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys[k] = struct{}{}
	}
	return keys, rows.Err()
}

func (d *DB) DeleteChat(chatKey string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteChat(tx, chatKey); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteChat(tx *sql.Tx, chatKey string) error {
	if _, err := tx.Exec("DELETE FROM messages WHERE chat_key = ?", chatKey); err != nil {
		return err
	}
	_, err := tx.Exec("DELETE FROM chats WHERE chat_key = ?", chatKey)
	return err
}

func (d *DB) ChatCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM chats").Scan(&n)
	return n, err
}

func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}

// FTSCount returns the number of rows in the full-text index.
func (d *DB) FTSCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages_fts").Scan(&n)
	return n, err
}

type ChatRow struct {
	ChatKey      string
	FilePath     string
	Senders      string
	MessageCount int
	FirstTs      string
	LastTs       string
}

// GetChatByKey returns nil when no such chat is indexed.
func (d *DB) GetChatByKey(chatKey string) (*ChatRow, error) {
	var c ChatRow
	err := d.db.QueryRow(
		"SELECT chat_key, file_path, senders, message_count, first_ts, last_ts FROM chats WHERE chat_key = ?",
		chatKey,
	).Scan(&c.ChatKey, &c.FilePath, &c.Senders, &c.MessageCount, &c.FirstTs, &c.LastTs)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type MessageRow struct {
	ChatKey    string
	Seq        int
	Ts         string
	Sender     string
	Body       string
	LineNumber int
}

const messageColumns = "chat_key, seq, ts, sender, body, line_number"

func scanMessages(rows *sql.Rows) ([]MessageRow, error) {
	defer rows.Close()

	var msgs []MessageRow
	for rows.Next() {
		var m MessageRow
		if err := rows.Scan(&m.ChatKey, &m.Seq, &m.Ts, &m.Sender, &m.Body, &m.LineNumber); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (d *DB) GetMessages(chatKey string) ([]MessageRow, error) {
	rows, err := d.db.Query(
		"SELECT "+messageColumns+" FROM messages WHERE chat_key = ? ORDER BY seq",
		chatKey,
	)
	if err != nil {
		return nil, err
	}
	return scanMessages(rows)
}

// GetMessage returns nil when the message does not exist.
func (d *DB) GetMessage(chatKey string, seq int) (*MessageRow, error) {
	rows, err := d.db.Query(
		"SELECT "+messageColumns+" FROM messages WHERE chat_key = ? AND seq = ?",
		chatKey, seq,
	)
	if err != nil {
		return nil, err
	}
	msgs, err := scanMessages(rows)
	if err != nil || len(msgs) == 0 {
		return nil, err
	}
	return &msgs[0], nil
}

// GetMessagesWindow returns up to context messages on each side of hitSeq.
// Sequence numbers are dense, so the window is a plain range query.
// A negative hitSeq returns every message.
func (d *DB) GetMessagesWindow(chatKey string, hitSeq, context int) (msgs []MessageRow, before, after int, err error) {
	var total int
	if err = d.db.QueryRow(
		"SELECT COUNT(*) FROM messages WHERE chat_key = ?", chatKey,
	).Scan(&total); err != nil {
		return nil, 0, 0, err
	}
	if hitSeq < 0 || context < 0 {
		msgs, err = d.GetMessages(chatKey)
		return msgs, 0, 0, err
	}

	lo := max(hitSeq-context, 1)
	hi := min(hitSeq+context, total)

	rows, err := d.db.Query(
		"SELECT "+messageColumns+" FROM messages WHERE chat_key = ? AND seq BETWEEN ? AND ? ORDER BY seq",
		chatKey, lo, hi,
	)
	if err != nil {
		return nil, 0, 0, err
	}
	msgs, err = scanMessages(rows)
	if err != nil {
		return nil, 0, 0, err
	}
	return msgs, lo - 1, max(total-hi, 0), nil
}

// ListChats returns every indexed chat ordered by key.
func (d *DB) ListChats() ([]ChatRow, error) {
	rows, err := d.db.Query(
		"SELECT chat_key, file_path, senders, message_count, first_ts, last_ts FROM chats ORDER BY chat_key",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []ChatRow
	for rows.Next() {
		var c ChatRow
		if err := rows.Scan(&c.ChatKey, &c.FilePath, &c.Senders, &c.MessageCount, &c.FirstTs, &c.LastTs); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}
