package index

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/scan"
)

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d pruned=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Errors)
}

// ChatKey derives the index key of a scanned chat export.
func ChatKey(fi scan.FileInfo) string {
	return "chat:" + fi.Rel
}

// IndexAll parses every chat export under root with the given senders and
// stores the messages. Chats whose file and sender list are unchanged are
// skipped; chats whose file disappeared are pruned.
func IndexAll(db *DB, root string, senders []string, logger *slog.Logger) (Stats, error) {
	var stats Stats

	files, err := scan.ScanRoot(root)
	if err != nil {
		return stats, fmt.Errorf("scan: %w", err)
	}
	stats.Scanned = len(files)

	set := parse.NewSenderSet(senders...)
	signature := strings.Join(set.Names(), ",")

	seenKeys := make(map[string]struct{})
	for _, fi := range files {
		key := ChatKey(fi)
		seenKeys[key] = struct{}{}

		needs, err := needsUpdate(db, key, signature, fi.Mtime, fi.Size)
		if err != nil {
			stats.Errors++
			logger.Warn("check chat", "path", fi.Path, "err", err)
			continue
		}
		if !needs {
			stats.Skipped++
			continue
		}

		result, err := parse.ParseFile(fi.Path, set.Names())
		if err != nil {
			stats.Errors++
			logger.Warn("parse chat", "path", fi.Path, "err", err)
			continue
		}

		if err := indexChat(db, key, signature, fi, result); err != nil {
			stats.Errors++
			logger.Warn("index chat", "path", fi.Path, "err", err)
			continue
		}
		logger.Debug("indexed chat", "key", key, "messages", result.Count())
		stats.Updated++
	}

	pruned, err := pruneChats(db, seenKeys)
	if err != nil {
		return stats, fmt.Errorf("prune: %w", err)
	}
	stats.Pruned = pruned

	return stats, nil
}

func needsUpdate(db *DB, chatKey, senders string, mtime, size int64) (bool, error) {
	info, err := db.GetChatInfo(chatKey)
	if err != nil {
		return false, err
	}
	if info == nil {
		return true, nil // new chat
	}
	return info.Senders != senders || info.Mtime != mtime || info.Size != size, nil
}

// indexChat replaces a chat's rows in one transaction; on failure the
// previous rows stay in place.
func indexChat(db *DB, chatKey, senders string, fi scan.FileInfo, result parse.Result) error {
	tx, err := db.Raw().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteChat(tx, chatKey); err != nil {
		return err
	}

	var firstTs, lastTs string
	if n := result.Count(); n > 0 {
		firstTs = result.Messages[0].Timestamp
		lastTs = result.Messages[n-1].Timestamp
	}

	_, err = tx.Exec(
		`INSERT INTO chats (chat_key, file_path, senders, message_count, first_ts, last_ts, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		chatKey, fi.Path, senders, result.Count(), firstTs, lastTs, fi.Mtime, fi.Size,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (chat_key, seq, ts, sender, body, line_number)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range result.Messages {
		if _, err := stmt.Exec(chatKey, m.Seq, m.Timestamp, m.Sender, m.Body, m.Line); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func pruneChats(db *DB, seenKeys map[string]struct{}) (int, error) {
	allKeys, err := db.AllChatKeys()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for key := range allKeys {
		if _, ok := seenKeys[key]; !ok {
			if err := db.DeleteChat(key); err != nil {
				return pruned, err
			}
			pruned++
		}
	}
	return pruned, nil
}
