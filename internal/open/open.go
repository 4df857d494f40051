package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/chatstat/internal/index"
)

// OpenMessage opens the chat export behind chatKey in $EDITOR at the line
// where message seq starts. A negative seq opens the file at the top.
func OpenMessage(db *index.DB, chatKey string, seq int) error {
	chat, err := db.GetChatByKey(chatKey)
	if err != nil {
		return fmt.Errorf("get chat: %w", err)
	}
	if chat == nil {
		return fmt.Errorf("chat not found: %s", chatKey)
	}

	if _, err := os.Stat(chat.FilePath); err != nil {
		return fmt.Errorf("file not found: %s", chat.FilePath)
	}

	lineNum := 1
	if seq >= 0 {
		m, err := db.GetMessage(chatKey, seq)
		if err != nil {
			return fmt.Errorf("get message: %w", err)
		}
		if m == nil {
			return fmt.Errorf("message %d not found in %s", seq, chatKey)
		}
		lineNum = m.LineNumber
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	cmd := editorCommand(editor, chat.FilePath, lineNum)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func editorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	switch {
	case strings.Contains(editor, "vim"):
		return exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	case strings.Contains(editor, "code"):
		return exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"), strings.Contains(editor, "nano"):
		return exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		return exec.Command(editor, filePath)
	}
}
