package stats

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/Zuo-Peng/chatstat/internal/parse"
)

type SenderStats struct {
	Sender   string
	Messages int
	Words    int
}

// CountBySender tallies messages and words per sender. Rows follow the
// sender set's caller order; senders without messages get zero rows.
func CountBySender(msgs []parse.Message, senders parse.SenderSet, words WordCounter) []SenderStats {
	idx := make(map[string]int, senders.Len())
	rows := lo.Map(senders.Names(), func(name string, i int) SenderStats {
		idx[name] = i
		return SenderStats{Sender: name}
	})

	for _, m := range msgs {
		i, ok := idx[m.Sender]
		if !ok {
			continue
		}
		rows[i].Messages++
		rows[i].Words += words.Count(m.Body)
	}
	return rows
}

// WriteSenderReport prints one summary line per sender.
func WriteSenderReport(w io.Writer, rows []SenderStats) error {
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "Number messages %s:\t%d\tnumber words:\t%d\n", r.Sender, r.Messages, r.Words); err != nil {
			return err
		}
	}
	return nil
}

// WriteMessageCount prints the total number of parsed messages.
func WriteMessageCount(w io.Writer, n int) error {
	_, err := fmt.Fprintf(w, "\nNumber of messages:\t%d\n", n)
	return err
}

func WriteSenderTable(w io.Writer, rows []SenderStats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Sender", "Messages", "Words"})
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	var totalMsgs, totalWords int
	for _, r := range rows {
		table.Append([]string{r.Sender, fmt.Sprint(r.Messages), fmt.Sprint(r.Words)})
		totalMsgs += r.Messages
		totalWords += r.Words
	}
	table.SetFooter([]string{"Total", fmt.Sprint(totalMsgs), fmt.Sprint(totalWords)})
	table.Render()
}
