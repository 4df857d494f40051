package parse

// Message is one chat message recovered from an export.
type Message struct {
	Seq       int    // 1-based, insertion order
	Timestamp string // raw, unparsed (e.g. "01.01.20, 10:00:00")
	Sender    string // lowercased sender name, "" if unattributed
	Body      string
	Line      int // line in the source text where the message starts
}

type Result struct {
	Messages []Message
	Senders  SenderSet
}

// Count returns the number of parsed messages.
func (r Result) Count() int {
	return len(r.Messages)
}
