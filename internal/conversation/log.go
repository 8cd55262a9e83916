// README: Append-only message log for one session.
package conversation

// Log is an ordered, append-only record of the turns in one session. It is
// owned by the caller and discarded at session end; nothing here persists.
type Log struct {
	msgs []Message
}

// NewLog returns a Log seeded with the given messages, copied so later
// appends by the caller can't reorder what was already recorded.
func NewLog(msgs ...Message) *Log {
	l := &Log{msgs: make([]Message, len(msgs))}
	copy(l.msgs, msgs)
	return l
}

// Append records one more turn. Prior entries are never edited or removed.
func (l *Log) Append(m Message) {
	l.msgs = append(l.msgs, m)
}

// Messages returns a copy of the log in causal order.
func (l *Log) Messages() []Message {
	out := make([]Message, len(l.msgs))
	copy(out, l.msgs)
	return out
}

// Len reports the number of recorded turns.
func (l *Log) Len() int {
	return len(l.msgs)
}
