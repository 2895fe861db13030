package tui

// History remembers sent chat lines for up/down recall. The text being
// typed when recall starts is kept as a draft and restored at the end.
type History struct {
	entries []string
	max     int
	cursor  int // -1 = not navigating, 0..len-1 = position in entries
	draft   string
}

// NewHistory creates a history holding at most max lines.
func NewHistory(max int) *History {
	return &History{
		entries: make([]string, 0, max),
		max:     max,
		cursor:  -1,
	}
}

// Push records a sent line. Consecutive duplicates are skipped.
func (h *History) Push(line string) {
	h.cursor = -1
	h.draft = ""
	if line == "" || (len(h.entries) > 0 && h.entries[len(h.entries)-1] == line) {
		return
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

// Prev returns the previous (older) line. current is what the input held
// before recall began. Returns ("", false) if history is empty.
func (h *History) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor == -1 {
		h.draft = current
		h.cursor = len(h.entries) - 1
	} else if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next returns the next (newer) line, or the saved draft once past the
// newest. Returns ("", false) when not navigating.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = -1
		return h.draft, true
	}
	return h.entries[h.cursor], true
}

// Len returns the number of remembered lines.
func (h *History) Len() int { return len(h.entries) }
