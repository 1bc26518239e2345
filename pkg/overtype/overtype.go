// Package overtype decides what a typed character does to the current line
// in overwrite mode: replace the character under the cursor, append at the
// end, or get blocked by the per-line length cap.
package overtype

// DefaultLineLimit is the hard cap on line length, in characters.
const DefaultLineLimit = 80

// Decision is the outcome for a single typed character.
type Decision int

const (
	// Block discards the keystroke.
	Block Decision = iota
	// Overwrite replaces the character at the cursor and advances.
	Overwrite
	// Append extends the line at the cursor.
	Append
)

func (d Decision) String() string {
	switch d {
	case Block:
		return "block"
	case Overwrite:
		return "overwrite"
	case Append:
		return "append"
	default:
		return "unknown"
	}
}

// Decide returns the action for typing one character into line at column
// col (counted in runes). limit <= 0 means DefaultLineLimit. Rules, in
// order: a cursor at or past the cap on a cap-length line is blocked;
// inside the visible text the character is overwritten; at or past the end
// of the line the character is appended while the line is under the cap.
func Decide(line string, col, limit int) Decision {
	if limit <= 0 {
		limit = DefaultLineLimit
	}
	length := len([]rune(line))

	if length >= limit && col >= limit {
		return Block
	}
	if col < length {
		return Overwrite
	}
	if length < limit {
		return Append
	}
	return Block
}

// Apply executes Decide for a typed rune and returns the updated line, the
// new cursor column, and whether the keystroke was accepted. Columns past
// the end of the line are clamped to the end before appending.
func Apply(line string, col int, r rune, limit int) (string, int, bool) {
	runes := []rune(line)

	switch Decide(line, col, limit) {
	case Overwrite:
		runes[col] = r
		return string(runes), col + 1, true
	case Append:
		runes = append(runes, r)
		return string(runes), len(runes), true
	default:
		return line, col, false
	}
}
