package domain

import (
	"fmt"
	"strings"
)

// DefaultConditionalNote is the note appended when a caller gives none.
const DefaultConditionalNote = "390"

// GenerationReport is the outcome of a generator run.
type GenerationReport struct {
	Message string
	Tasks   []Task
	Skipped int
}

// NoteActionKind says what the conditional-notes generator did to a title.
type NoteActionKind string

const (
	NoteCreated NoteActionKind = "created"
	NoteUpdated NoteActionKind = "updated"
	NoteSkipped NoteActionKind = "skipped"
)

// NoteAction is the log entry for one title.
type NoteAction struct {
	Action NoteActionKind
	Title  string
	TaskID int64
	Notes  string
	Reason string
}

// NoteReport is the outcome of a conditional-notes run.
type NoteReport struct {
	ClientID int64
	Period   Period
	Note     string
	Actions  []NoteAction
}

// SplitNotes splits a comma list, trimming entries and dropping empty ones.
func SplitNotes(notes string) []string {
	var out []string
	for _, n := range strings.Split(notes, ",") {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// AppendNote adds note to the comma list unless already present. The
// boolean reports whether the list changed.
func AppendNote(notes, note string) (string, bool) {
	list := SplitNotes(notes)
	for _, n := range list {
		if n == note {
			return notes, false
		}
	}
	return strings.Join(append(list, note), ","), true
}

// NoteExistsReason is the skip reason for a note already on the task.
func NoteExistsReason(note string) string {
	return fmt.Sprintf("Note %q already exists", note)
}

// JoinRuleTitles joins titles with commas after splitting each on commas and
// dropping repeats, keeping first-occurrence order.
func JoinRuleTitles(titles []string) string {
	seen := make(map[string]struct{})
	var unique []string
	for _, part := range strings.Split(strings.Join(titles, ","), ",") {
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		unique = append(unique, part)
	}
	return strings.Join(unique, ",")
}
