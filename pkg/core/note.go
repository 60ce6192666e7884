package core

// Metadata represents the flexible key-value pairs associated with a note.
type Metadata map[string]any

// Note is the central entity of the domain.
// It represents a piece of writing identified by an ID (typically the
// file path relative to the vault root, without extension).
// It is agnostic to storage format.
type Note struct {
	ID       string
	Content  string
	Metadata Metadata
}

// Clone returns a copy of the note with its own metadata map.
// Mutating the copy never touches the original.
func (n Note) Clone() Note {
	out := n
	out.Metadata = make(Metadata, len(n.Metadata))
	for k, v := range n.Metadata {
		out.Metadata[k] = v
	}
	return out
}

// EventType represents the type of change in the vault.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the vault.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}
