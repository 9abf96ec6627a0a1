package chat

import "context"

// Repository persists the append-only message log. Implementations must be
// safe for concurrent callers and must assign ids and timestamps atomically
// with the row itself.
type Repository interface {
	// Append stores one message and returns the fully populated record.
	Append(ctx context.Context, role Role, text string) (*Message, error)

	// List returns up to limit messages in ascending id order. A limit of
	// zero or less applies DefaultListLimit. An empty log yields an empty
	// slice, not an error.
	List(ctx context.Context, limit int) ([]Message, error)
}
