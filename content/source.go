// Package content defines the domain models and interfaces for media discovery and retrieval.
package content

// Source defines the required capabilities for a content lookup backend.
type Source interface {
	// Name returns the human-readable identifier for the lookup source.
	Name() string

	// ID returns the unique identifier of the source.
	ID() string

	// Search executes a query against the source to discover matching content items.
	Search(query string) ([]*Item, error)

	// StreamsOf retrieves the available media streams for a specific content item.
	StreamsOf(item *Item) ([]*Stream, error)
}
