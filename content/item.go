// Package content defines the domain models and interfaces for media discovery and retrieval.
package content

import (
	"fmt"
	"strings"
)

// Kind is the tagged content category of an item.
type Kind string

const (
	Video  Kind = "video"
	Audio  Kind = "audio"
	Ebook  Kind = "ebook"
	Sermon Kind = "sermon"
)

// ParseKind normalizes a loosely-typed wire content type into a tagged Kind.
// The backend uses several spellings for the same category ("videos", "music", "books").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "video", "videos", "reel", "reels":
		return Video, nil
	case "audio", "music", "podcast":
		return Audio, nil
	case "ebook", "ebooks", "book", "books", "pdf":
		return Ebook, nil
	case "sermon", "sermons", "teachings", "message":
		return Sermon, nil
	default:
		return "", fmt.Errorf("unknown content type %q", s)
	}
}

// Playable reports whether items of this kind carry a streamable media file.
func (k Kind) Playable() bool {
	switch k {
	case Video, Audio, Sermon:
		return true
	default:
		return false
	}
}

// Item represents a content entity discovered through a lookup source.
type Item struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Kind         Kind   `json:"kind"`
	FileURL      string `json:"fileUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Uploader     string `json:"uploader,omitempty"`
	// Duration is the total media length in seconds; zero when unknown.
	Duration int `json:"duration,omitempty"`
	// Ordering index within the result set.
	Index uint16 `json:"index"`

	Source Source `json:"-"`

	// Streams associated with this item.
	// Populated only when necessary.
	Streams []*Stream `json:"streams,omitempty"`
}

func (i *Item) String() string {
	return i.Title
}
