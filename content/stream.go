// Package content defines the domain models and interfaces for media discovery and retrieval.
package content

// Stream represents a playable media resource.
type Stream struct {
	// Direct URL to the stream/file.
	URL string `json:"url"`
	// Quality label (e.g. "1080p", "720p").
	Quality string `json:"quality"`
	// File extension (e.g. "mp4", "m3u8", "mp3").
	Extension string `json:"extension"`
	// HTTP headers required to stream.
	Headers map[string]string `json:"headers"`
	// Ordering index.
	Index uint16 `json:"index"`
}

// String returns the quality or URL for display.
func (s *Stream) String() string {
	if s.Quality != "" {
		return s.Quality
	}
	return s.URL
}
