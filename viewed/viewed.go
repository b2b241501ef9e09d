// Package viewed provides the implementation for tracking and persisting user media consumption state.
package viewed

import (
	"fmt"

	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/filesystem"
	"github.com/jevah-cli/jevah/where"
	"github.com/metafates/gache"
)

// SavedItem represents a single playback entry preserved in the user's viewed history.
type SavedItem struct {
	SourceID         string       `json:"source_id"`
	ContentID        string       `json:"content_id"`
	Title            string       `json:"title"`
	Kind             content.Kind `json:"kind"`
	FileURL          string       `json:"file_url"`
	ViewedPercentage float64      `json:"viewed_percentage"`
}

func (s *SavedItem) encode() string {
	return fmt.Sprintf("%s (%s)", s.ContentID, s.SourceID)
}

func (s *SavedItem) String() string {
	return fmt.Sprintf("%s : %.0f%%", s.Title, s.ViewedPercentage)
}

func newSavedItem(item *content.Item) *SavedItem {
	sourceID := "jevah"
	if item.Source != nil {
		sourceID = item.Source.ID()
	}

	return &SavedItem{
		SourceID:  sourceID,
		ContentID: item.ID,
		Title:     item.Title,
		Kind:      item.Kind,
		FileURL:   item.FileURL,
	}
}

// cacher provides an abstracted, disk-backed registry for viewed-content records.
var cacher = gache.New[map[string]*SavedItem](
	&gache.Options{
		Path:       where.Viewed(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of viewed-content records from the persistent store.
func Get() (map[string]*SavedItem, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedItem), nil
	}
	return cached, nil
}

// Save persists the playback progress of a specific item to the viewed registry.
func Save(item *content.Item, percentage float64) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedItem(item)

	// Idempotency: Maintain the maximum observed playback percentage to prevent regressions on re-view.
	if existing, exists := saved[record.encode()]; exists {
		if percentage < existing.ViewedPercentage {
			percentage = existing.ViewedPercentage
		}
	}
	record.ViewedPercentage = percentage

	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove permanently deletes a specific record from the viewed registry.
func Remove(item *SavedItem) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, item.encode())
	return cacher.Set(saved)
}
