// Package integration provides high-level coordination between media playback and the Jevah account service.
package integration

import (
	"github.com/jevah-cli/jevah/content"
	"github.com/jevah-cli/jevah/integration/jevah"
)

// Integrator defines the common interface for external service integrations that support activity synchronization.
type Integrator interface {
	// MarkViewed synchronizes the view status of a content item with the external service.
	MarkViewed(item *content.Item) error
}

var (
	Jevah Integrator = jevah.New()
)
