// Package mediakey derives stable string identities for playable items within a rendering context.
//
// Every component that tracks per-item playback state addresses items exclusively by these
// keys. Two different items rendered in the same list must never collide, and the same item
// rendered in two different lists is intentionally a different key, so each list tracks its
// state independently.
package mediakey

import "fmt"

// Key is a unique identifier for one playable item within one rendering context.
type Key string

// Derive builds the key for an item rendered at the given position.
//
// The identity component falls back from id to fileURL to the positional index. The index
// fallback is deliberate: a randomized suffix would change on every re-render and break
// every component that keys state by the result.
func Derive(renderContext, id, fileURL string, index int) Key {
	identity := id
	if identity == "" {
		identity = fileURL
	}
	if identity == "" {
		identity = fmt.Sprintf("%d", index)
	}
	return Key(fmt.Sprintf("%s-%s", renderContext, identity))
}
