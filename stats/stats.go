// Package stats holds the local copy of per-content engagement counters.
//
// The authoritative numbers live on the Jevah backend; the local copy is a
// persisted cache with optimistic mutations that reconcile against server
// responses instead of blindly overwriting them.
package stats

// UserInteractions records the requesting user's own state toward one item.
type UserInteractions struct {
	Liked bool `json:"liked"`
	Saved bool `json:"saved"`
}

// ContentStats is the engagement counter set for one content id.
type ContentStats struct {
	Views    int              `json:"views"`
	Likes    int              `json:"likes"`
	Comments int              `json:"comments"`
	Saves    int              `json:"saves"`
	Shares   int              `json:"shares"`
	User     UserInteractions `json:"userInteractions"`
}

// Reconcile merges a server response into the local copy. Server counters win
// outright; the user flags win too, since the server knows the canonical
// per-user toggle state after an idempotent mutation.
func (s *ContentStats) Reconcile(server ContentStats) {
	*s = server
}
