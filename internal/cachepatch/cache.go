// Package cachepatch is the client-side consumer of the broadcast
// stream. It keeps locally cached collections keyed by view and
// patches them from events with pure, idempotent transforms, so
// duplicate or out-of-order delivery always converges to the same
// state.
package cachepatch

import (
	"sync"

	"focusportal/internal/domain/models"
)

// Key identifies a cached collection, e.g. {"comments", questionID}
// or {"questions", ""} for the main feed.
type Key struct {
	Kind string
	ID   string
}

// QuestionsKey is the feed collection key.
func QuestionsKey() Key { return Key{Kind: "questions"} }

// CommentsKey is the per-question comment collection key.
func CommentsKey(questionID string) Key { return Key{Kind: "comments", ID: questionID} }

// Entry is the cached view of one question or comment.
type Entry struct {
	ID        string
	Question  *models.Question
	Comment   *models.Comment
	Upvotes   int
	Downvotes int
	// ViewerVote is the local viewer's own vote flag: "up", "down",
	// or "". Only overwritten when an event's actor is the viewer.
	ViewerVote string
}

// Cache holds the viewer's local collections. All transforms are
// last-write-wins on absolute state, never deltas.
type Cache struct {
	viewerID    string
	mu          sync.RWMutex
	collections map[Key][]Entry
}

// NewCache creates a cache for one viewer.
func NewCache(viewerID string) *Cache {
	return &Cache{
		viewerID:    viewerID,
		collections: make(map[Key][]Entry),
	}
}

// Prime seeds a collection from an initial fetch.
func (c *Cache) Prime(key Key, entries []Entry) {
	c.mu.Lock()
	c.collections[key] = append([]Entry(nil), entries...)
	c.mu.Unlock()
}

// Get returns a copy of a collection. A missing key yields nil.
func (c *Cache) Get(key Key) []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries, ok := c.collections[key]
	if !ok {
		return nil
	}
	return append([]Entry(nil), entries...)
}

// Apply patches the cache from one broadcast event. Applying the same
// event twice produces the same state as applying it once; events for
// ids the cache does not hold are no-ops.
func (c *Cache) Apply(event models.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event.Name {
	case models.EventQuestionCreated:
		c.appendIfAbsent(QuestionsKey(), questionEntry(event.Question))
	case models.EventQuestionUpdated:
		c.replace(QuestionsKey(), questionEntry(event.Question))
	case models.EventQuestionDeleted:
		c.remove(QuestionsKey(), event.EntityID)
	case models.EventQuestionVoted:
		c.patchVotes(QuestionsKey(), event)

	case models.EventCommentCreated:
		c.appendIfAbsent(CommentsKey(event.QuestionID), commentEntry(event.Comment))
	case models.EventCommentUpdated:
		c.replace(CommentsKey(event.QuestionID), commentEntry(event.Comment))
	case models.EventCommentDeleted:
		c.remove(CommentsKey(event.QuestionID), event.EntityID)
	case models.EventCommentVoted:
		c.patchVotes(CommentsKey(event.QuestionID), event)
	}
}

func questionEntry(q *models.Question) Entry {
	if q == nil {
		return Entry{}
	}
	return Entry{
		ID:        q.ID,
		Question:  q,
		Upvotes:   q.Upvotes(),
		Downvotes: q.Downvotes(),
	}
}

func commentEntry(cm *models.Comment) Entry {
	if cm == nil {
		return Entry{}
	}
	return Entry{
		ID:        cm.ID,
		Comment:   cm,
		Upvotes:   cm.Upvotes(),
		Downvotes: cm.Downvotes(),
	}
}

// appendIfAbsent guards against the event arriving after the viewer's
// own optimistic insert: dedup by id.
func (c *Cache) appendIfAbsent(key Key, entry Entry) {
	if entry.ID == "" {
		return
	}
	for _, existing := range c.collections[key] {
		if existing.ID == entry.ID {
			return
		}
	}
	c.collections[key] = append(c.collections[key], entry)
}

// replace swaps the matching entry, preserving the viewer's own vote
// flag. Unknown ids are ignored.
func (c *Cache) replace(key Key, entry Entry) {
	if entry.ID == "" {
		return
	}
	entries := c.collections[key]
	for i := range entries {
		if entries[i].ID == entry.ID {
			entry.ViewerVote = entries[i].ViewerVote
			entries[i] = entry
			return
		}
	}
}

func (c *Cache) remove(key Key, id string) {
	entries := c.collections[key]
	filtered := entries[:0]
	for _, entry := range entries {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	c.collections[key] = filtered
}

// patchVotes overwrites the count fields with the event's absolute
// values. The viewer's own vote flag is touched only when the event's
// actor is the viewer. Voting on an already-deleted entity finds no
// entry and is a no-op.
func (c *Cache) patchVotes(key Key, event models.Event) {
	entries := c.collections[key]
	for i := range entries {
		if entries[i].ID != event.EntityID {
			continue
		}
		entries[i].Upvotes = event.Upvotes
		entries[i].Downvotes = event.Downvotes
		if event.ActorID == c.viewerID {
			entries[i].ViewerVote = event.Vote
		}
		return
	}
}
