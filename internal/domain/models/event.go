package models

// EventName tags a broadcast payload with the entity and action it
// describes. Consumers route on this tag.
type EventName string

const (
	EventQuestionCreated EventName = "question:created"
	EventQuestionUpdated EventName = "question:updated"
	EventQuestionDeleted EventName = "question:deleted"
	EventQuestionVoted   EventName = "question:voted"
	EventCommentCreated  EventName = "comment:created"
	EventCommentUpdated  EventName = "comment:updated"
	EventCommentDeleted  EventName = "comment:deleted"
	EventCommentVoted    EventName = "comment:voted"
)

// Event is the transient broadcast payload pushed to every subscriber
// after a successful mutation. It always carries absolute state (full
// entities or absolute counts), never deltas, so duplicate or
// out-of-order delivery cannot corrupt a consumer's view.
type Event struct {
	Name     EventName `json:"name"`
	EntityID string    `json:"entity_id"`
	ActorID  string    `json:"actor_id"`
	// QuestionID is the parent question for comment events, so
	// subscribers can route the event to the correct collection.
	QuestionID string `json:"question_id,omitempty"`
	// Full repopulated entity for created/updated events.
	Question *Question `json:"question,omitempty"`
	Comment  *Comment  `json:"comment,omitempty"`
	// Absolute counts for voted events.
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	// Vote is the actor's resulting vote direction for voted events:
	// "up", "down", or "" when the vote was withdrawn.
	Vote string `json:"vote,omitempty"`
}
