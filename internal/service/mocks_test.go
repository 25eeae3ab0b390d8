package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"focusportal/internal/broadcast"
	"focusportal/internal/domain"
	"focusportal/internal/domain/models"
	"focusportal/internal/domain/repositories"
	"focusportal/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeFolderRepo is an in-memory FolderRepository for service tests.
type fakeFolderRepo struct {
	folders map[string]*models.Folder
	nextID  int
	deleted []string // delete order, for worklist assertions
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (r *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) error {
	if folder.ID == "" {
		r.nextID++
		folder.ID = fmt.Sprintf("folder-%d", r.nextID)
	}
	copied := *folder
	r.folders[folder.ID] = &copied
	return nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, id, ownerID string) (*models.Folder, error) {
	folder, ok := r.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	copied := *folder
	return &copied, nil
}

func (r *fakeFolderRepo) GetByNameAndParent(_ context.Context, ownerID, name string, parentID *string) (*models.Folder, error) {
	for _, folder := range r.folders {
		if folder.OwnerID == ownerID && folder.Name == name && sameParent(folder.ParentID, parentID) {
			copied := *folder
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeFolderRepo) Update(_ context.Context, folder *models.Folder) error {
	if _, ok := r.folders[folder.ID]; !ok {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}
	copied := *folder
	r.folders[folder.ID] = &copied
	return nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, id, ownerID string) error {
	folder, ok := r.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(r.folders, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeFolderRepo) ListChildren(_ context.Context, parentID *string, ownerID string) ([]models.Folder, error) {
	var children []models.Folder
	for _, folder := range r.folders {
		if folder.OwnerID == ownerID && sameParent(folder.ParentID, parentID) {
			children = append(children, *folder)
		}
	}
	return children, nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// fakeFileRepo is an in-memory FileRepository.
type fakeFileRepo struct {
	files   map[string]*models.File
	nextID  int
	deleted []string
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[string]*models.File)}
}

func (r *fakeFileRepo) Create(_ context.Context, file *models.File) error {
	if file.ID == "" {
		r.nextID++
		file.ID = fmt.Sprintf("file-%d", r.nextID)
	}
	copied := *file
	r.files[file.ID] = &copied
	return nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, id, ownerID string) (*models.File, error) {
	file, ok := r.files[id]
	if !ok || file.OwnerID != ownerID {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	copied := *file
	return &copied, nil
}

func (r *fakeFileRepo) Update(_ context.Context, file *models.File) error {
	if _, ok := r.files[file.ID]; !ok {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}
	copied := *file
	r.files[file.ID] = &copied
	return nil
}

func (r *fakeFileRepo) Delete(_ context.Context, id, ownerID string) error {
	file, ok := r.files[id]
	if !ok || file.OwnerID != ownerID {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	delete(r.files, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeFileRepo) ListByFolder(_ context.Context, folderID *string, ownerID string) ([]models.File, error) {
	var files []models.File
	for _, file := range r.files {
		if file.OwnerID == ownerID && sameParent(file.FolderID, folderID) {
			files = append(files, *file)
		}
	}
	return files, nil
}

// fakeQuestionRepo is an in-memory QuestionRepository with real vote
// set semantics.
type fakeQuestionRepo struct {
	questions map[string]*models.Question
	nextID    int
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[string]*models.Question)}
}

func (r *fakeQuestionRepo) Create(_ context.Context, question *models.Question) error {
	if question.ID == "" {
		r.nextID++
		question.ID = fmt.Sprintf("question-%d", r.nextID)
	}
	copied := *question
	r.questions[question.ID] = &copied
	return nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id string) (*models.Question, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}
	copied := *question
	return &copied, nil
}

func (r *fakeQuestionRepo) List(_ context.Context, filter repositories.QuestionFilter) ([]models.Question, error) {
	var out []models.Question
	for _, question := range r.questions {
		if filter.Category != "" && question.Category != filter.Category {
			continue
		}
		out = append(out, *question)
	}
	return out, nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, question *models.Question) error {
	if _, ok := r.questions[question.ID]; !ok {
		return fmt.Errorf("question %s: %w", question.ID, domain.ErrNotFound)
	}
	copied := *question
	r.questions[question.ID] = &copied
	return nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.questions[id]; !ok {
		return fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}
	delete(r.questions, id)
	return nil
}

func (r *fakeQuestionRepo) SetVote(_ context.Context, id, actorID string, direction models.VoteDirection) (*models.VoteCounts, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}
	question.UpvotedBy, question.DownvotedBy = applyVoteSets(question.UpvotedBy, question.DownvotedBy, actorID, direction)
	return &models.VoteCounts{Upvotes: len(question.UpvotedBy), Downvotes: len(question.DownvotedBy)}, nil
}

func (r *fakeQuestionRepo) ClearVote(_ context.Context, id, actorID string) (*models.VoteCounts, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, fmt.Errorf("question %s: %w", id, domain.ErrNotFound)
	}
	question.UpvotedBy, question.DownvotedBy = applyVoteSets(question.UpvotedBy, question.DownvotedBy, actorID, "")
	return &models.VoteCounts{Upvotes: len(question.UpvotedBy), Downvotes: len(question.DownvotedBy)}, nil
}

// applyVoteSets mirrors the repository's single-statement transition:
// strip the actor from both sets, then append to the requested one.
func applyVoteSets(up, down []string, actorID string, direction models.VoteDirection) ([]string, []string) {
	up = removeString(up, actorID)
	down = removeString(down, actorID)
	switch direction {
	case models.VoteUp:
		up = append(up, actorID)
	case models.VoteDown:
		down = append(down, actorID)
	}
	return up, down
}

func removeString(set []string, s string) []string {
	out := set[:0]
	for _, v := range set {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// fakeCommentRepo is an in-memory CommentRepository.
type fakeCommentRepo struct {
	comments       map[string]*models.Comment
	nextID         int
	bulkDeleteFail error // injected DeleteByQuestion failure
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*models.Comment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		r.nextID++
		comment.ID = fmt.Sprintf("comment-%d", r.nextID)
	}
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id string) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	copied := *comment
	return &copied, nil
}

func (r *fakeCommentRepo) ListByQuestion(_ context.Context, questionID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range r.comments {
		if comment.QuestionID == questionID {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *models.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return fmt.Errorf("comment %s: %w", comment.ID, domain.ErrNotFound)
	}
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) DeleteByQuestion(_ context.Context, questionID string) error {
	if r.bulkDeleteFail != nil {
		return r.bulkDeleteFail
	}
	for id, comment := range r.comments {
		if comment.QuestionID == questionID {
			delete(r.comments, id)
		}
	}
	return nil
}

func (r *fakeCommentRepo) SetVote(_ context.Context, id, actorID string, direction models.VoteDirection) (*models.VoteCounts, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	comment.UpvotedBy, comment.DownvotedBy = applyVoteSets(comment.UpvotedBy, comment.DownvotedBy, actorID, direction)
	return &models.VoteCounts{Upvotes: len(comment.UpvotedBy), Downvotes: len(comment.DownvotedBy)}, nil
}

func (r *fakeCommentRepo) ClearVote(_ context.Context, id, actorID string) (*models.VoteCounts, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	comment.UpvotedBy, comment.DownvotedBy = applyVoteSets(comment.UpvotedBy, comment.DownvotedBy, actorID, "")
	return &models.VoteCounts{Upvotes: len(comment.UpvotedBy), Downvotes: len(comment.DownvotedBy)}, nil
}

// fakeBlobStore records stored and released remote IDs.
type fakeBlobStore struct {
	stored   []string
	released []string
	failWith error
}

func (b *fakeBlobStore) Store(_ context.Context, localPath string) (*storage.StoredObject, error) {
	if b.failWith != nil {
		return nil, b.failWith
	}
	remoteID := fmt.Sprintf("blob-%d", len(b.stored)+1)
	b.stored = append(b.stored, remoteID)
	return &storage.StoredObject{
		URL:      "http://blobs.local/" + remoteID,
		RemoteID: remoteID,
	}, nil
}

func (b *fakeBlobStore) Delete(_ context.Context, remoteID string) error {
	if b.failWith != nil {
		return b.failWith
	}
	b.released = append(b.released, remoteID)
	return nil
}

// fakeBroker records published events.
type fakeBroker struct {
	topics []string
	events []models.Event
}

func (b *fakeBroker) Publish(topic string, event models.Event) {
	b.topics = append(b.topics, topic)
	b.events = append(b.events, event)
}

// Subscribe is never exercised by the services under test.
func (b *fakeBroker) Subscribe(string) *broadcast.Subscription { return nil }
