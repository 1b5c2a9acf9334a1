package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yamdb-backend/internal/domains/review/model"
	titlemodel "yamdb-backend/internal/domains/title/model"
	"yamdb-backend/internal/shared/permissions"
)

// fakeTitleRepository tracks existing titles and cache invalidations.
type fakeTitleRepository struct {
	existing    map[uuid.UUID]bool
	invalidated []uuid.UUID
}

func newFakeTitleRepository(ids ...uuid.UUID) *fakeTitleRepository {
	existing := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		existing[id] = true
	}
	return &fakeTitleRepository{existing: existing}
}

func (f *fakeTitleRepository) Create(context.Context, *titlemodel.Title, uuid.UUID, []uuid.UUID) error {
	return nil
}

func (f *fakeTitleRepository) GetByID(_ context.Context, id uuid.UUID) (*titlemodel.Title, error) {
	if !f.existing[id] {
		return nil, titlemodel.ErrTitleNotFound
	}
	return &titlemodel.Title{ID: id}, nil
}

func (f *fakeTitleRepository) List(context.Context, titlemodel.ListTitlesRequest) ([]titlemodel.Title, int, error) {
	return nil, 0, nil
}

func (f *fakeTitleRepository) Update(context.Context, *titlemodel.Title, *uuid.UUID, []uuid.UUID) error {
	return nil
}

func (f *fakeTitleRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.existing, id)
	return nil
}

func (f *fakeTitleRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return f.existing[id], nil
}

func (f *fakeTitleRepository) InvalidateCache(_ context.Context, id uuid.UUID) error {
	f.invalidated = append(f.invalidated, id)
	return nil
}

// fakeReviewRepository keeps reviews and comments in memory, keyed by
// their parents the same way the real queries are scoped.
type fakeReviewRepository struct {
	reviews  map[uuid.UUID]*model.Review
	comments map[uuid.UUID]*model.Comment
}

func newFakeReviewRepository() *fakeReviewRepository {
	return &fakeReviewRepository{
		reviews:  make(map[uuid.UUID]*model.Review),
		comments: make(map[uuid.UUID]*model.Comment),
	}
}

func (f *fakeReviewRepository) CreateReview(_ context.Context, review *model.Review) error {
	for _, existing := range f.reviews {
		if existing.TitleID == review.TitleID && existing.AuthorID == review.AuthorID {
			return model.ErrAlreadyReviewed
		}
	}
	clone := *review
	f.reviews[review.ID] = &clone
	return nil
}

func (f *fakeReviewRepository) GetReview(_ context.Context, titleID, reviewID uuid.UUID) (*model.Review, error) {
	review, ok := f.reviews[reviewID]
	if !ok || review.TitleID != titleID {
		return nil, model.ErrReviewNotFound
	}
	clone := *review
	return &clone, nil
}

func (f *fakeReviewRepository) ListReviews(_ context.Context, titleID uuid.UUID, _, _ int) ([]model.Review, int, error) {
	var out []model.Review
	for _, review := range f.reviews {
		if review.TitleID == titleID {
			out = append(out, *review)
		}
	}
	return out, len(out), nil
}

func (f *fakeReviewRepository) UpdateReview(_ context.Context, review *model.Review) error {
	if _, ok := f.reviews[review.ID]; !ok {
		return model.ErrReviewNotFound
	}
	clone := *review
	f.reviews[review.ID] = &clone
	return nil
}

func (f *fakeReviewRepository) DeleteReview(_ context.Context, titleID, reviewID uuid.UUID) error {
	review, ok := f.reviews[reviewID]
	if !ok || review.TitleID != titleID {
		return model.ErrReviewNotFound
	}
	delete(f.reviews, reviewID)
	return nil
}

func (f *fakeReviewRepository) CreateComment(_ context.Context, comment *model.Comment) error {
	clone := *comment
	f.comments[comment.ID] = &clone
	return nil
}

func (f *fakeReviewRepository) GetComment(_ context.Context, reviewID, commentID uuid.UUID) (*model.Comment, error) {
	comment, ok := f.comments[commentID]
	if !ok || comment.ReviewID != reviewID {
		return nil, model.ErrCommentNotFound
	}
	clone := *comment
	return &clone, nil
}

func (f *fakeReviewRepository) ListComments(_ context.Context, reviewID uuid.UUID, _, _ int) ([]model.Comment, int, error) {
	var out []model.Comment
	for _, comment := range f.comments {
		if comment.ReviewID == reviewID {
			out = append(out, *comment)
		}
	}
	return out, len(out), nil
}

func (f *fakeReviewRepository) UpdateComment(_ context.Context, comment *model.Comment) error {
	if _, ok := f.comments[comment.ID]; !ok {
		return model.ErrCommentNotFound
	}
	clone := *comment
	f.comments[comment.ID] = &clone
	return nil
}

func (f *fakeReviewRepository) DeleteComment(_ context.Context, reviewID, commentID uuid.UUID) error {
	comment, ok := f.comments[commentID]
	if !ok || comment.ReviewID != reviewID {
		return model.ErrCommentNotFound
	}
	delete(f.comments, commentID)
	return nil
}

func authenticatedUser(role permissions.Role) permissions.Identity {
	return permissions.Identity{
		ID:            uuid.New(),
		Username:      "user-" + uuid.NewString()[:8],
		Role:          role,
		Authenticated: true,
	}
}

func score(v int) *int { return &v }

func TestCreateReview(t *testing.T) {
	titleID := uuid.New()
	titles := newFakeTitleRepository(titleID)
	svc := NewReviewService(newFakeReviewRepository(), titles)
	author := authenticatedUser(permissions.RoleUser)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, author, titleID, model.CreateReviewRequest{
		Text:  "solid",
		Score: score(8),
	})
	require.NoError(t, err)
	assert.Equal(t, author.Username, review.Author)
	assert.Equal(t, 8, review.Score)
	assert.WithinDuration(t, time.Now(), review.PubDate, time.Minute)

	// The title's mean rating changed, so its cached read model is gone.
	assert.Contains(t, titles.invalidated, titleID)
}

func TestCreateReview_UnknownTitle(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepository(), newFakeTitleRepository())

	_, err := svc.CreateReview(context.Background(), authenticatedUser(permissions.RoleUser), uuid.New(),
		model.CreateReviewRequest{Text: "x", Score: score(5)})
	assert.ErrorIs(t, err, titlemodel.ErrTitleNotFound)
}

func TestCreateReview_OnePerAuthor(t *testing.T) {
	titleID := uuid.New()
	svc := NewReviewService(newFakeReviewRepository(), newFakeTitleRepository(titleID))
	author := authenticatedUser(permissions.RoleUser)
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, author, titleID, model.CreateReviewRequest{Text: "once", Score: score(7)})
	require.NoError(t, err)

	_, err = svc.CreateReview(ctx, author, titleID, model.CreateReviewRequest{Text: "twice", Score: score(3)})
	assert.ErrorIs(t, err, model.ErrAlreadyReviewed)
}

func TestCreateReview_ScoreBounds(t *testing.T) {
	titleID := uuid.New()
	svc := NewReviewService(newFakeReviewRepository(), newFakeTitleRepository(titleID))
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, authenticatedUser(permissions.RoleUser), titleID,
		model.CreateReviewRequest{Text: "x", Score: score(11)})
	assert.Error(t, err)

	_, err = svc.CreateReview(ctx, authenticatedUser(permissions.RoleUser), titleID,
		model.CreateReviewRequest{Text: "x", Score: nil})
	assert.Error(t, err)

	_, err = svc.CreateReview(ctx, authenticatedUser(permissions.RoleUser), titleID,
		model.CreateReviewRequest{Text: "zero is a valid score", Score: score(0)})
	assert.NoError(t, err)
}

func TestUpdateReview_Permissions(t *testing.T) {
	titleID := uuid.New()
	titles := newFakeTitleRepository(titleID)
	svc := NewReviewService(newFakeReviewRepository(), titles)
	author := authenticatedUser(permissions.RoleUser)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, author, titleID, model.CreateReviewRequest{Text: "ok", Score: score(5)})
	require.NoError(t, err)

	text := "edited"

	t.Run("stranger denied", func(t *testing.T) {
		_, err := svc.UpdateReview(ctx, authenticatedUser(permissions.RoleUser), titleID, review.ID,
			model.UpdateReviewRequest{Text: &text})
		assert.ErrorIs(t, err, model.ErrPermissionDenied)
	})

	t.Run("author allowed", func(t *testing.T) {
		updated, err := svc.UpdateReview(ctx, author, titleID, review.ID, model.UpdateReviewRequest{Text: &text})
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Text)
	})

	t.Run("moderator allowed", func(t *testing.T) {
		updated, err := svc.UpdateReview(ctx, authenticatedUser(permissions.RoleModerator), titleID, review.ID,
			model.UpdateReviewRequest{Score: score(2)})
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Score)
	})

	t.Run("score change invalidates title cache", func(t *testing.T) {
		before := len(titles.invalidated)
		_, err := svc.UpdateReview(ctx, author, titleID, review.ID, model.UpdateReviewRequest{Score: score(9)})
		require.NoError(t, err)
		assert.Len(t, titles.invalidated, before+1)

		// Text-only edits leave the rating alone.
		_, err = svc.UpdateReview(ctx, author, titleID, review.ID, model.UpdateReviewRequest{Text: &text})
		require.NoError(t, err)
		assert.Len(t, titles.invalidated, before+1)
	})
}

func TestDeleteReview(t *testing.T) {
	titleID := uuid.New()
	titles := newFakeTitleRepository(titleID)
	svc := NewReviewService(newFakeReviewRepository(), titles)
	author := authenticatedUser(permissions.RoleUser)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, author, titleID, model.CreateReviewRequest{Text: "ok", Score: score(5)})
	require.NoError(t, err)

	err = svc.DeleteReview(ctx, authenticatedUser(permissions.RoleUser), titleID, review.ID)
	assert.ErrorIs(t, err, model.ErrPermissionDenied)

	require.NoError(t, svc.DeleteReview(ctx, authenticatedUser(permissions.RoleAdmin), titleID, review.ID))

	_, err = svc.GetReview(ctx, titleID, review.ID)
	assert.ErrorIs(t, err, model.ErrReviewNotFound)
}

func TestComments_ScopedByParents(t *testing.T) {
	titleID := uuid.New()
	otherTitleID := uuid.New()
	svc := NewReviewService(newFakeReviewRepository(), newFakeTitleRepository(titleID, otherTitleID))
	author := authenticatedUser(permissions.RoleUser)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, author, titleID, model.CreateReviewRequest{Text: "ok", Score: score(5)})
	require.NoError(t, err)

	comment, err := svc.CreateComment(ctx, author, titleID, review.ID, model.CreateCommentRequest{Text: "agreed"})
	require.NoError(t, err)

	// The same review id under a different title resolves to nothing.
	_, err = svc.GetComment(ctx, otherTitleID, review.ID, comment.ID)
	assert.ErrorIs(t, err, model.ErrReviewNotFound)

	got, err := svc.GetComment(ctx, titleID, review.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "agreed", got.Text)

	_, err = svc.CreateComment(ctx, author, titleID, uuid.New(), model.CreateCommentRequest{Text: "orphan"})
	assert.ErrorIs(t, err, model.ErrReviewNotFound)
}

func TestUpdateComment_Permissions(t *testing.T) {
	titleID := uuid.New()
	svc := NewReviewService(newFakeReviewRepository(), newFakeTitleRepository(titleID))
	author := authenticatedUser(permissions.RoleUser)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, author, titleID, model.CreateReviewRequest{Text: "ok", Score: score(5)})
	require.NoError(t, err)
	comment, err := svc.CreateComment(ctx, author, titleID, review.ID, model.CreateCommentRequest{Text: "mine"})
	require.NoError(t, err)

	text := "edited"
	_, err = svc.UpdateComment(ctx, authenticatedUser(permissions.RoleUser), titleID, review.ID, comment.ID,
		model.UpdateCommentRequest{Text: &text})
	assert.ErrorIs(t, err, model.ErrPermissionDenied)

	updated, err := svc.UpdateComment(ctx, author, titleID, review.ID, comment.ID,
		model.UpdateCommentRequest{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	err = svc.DeleteComment(ctx, authenticatedUser(permissions.RoleModerator), titleID, review.ID, comment.ID)
	assert.NoError(t, err)
}
