package service

import (
	"context"
	"strings"
	"testing"

	"coursehub/internal/models"
	"coursehub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Lifecycle(t *testing.T) {
	f := newFixture(t, 2)
	svc := NewCommentService(repository.NewCommentRepository(f.db), repository.NewCourseRepository(f.db))
	ctx := context.Background()
	author, other := f.students[0].ID, f.students[1].ID

	_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: author, CourseID: 999, Comment: "hello"})
	assertCode(t, err, models.CodeNotFound)

	_, err = svc.CreateComment(ctx, CreateCommentInput{UserID: author, CourseID: f.course.ID})
	assertCode(t, err, models.CodeValidation)

	_, err = svc.CreateComment(ctx, CreateCommentInput{UserID: author, CourseID: f.course.ID, Comment: strings.Repeat("x", maxCommentLen+1)})
	assertCode(t, err, models.CodeValidation)

	created, err := svc.CreateComment(ctx, CreateCommentInput{UserID: author, CourseID: f.course.ID, Comment: "hello"})
	require.NoError(t, err)
	assert.Equal(t, author, created.User.ID)

	_, err = svc.UpdateComment(ctx, UpdateCommentInput{UserID: other, CommentID: created.ID, Comment: "mine now"})
	assertCode(t, err, models.CodeForbidden)
	_, err = svc.DeleteComment(ctx, DeleteCommentInput{UserID: other, CommentID: created.ID})
	assertCode(t, err, models.CodeForbidden)

	updated, err := svc.UpdateComment(ctx, UpdateCommentInput{UserID: author, CommentID: created.ID, Comment: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Comment)

	list, err := svc.ListComments(ctx, f.course.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.DeleteComment(ctx, DeleteCommentInput{UserID: author, CommentID: created.ID})
	require.NoError(t, err)
	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFeedbackService_Ownership(t *testing.T) {
	f := newFixture(t, 2)
	svc := NewFeedbackService(repository.NewFeedbackRepository(f.db), repository.NewCourseRepository(f.db))
	ctx := context.Background()
	author, other := f.students[0].ID, f.students[1].ID

	created, err := svc.CreateFeedback(ctx, FeedbackInput{UserID: author, CourseID: f.course.ID, Comment: "More exercises"})
	require.NoError(t, err)

	_, err = svc.UpdateFeedback(ctx, FeedbackInput{UserID: other, FeedbackID: created.ID, Comment: "nope"})
	assertCode(t, err, models.CodeForbidden)
	_, err = svc.DeleteFeedback(ctx, other, created.ID)
	assertCode(t, err, models.CodeForbidden)

	_, err = svc.ListFeedbacks(ctx, 12345)
	assertCode(t, err, models.CodeNotFound)

	list, err := svc.ListFeedbacks(ctx, f.course.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "More exercises", list[0].Comment)

	_, err = svc.DeleteFeedback(ctx, author, created.ID)
	require.NoError(t, err)
}
