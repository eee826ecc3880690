package repositories

import (
	"context"
	"testing"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosts_DeleteHidesPostAndMedia(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db)
	ann := seedUser(t, db, "Ann", "ann@example.com")

	kept := &models.Post{UserID: ann.ID, WrittenText: "kept"}
	gone := &models.Post{UserID: ann.ID, WrittenText: "gone", Media: []models.PostMedia{{MediaPath: "posts/a.png", MediaType: "image"}}}
	require.NoError(t, repo.CreatePost(ctx, kept))
	require.NoError(t, repo.CreatePost(ctx, gone))

	loaded, err := repo.GetPostByID(ctx, gone.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Media, 1)

	require.NoError(t, repo.DeletePost(ctx, gone.ID))
	assert.ErrorIs(t, repo.DeletePost(ctx, gone.ID), ErrNotFound)
	_, err = repo.GetPostByID(ctx, gone.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var media int64
	require.NoError(t, db.Model(&models.PostMedia{}).Where("post_id = ?", gone.ID).Count(&media).Error)
	assert.Zero(t, media)

	posts, total, err := repo.GetPostsByUserIDs(ctx, []uint{ann.ID}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, kept.ID, posts[0].ID)
}

func TestCountByPostIDs(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	likes := NewPostgresLikeRepository(db)
	comments := NewPostgresCommentRepository(db)
	ann := seedUser(t, db, "Ann", "ann@example.com")
	ben := seedUser(t, db, "Ben", "ben@example.com")
	post := &models.Post{UserID: ann.ID, WrittenText: "hi"}
	require.NoError(t, NewPostgresPostRepository(db).CreatePost(ctx, post))

	require.NoError(t, likes.SaveLike(ctx, &models.Like{PostID: post.ID, UserID: ann.ID, Liked: true}))
	require.NoError(t, likes.SaveLike(ctx, &models.Like{PostID: post.ID, UserID: ben.ID, Liked: false}))
	first := &models.Comment{PostID: post.ID, UserID: ben.ID, CommentText: "one"}
	require.NoError(t, comments.CreateComment(ctx, first))
	require.NoError(t, comments.CreateComment(ctx, &models.Comment{PostID: post.ID, UserID: ann.ID, CommentText: "two"}))
	require.NoError(t, comments.DeleteComment(ctx, first.ID))

	likeCounts, err := likes.CountByPostIDs(ctx, []uint{post.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{post.ID: 1}, likeCounts)

	commentCounts, err := comments.CountByPostIDs(ctx, []uint{post.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{post.ID: 1}, commentCounts)

	liked, err := likes.GetLikedUserIDs(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{ann.ID}, liked)
}

func TestCountByPostIDs_HonoursContext(t *testing.T) {
	db := newTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPostgresLikeRepository(db).CountByPostIDs(ctx, []uint{1})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = NewPostgresCommentRepository(db).CountByPostIDs(ctx, []uint{1})
	assert.ErrorIs(t, err, context.Canceled)
}
