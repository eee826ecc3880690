package services

import (
	"context"
	"sort"
	"time"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/repositories"
	"github.com/anonto42/friendbook/backend/pkg/pagination"
)

// FeedService assembles the posts and stories a user may see.
type FeedService struct {
	users       repositories.UserRepository
	friendships repositories.FriendshipRepository
	posts       repositories.PostRepository
	stories     repositories.StoryRepository
	likes       repositories.LikeRepository
	comments    repositories.CommentRepository
	storyWindow time.Duration
	now         func() time.Time
}

func NewFeedService(
	users repositories.UserRepository,
	friendships repositories.FriendshipRepository,
	posts repositories.PostRepository,
	stories repositories.StoryRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	storyWindow time.Duration,
) *FeedService {
	return &FeedService{
		users:       users,
		friendships: friendships,
		posts:       posts,
		stories:     stories,
		likes:       likes,
		comments:    comments,
		storyWindow: storyWindow,
		now:         time.Now,
	}
}

// PostFeed returns the user's own posts when ownOnly is set or the user has no
// friends, otherwise own and friends' posts, newest first.
func (s *FeedService) PostFeed(ctx context.Context, userID uint, ownOnly bool, p pagination.Params) (pagination.Page[models.FeedPost], error) {
	authors := []uint{userID}
	if !ownOnly {
		friendIDs, err := s.friendships.GetFriendIDs(ctx, userID)
		if err != nil {
			return pagination.Page[models.FeedPost]{}, err
		}
		authors = uniqueIDs(append(authors, friendIDs...))
	}
	return s.postsBy(ctx, authors, p)
}

// UserPosts pages one user's posts for a profile page.
func (s *FeedService) UserPosts(ctx context.Context, userID uint, p pagination.Params) (pagination.Page[models.FeedPost], error) {
	return s.postsBy(ctx, []uint{userID}, p)
}

func (s *FeedService) postsBy(ctx context.Context, authors []uint, p pagination.Params) (pagination.Page[models.FeedPost], error) {
	var empty pagination.Page[models.FeedPost]
	posts, total, err := s.posts.GetPostsByUserIDs(ctx, authors, p.Offset(), p.Limit())
	if err != nil {
		return empty, err
	}
	posts = uniquePosts(posts)
	records, err := s.enrichPosts(ctx, posts)
	if err != nil {
		return empty, err
	}
	return pagination.NewPage(records, total), nil
}

// StoryFeed returns own and friends' stories inside the story window, own first.
func (s *FeedService) StoryFeed(ctx context.Context, userID uint, p pagination.Params) (pagination.Page[models.FeedStory], error) {
	var empty pagination.Page[models.FeedStory]
	friendIDs, err := s.friendships.GetFriendIDs(ctx, userID)
	if err != nil {
		return empty, err
	}
	authors := uniqueIDs(append([]uint{userID}, friendIDs...))

	stories, err := s.stories.GetStoriesByUserIDs(ctx, authors, s.now().Add(-s.storyWindow))
	if err != nil {
		return empty, err
	}
	stories = uniqueStories(stories)
	sort.SliceStable(stories, func(i, j int) bool {
		iOwn, jOwn := stories[i].UserID == userID, stories[j].UserID == userID
		if iOwn != jOwn {
			return iOwn
		}
		return stories[i].CreatedAt.After(stories[j].CreatedAt)
	})

	page := pagination.Slice(stories, p)
	records, err := enrichStories(ctx, s.users, userID, page.Records)
	if err != nil {
		return empty, err
	}
	return pagination.Page[models.FeedStory]{
		Records:              records,
		RecordsOnThisPage:    len(records),
		TotalMatchingRecords: page.TotalMatchingRecords,
	}, nil
}

func (s *FeedService) enrichPosts(ctx context.Context, posts []models.Post) ([]models.FeedPost, error) {
	return enrichPosts(ctx, s.users, s.likes, s.comments, posts)
}

func enrichPosts(ctx context.Context, users repositories.UserRepository, likes repositories.LikeRepository, comments repositories.CommentRepository, posts []models.Post) ([]models.FeedPost, error) {
	if len(posts) == 0 {
		return []models.FeedPost{}, nil
	}
	postIDs := make([]uint, len(posts))
	authorIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		authorIDs[i] = p.UserID
	}

	authors, err := userIndex(ctx, users, authorIDs)
	if err != nil {
		return nil, err
	}
	likeCounts, err := likes.CountByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := comments.CountByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.FeedPost, len(posts))
	for i, p := range posts {
		media := p.Media
		if media == nil {
			media = []models.PostMedia{}
		}
		out[i] = models.FeedPost{
			ID:           p.ID,
			Author:       authors[p.UserID],
			WrittenText:  p.WrittenText,
			Media:        media,
			LikeCount:    likeCounts[p.ID],
			CommentCount: commentCounts[p.ID],
			CreatedAt:    p.CreatedAt,
		}
	}
	return out, nil
}

func enrichStories(ctx context.Context, users repositories.UserRepository, viewerID uint, stories []models.Story) ([]models.FeedStory, error) {
	ids := make([]uint, len(stories))
	for i, st := range stories {
		ids[i] = st.UserID
	}
	authors, err := userIndex(ctx, users, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.FeedStory, len(stories))
	for i, st := range stories {
		out[i] = models.FeedStory{
			ID:          st.ID.Hex(),
			Author:      authors[st.UserID],
			MediaPath:   st.MediaPath,
			MediaType:   st.MediaType,
			WrittenText: st.WrittenText,
			CreatedAt:   st.CreatedAt,
			IsOwn:       st.UserID == viewerID,
		}
	}
	return out, nil
}

// userIndex loads the compact profile of every distinct id.
func userIndex(ctx context.Context, users repositories.UserRepository, ids []uint) (map[uint]models.UserCompact, error) {
	found, err := users.GetUsersByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	index := make(map[uint]models.UserCompact, len(found))
	for i := range found {
		index[found[i].ID] = found[i].ToCompact()
	}
	return index, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func uniquePosts(posts []models.Post) []models.Post {
	seen := make(map[uint]bool, len(posts))
	out := posts[:0]
	for _, p := range posts {
		if !seen[p.ID] {
			seen[p.ID] = true
			out = append(out, p)
		}
	}
	return out
}

func uniqueStories(stories []models.Story) []models.Story {
	seen := make(map[string]bool, len(stories))
	out := stories[:0]
	for _, st := range stories {
		key := st.ID.Hex()
		if !seen[key] {
			seen[key] = true
			out = append(out, st)
		}
	}
	return out
}
