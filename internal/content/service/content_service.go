package service

import (
	"context"
	"errors"
	"time"

	"github.com/fidel-otieno2/KinKeep.app/internal/content/domain"
	"github.com/fidel-otieno2/KinKeep.app/internal/content/repository"
	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
	identityrepo "github.com/fidel-otieno2/KinKeep.app/internal/identity/repository"
	socialdomain "github.com/fidel-otieno2/KinKeep.app/internal/social/domain"
	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
)

const storyLifetime = 24 * time.Hour

type contentService struct {
	posts repository.PostRepository
	users identityrepo.UserRepository
}

var _ ContentService = (*contentService)(nil)

func NewContentService(posts repository.PostRepository, users identityrepo.UserRepository) ContentService {
	return &contentService{posts: posts, users: users}
}

func (s *contentService) CreatePost(ctx context.Context, userID uint, req *domain.CreatePostRequest) (*domain.PostResponse, error) {
	kind := domain.PostKind(req.Kind)
	if req.Kind == "" {
		kind = domain.PostKindPost
	}
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}

	post := domain.Post{
		UserID:     userID,
		FamilyID:   req.FamilyID,
		Kind:       kind,
		Caption:    req.Caption,
		MediaURLs:  req.MediaURLs,
		MediaType:  req.MediaType,
		Location:   req.Location,
		Visibility: req.Visibility,
	}
	if post.MediaType == "" {
		post.MediaType = "photo"
	}
	if post.Visibility == "" {
		post.Visibility = domain.VisibilityPublic
	}
	if kind == domain.PostKindStory {
		expires := time.Now().UTC().Add(storyLifetime)
		post.ExpiresAt = &expires
	}

	if err := s.posts.Create(ctx, &post); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Uint("post_id", post.ID).Str("kind", string(kind)).Msg("post created")
	return s.toResponse(ctx, &post)
}

func (s *contentService) GetPost(ctx context.Context, id uint) (*domain.PostResponse, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return s.toResponse(ctx, post)
}

func (s *contentService) ListPosts(ctx context.Context, viewerID uint, feedType string, authorID *uint, page, limit int) (*domain.PostListResponse, error) {
	q := repository.ListQuery{
		ViewerID: viewerID,
		AuthorID: authorID,
		Page:     page,
		Limit:    limit,
	}
	switch feedType {
	case FeedTypeFeed, "":
		q.Kind = domain.PostKindPost
		q.FollowedOnly = authorID == nil
	case FeedTypeStories:
		q.Kind = domain.PostKindStory
		q.FollowedOnly = authorID == nil
		q.UnexpiredOnly = true
	case FeedTypeReels:
		q.Kind = domain.PostKindReel
	default:
		return nil, ErrInvalidFeedType
	}

	posts, total, err := s.posts.List(ctx, q)
	if err != nil {
		return nil, err
	}
	views, err := s.toResponses(ctx, posts)
	if err != nil {
		return nil, err
	}
	return &domain.PostListResponse{Posts: views, Total: total, Page: page, Limit: limit}, nil
}

func (s *contentService) ToggleLike(ctx context.Context, userID, postID uint) (socialdomain.ToggleAction, error) {
	if err := s.ensurePostExists(ctx, postID); err != nil {
		return "", err
	}
	return s.posts.ToggleLike(ctx, userID, postID)
}

func (s *contentService) ToggleSave(ctx context.Context, userID, postID uint) (socialdomain.ToggleAction, error) {
	if err := s.ensurePostExists(ctx, postID); err != nil {
		return "", err
	}
	return s.posts.ToggleSave(ctx, userID, postID)
}

func (s *contentService) SavedPosts(ctx context.Context, userID uint, page, limit int) (*domain.PostListResponse, error) {
	posts, total, err := s.posts.SavedPosts(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	views, err := s.toResponses(ctx, posts)
	if err != nil {
		return nil, err
	}
	return &domain.PostListResponse{Posts: views, Total: total, Page: page, Limit: limit}, nil
}

func (s *contentService) AddComment(ctx context.Context, userID, postID uint, req *domain.CreateCommentRequest) (*domain.CommentResponse, error) {
	if err := s.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}
	comment := domain.Comment{
		UserID:   userID,
		PostID:   postID,
		Content:  req.Content,
		ParentID: req.ParentID,
	}
	if err := s.posts.CreateComment(ctx, &comment); err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := commentResponse(&comment, author)
	return &view, nil
}

func (s *contentService) ListComments(ctx context.Context, postID uint) ([]domain.CommentResponse, error) {
	if err := s.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.posts.Comments(ctx, postID)
	if err != nil {
		return nil, err
	}
	authors, err := s.authorsFor(ctx, commentAuthorIDs(comments))
	if err != nil {
		return nil, err
	}
	views := make([]domain.CommentResponse, 0, len(comments))
	for i := range comments {
		views = append(views, commentResponse(&comments[i], authors[comments[i].UserID]))
	}
	return views, nil
}

func (s *contentService) ensurePostExists(ctx context.Context, postID uint) error {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

func (s *contentService) toResponse(ctx context.Context, post *domain.Post) (*domain.PostResponse, error) {
	views, err := s.toResponses(ctx, []domain.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *contentService) toResponses(ctx context.Context, posts []domain.Post) ([]domain.PostResponse, error) {
	ids := make([]uint, 0, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	seen := make(map[uint]bool, len(posts))
	for i := range posts {
		ids = append(ids, posts[i].ID)
		if !seen[posts[i].UserID] {
			seen[posts[i].UserID] = true
			authorIDs = append(authorIDs, posts[i].UserID)
		}
	}

	counts, err := s.posts.CountsForPosts(ctx, ids)
	if err != nil {
		return nil, err
	}
	authors, err := s.authorsFor(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]domain.PostResponse, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		view := domain.PostResponse{
			ID:            p.ID,
			FamilyID:      p.FamilyID,
			Kind:          p.Kind,
			Caption:       p.Caption,
			MediaURLs:     p.MediaURLs,
			MediaType:     p.MediaType,
			Location:      p.Location,
			Visibility:    p.Visibility,
			ExpiresAt:     p.ExpiresAt,
			LikesCount:    counts[p.ID].Likes,
			CommentsCount: counts[p.ID].Comments,
			CreatedAt:     p.CreatedAt,
		}
		if author := authors[p.UserID]; author != nil {
			view.Author = domain.AuthorViewFromUser(author)
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *contentService) authorsFor(ctx context.Context, ids []uint) (map[uint]*identitydomain.User, error) {
	authors := make(map[uint]*identitydomain.User, len(ids))
	for _, id := range ids {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, identityrepo.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		authors[id] = user
	}
	return authors, nil
}

func commentAuthorIDs(comments []domain.Comment) []uint {
	seen := make(map[uint]bool, len(comments))
	ids := make([]uint, 0, len(comments))
	for i := range comments {
		if !seen[comments[i].UserID] {
			seen[comments[i].UserID] = true
			ids = append(ids, comments[i].UserID)
		}
	}
	return ids
}

func commentResponse(c *domain.Comment, author *identitydomain.User) domain.CommentResponse {
	view := domain.CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
	}
	if author != nil {
		view.Author = domain.AuthorViewFromUser(author)
	}
	return view
}
