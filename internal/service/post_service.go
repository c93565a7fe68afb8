package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/devconnect/internal/cache"
	"github.com/d60-Lab/devconnect/internal/model"
	"github.com/d60-Lab/devconnect/internal/repository"
)

// PostService 帖子业务逻辑：创建/读取/删除、点赞切换、评论增删。
// 所有权校验只允许作者本人删除自己的帖子或评论。
type PostService interface {
	CreatePost(ctx context.Context, authorID, text string) (*model.Post, error)
	ListPosts(ctx context.Context) ([]*model.Post, error)
	GetPost(ctx context.Context, postID string) (*model.Post, error)
	DeletePost(ctx context.Context, postID, requesterID string) error

	LikePost(ctx context.Context, postID, userID string) ([]model.Like, error)
	UnlikePost(ctx context.Context, postID, userID string) ([]model.Like, error)

	AddComment(ctx context.Context, postID, authorID, text string) ([]model.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID, requesterID string) ([]model.Comment, error)
}

type postService struct {
	posts repository.PostRepository
	users repository.UserRepository
	feed  *cache.FeedCache // nil 时不启用缓存
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, feed *cache.FeedCache) PostService {
	return &postService{posts: posts, users: users, feed: feed}
}

func (s *postService) invalidateFeed(ctx context.Context) {
	if s.feed != nil {
		s.feed.Invalidate(ctx)
	}
}

func (s *postService) CreatePost(ctx context.Context, authorID, text string) (*model.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	// 创建时快照作者展示信息，之后不再与 User 同步
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	post := &model.Post{
		ID:           uuid.New().String(),
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Text:         text,
		CreatedAt:    time.Now(),
		Likes:        []model.Like{},
		Comments:     []model.Comment{},
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	s.invalidateFeed(ctx)
	return post, nil
}

func (s *postService) ListPosts(ctx context.Context) ([]*model.Post, error) {
	if s.feed != nil {
		if posts, ok := s.feed.Get(ctx); ok {
			return posts, nil
		}
	}
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.feed != nil {
		s.feed.Set(ctx, posts)
	}
	return posts, nil
}

func (s *postService) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, postID, requesterID string) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID {
		return ErrForbidden
	}
	// 删除语句自带 author 谓词，存在性/所有权在同一条语句里再次生效
	rows, err := s.posts.Delete(ctx, postID, requesterID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	s.invalidateFeed(ctx)
	return nil
}

func (s *postService) LikePost(ctx context.Context, postID, userID string) ([]model.Like, error) {
	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	// 唯一键兜底：并发双写只会成功一次
	inserted, err := s.posts.AddLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, ErrAlreadyLiked
	}
	s.invalidateFeed(ctx)
	return s.posts.Likes(ctx, postID)
}

func (s *postService) UnlikePost(ctx context.Context, postID, userID string) ([]model.Like, error) {
	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	removed, err := s.posts.RemoveLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, ErrNotLiked
	}
	s.invalidateFeed(ctx)
	return s.posts.Likes(ctx, postID)
}

func (s *postService) AddComment(ctx context.Context, postID, authorID, text string) ([]model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	comment := &model.Comment{
		ID:           uuid.New().String(),
		PostID:       postID,
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Text:         text,
		CreatedAt:    time.Now(),
	}
	if err := s.posts.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	s.invalidateFeed(ctx)
	return s.posts.Comments(ctx, postID)
}

func (s *postService) DeleteComment(ctx context.Context, postID, commentID, requesterID string) ([]model.Comment, error) {
	// 定位的是 commentID 指向的评论本身，而不是请求者名下的任意评论
	comment, err := s.posts.GetComment(ctx, postID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if comment.AuthorID != requesterID {
		return nil, ErrForbidden
	}
	rows, err := s.posts.DeleteComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	s.invalidateFeed(ctx)
	return s.posts.Comments(ctx, postID)
}
