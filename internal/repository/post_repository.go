package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/devconnect/internal/model"
)

// PostRepository 帖子仓储。likes/comments 的所有变更都是单条带谓词的原子语句，
// 并发下不会出现 load-then-save 覆盖。
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*model.Post, error)
	// Delete 仅删除 authorID 拥有的帖子，返回删除行数
	Delete(ctx context.Context, postID, authorID string) (int64, error)

	// AddLike 依赖 (post_id, user_id) 唯一键做条件插入；已点赞时返回 false
	AddLike(ctx context.Context, postID, userID string) (bool, error)
	// RemoveLike 条件删除；未点赞时返回 false
	RemoveLike(ctx context.Context, postID, userID string) (bool, error)
	Likes(ctx context.Context, postID string) ([]model.Like, error)

	AddComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, postID, commentID string) (*model.Comment, error)
	// DeleteComment 按 comment_id 条件删除，返回删除行数
	DeleteComment(ctx context.Context, postID, commentID string) (int64, error)
	Comments(ctx context.Context, postID string) ([]model.Comment, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func newestFirst(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }

// 保证 likes/comments 序列化为 [] 而不是 null
func normalize(p *model.Post) {
	if p.Likes == nil {
		p.Likes = []model.Like{}
	}
	if p.Comments == nil {
		p.Comments = []model.Comment{}
	}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).
		Preload("Likes", newestFirst).
		Preload("Comments", newestFirst).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	normalize(&p)
	return &p, nil
}

func (r *postRepository) Exists(ctx context.Context, id string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *postRepository) List(ctx context.Context) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := r.db.WithContext(ctx).
		Preload("Likes", newestFirst).
		Preload("Comments", newestFirst).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		normalize(p)
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, postID, authorID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", postID, authorID).
		Delete(&model.Post{})
	return res.RowsAffected, res.Error
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID string) (bool, error) {
	like := &model.Like{ID: uuid.New().String(), PostID: postID, UserID: userID, CreatedAt: time.Now()}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *postRepository) Likes(ctx context.Context, postID string) ([]model.Like, error) {
	likes := make([]model.Like, 0)
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&likes).Error
	return likes, err
}

func (r *postRepository) AddComment(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *postRepository) GetComment(ctx context.Context, postID, commentID string) (*model.Comment, error) {
	var c model.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postRepository) DeleteComment(ctx context.Context, postID, commentID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ?", commentID, postID).
		Delete(&model.Comment{})
	return res.RowsAffected, res.Error
}

func (r *postRepository) Comments(ctx context.Context, postID string) ([]model.Comment, error) {
	comments := make([]model.Comment, 0)
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}
