package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/devconnect/internal/cache"
	"github.com/d60-Lab/devconnect/internal/model"
	"github.com/d60-Lab/devconnect/internal/repository"
)

func setupCachedPostService(t *testing.T) (PostService, repository.UserRepository, *miniredis.Miniredis) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Like{}, &model.Comment{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	feed := cache.NewFeedCache(rdb, time.Minute)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	return NewPostService(postRepo, userRepo, feed), userRepo, mr
}

func TestListPostsPopulatesFeedCache(t *testing.T) {
	svc, users, mr := setupCachedPostService(t)
	ctx := context.Background()
	u1 := seedUser(t, users, "alice")

	_, err := svc.CreatePost(ctx, u1, "hello")
	require.NoError(t, err)

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.True(t, mr.Exists("feed:posts"))

	// 缓存命中也必须返回同样的内容
	again, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, posts[0].ID, again[0].ID)
}

func TestMutationsInvalidateFeedCache(t *testing.T) {
	svc, users, mr := setupCachedPostService(t)
	ctx := context.Background()
	u1 := seedUser(t, users, "alice")
	u2 := seedUser(t, users, "bob")

	post, err := svc.CreatePost(ctx, u1, "hello")
	require.NoError(t, err)

	_, err = svc.ListPosts(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists("feed:posts"))

	_, err = svc.LikePost(ctx, post.ID, u2)
	require.NoError(t, err)
	assert.False(t, mr.Exists("feed:posts"), "like must invalidate the feed")

	// 失效后下一次读取看到新状态
	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Len(t, posts[0].Likes, 1)
}
