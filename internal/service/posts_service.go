package service

import (
	"context"

	"go.uber.org/zap"
)

// PostsFetcher 外部抓取服务的只读口。
type PostsFetcher interface {
	FetchPosts(ctx context.Context) ([]string, error)
}

// PostsCache 抓取结果的 TTL 缓存。
type PostsCache interface {
	Get(ctx context.Context) ([]string, bool, error)
	Set(ctx context.Context, posts []string) error
}

// PostsService 只读的帖子信息流：缓存优先，抓取失败降级为空列表。
type PostsService struct {
	fetcher PostsFetcher
	cache   PostsCache
	log     *zap.Logger
}

func NewPostsService(fetcher PostsFetcher, cache PostsCache, log *zap.Logger) *PostsService {
	return &PostsService{fetcher: fetcher, cache: cache, log: log}
}

// ListPosts 永远返回一个列表：任何失败都按空结果处理，不向上抛错。
func (s *PostsService) ListPosts(ctx context.Context) []string {
	if s.cache != nil {
		if posts, ok, err := s.cache.Get(ctx); err == nil && ok {
			return posts
		} else if err != nil {
			s.log.Warn("读取帖子缓存失败", zap.Error(err))
		}
	}

	posts, err := s.fetcher.FetchPosts(ctx)
	if err != nil {
		s.log.Warn("拉取帖子失败", zap.Error(err))
		return []string{}
	}
	if posts == nil {
		posts = []string{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, posts); err != nil {
			s.log.Warn("写入帖子缓存失败", zap.Error(err))
		}
	}
	return posts
}
