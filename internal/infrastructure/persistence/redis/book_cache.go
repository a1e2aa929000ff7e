package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/unibookshop/unibookshop/internal/domain/book"
)

// BookCache 图书详情缓存
// 设计说明：
// 1. 详情页读多写少，JSON整体缓存，TTL兜底
// 2. 写路径（更新/下架/库存变动）主动失效，而不是更新缓存——
//    避免并发写导致的旧值覆盖
// 3. 缓存故障只记日志不上抛，Redis挂掉时退化为直查数据库
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

func bookKey(id uint) string {
	return fmt.Sprintf("ubs:book:%d", id)
}

// Get 读缓存；未命中或故障时返回(nil, false)
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, bool) {
	data, err := c.client.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.WithError(err).Warn("读取图书缓存失败")
		}
		return nil, false
	}

	var b book.Book
	if err := json.Unmarshal(data, &b); err != nil {
		logrus.WithError(err).Warn("图书缓存反序列化失败")
		return nil, false
	}
	return &b, true
}

// Set 写缓存
func (c *BookCache) Set(ctx context.Context, b *book.Book) {
	data, err := json.Marshal(b)
	if err != nil {
		logrus.WithError(err).Warn("图书缓存序列化失败")
		return
	}
	if err := c.client.Set(ctx, bookKey(b.ID), data, c.ttl).Err(); err != nil {
		logrus.WithError(err).Warn("写入图书缓存失败")
	}
}

// Invalidate 主动失效（更新/下架/库存变动后调用）
func (c *BookCache) Invalidate(ctx context.Context, id uint) {
	if err := c.client.Del(ctx, bookKey(id)).Err(); err != nil {
		logrus.WithError(err).Warn("失效图书缓存失败")
	}
}
