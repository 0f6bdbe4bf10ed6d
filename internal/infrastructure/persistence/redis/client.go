package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
)

// NewClient 创建Redis客户端
// 设计说明：
// 1. 会话、令牌黑名单、验证/重置令牌、邮件限流共用同一个客户端
// 2. 连接池与超时参数全部来自配置（PoolSize、MinIdleConns、各超时）
// 3. 启动时Ping探活，Redis不可用则直接失败，避免带病启动
func NewClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	fmt.Println("✓ Redis连接成功")
	return client, nil
}
