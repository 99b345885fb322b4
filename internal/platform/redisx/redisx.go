package redisx

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"simba-catalog-server/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "simba"

var (
	clientOnce sync.Once
	client     *redis.Client
)

// GetClient 返回全局 Redis 客户端；未启用或连接失败时返回 nil，调用方应降级为内存实现。
func GetClient() *redis.Client {
	clientOnce.Do(func() {
		client = Connect(config.Get().Redis)
	})
	return client
}

// Connect 按配置建立连接并 Ping 校验，失败返回 nil
func Connect(cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled {
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		log.Printf("⚠️ Redis 不可用，降级为内存模式: %v", err)
		return nil
	}

	log.Printf("✅ Redis 已连接: %s (db=%d)", cfg.Addr, cfg.DB)
	return c
}

// Key 基于配置前缀拼接键名，如 simba:ratelimit:upload:1.2.3.4
func Key(parts ...string) string {
	prefix := strings.TrimSpace(config.Get().Redis.Prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	return strings.Join(append([]string{prefix}, parts...), ":")
}

func Close() error {
	if client == nil {
		return nil
	}
	if err := client.Close(); err != nil {
		return fmt.Errorf("close redis failed: %w", err)
	}
	return nil
}
