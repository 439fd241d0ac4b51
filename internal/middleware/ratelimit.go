package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"click-tracker/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const rateLimitKeyPrefix = "ratelimit:"

// RateLimit 全局限流中间件。
// 有 Redis 时按客户端 IP 做每分钟固定窗口计数, 否则退化为进程内令牌桶。
func RateLimit(redisClient *redis.Client, limitConfig *config.Limit) gin.HandlerFunc {
	if !limitConfig.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	allow := memoryLimiter(limitConfig)
	if redisClient != nil {
		allow = redisLimiter(redisClient, limitConfig, allow)
	}

	return func(c *gin.Context) {
		// 跳过特定路径
		for _, path := range limitConfig.SkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		if !allow(c) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "请求过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

type allowFunc func(c *gin.Context) bool

// 基于内存的限流器, 所有客户端共享一个令牌桶
func memoryLimiter(limitConfig *config.Limit) allowFunc {
	limiter := rate.NewLimiter(rate.Limit(float64(limitConfig.Requests)/60), int(limitConfig.Burst))
	var mu sync.Mutex

	return func(c *gin.Context) bool {
		mu.Lock()
		defer mu.Unlock()
		return limiter.Allow()
	}
}

// Redis 固定窗口计数, Redis 出错时交给 fallback
func redisLimiter(rdb *redis.Client, limitConfig *config.Limit, fallback allowFunc) allowFunc {
	limit := limitConfig.Requests + limitConfig.Burst

	return func(c *gin.Context) bool {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 200*time.Millisecond)
		defer cancel()

		window := time.Now().Unix() / 60
		key := rateLimitKeyPrefix + c.ClientIP() + ":" + strconv.FormatInt(window, 10)

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, 2*time.Minute)
		if _, err := pipe.Exec(ctx); err != nil {
			zap.S().Warnf("限流计数失败, 使用内存限流: %v", err)
			return fallback(c)
		}
		return incr.Val() <= limit
	}
}
