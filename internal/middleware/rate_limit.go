package middleware

import (
	"context"
	"log"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"simba-catalog-server/internal/platform/redisx"
	"simba-catalog-server/internal/platform/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type IPRateLimiter struct {
	ips sync.Map
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		r: r,
		b: b,
	}

	go i.cleanupLoop()

	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	i.ips.Store(ip, &client{limiter: limiter, lastSeen: time.Now()})

	return limiter
}

func (i *IPRateLimiter) cleanupLoop() {
	for {
		time.Sleep(1 * time.Minute)
		i.ips.Range(func(key, value any) bool {
			c := value.(*client)
			if time.Since(c.lastSeen) > 3*time.Minute {
				i.ips.Delete(key)
			}
			return true
		})
	}
}

// UploadRateLimitMiddleware 按客户端 IP 限制写接口频率
// Redis 可用时使用固定窗口计数（多实例共享），否则或 Redis 出错时回退本进程令牌桶
func UploadRateLimitMiddleware(appService *service.AppService) gin.HandlerFunc {
	var limiter *IPRateLimiter
	var once sync.Once

	return func(c *gin.Context) {
		// rps 或 burst 非正视为不限流，与 Redis 路径一致
		enabled, rps, burst := appService.UploadRateLimit()
		if !enabled || rps <= 0 || burst <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()

		if redisClient := redisx.GetClient(); redisClient != nil {
			ok, err := allowByRedisRateLimit(redisClient, redisx.Key("ratelimit", "upload", ip), rps, burst)
			if err == nil {
				if !ok {
					abortTooManyRequests(c)
					return
				}
				c.Next()
				return
			}
			log.Printf("⚠️ Redis 限流失败，回退内存限流: %v", err)
		}

		once.Do(func() {
			limiter = NewIPRateLimiter(rate.Limit(rps), burst)
		})

		l := limiter.getLimiter(ip)

		// 配置热更新后同步到已有的 limiter
		if l.Limit() != rate.Limit(rps) {
			l.SetLimit(rate.Limit(rps))
		}
		if l.Burst() != burst {
			l.SetBurst(burst)
		}

		if !l.Allow() {
			abortTooManyRequests(c)
			return
		}
		c.Next()
	}
}

func abortTooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "请求过于频繁，请稍后再试"})
	c.Abort()
}

// allowByRedisRateLimit 每秒一个窗口，窗口内最多 max(burst, ceil(rps)) 次
// rps 或 burst 非正时视为不限流
func allowByRedisRateLimit(client *redis.Client, key string, rps float64, burst int) (bool, error) {
	if rps <= 0 || burst <= 0 {
		return true, nil
	}

	limit := int64(burst)
	if perSecond := int64(math.Ceil(rps)); perSecond > limit {
		limit = perSecond
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	windowKey := key + ":" + strconv.FormatInt(time.Now().Unix(), 10)

	pipe := client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, 2*time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= limit, nil
}
