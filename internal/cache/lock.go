package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 仅当持有者 token 匹配时删除
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// OrderLockKey 订单交付锁 key
func OrderLockKey(orderID uint) string {
	return fmt.Sprintf("lock:order:%d", orderID)
}

// TryLock 尝试获取分布式锁（SET NX PX），未启用 Redis 时直接视为成功
func TryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	if !Enabled() {
		return true, nil
	}
	return redisClient.SetNX(ctx, buildKey(key), token, ttl).Result()
}

// Unlock 释放分布式锁
func Unlock(ctx context.Context, key, token string) error {
	if !Enabled() {
		return nil
	}
	return releaseLockScript.Run(ctx, redisClient, []string{buildKey(key)}, token).Err()
}
