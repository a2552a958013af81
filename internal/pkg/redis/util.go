package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值
func GetValue(ctx context.Context, key string) (string, error) {
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// GetInt64 获取整型值，键不存在返回 redis.Nil
func GetInt64(ctx context.Context, key string) (int64, error) {
	return Rdb.Get(ctx, key).Int64()
}

// Incr 原子自增
func Incr(ctx context.Context, key string) (int64, error) {
	return Rdb.Incr(ctx, key).Result()
}

// IncrBy 按增量原子调整
func IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	return Rdb.IncrBy(ctx, key, delta).Result()
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	return Rdb.Del(ctx, key).Err()
}

// Expire 设置过期时间
func Expire(ctx context.Context, key string, expiration time.Duration) error {
	return Rdb.Expire(ctx, key, expiration).Err()
}

// SAdd 向集合添加成员
func SAdd(ctx context.Context, key string, members ...interface{}) error {
	return Rdb.SAdd(ctx, key, members...).Err()
}

// SRem 从集合移除成员
func SRem(ctx context.Context, key string, members ...interface{}) error {
	return Rdb.SRem(ctx, key, members...).Err()
}

// SIsMember 判断成员是否在集合中
func SIsMember(ctx context.Context, key string, member interface{}) (bool, error) {
	return Rdb.SIsMember(ctx, key, member).Result()
}

// SMembers 获取集合全部成员
func SMembers(ctx context.Context, key string) ([]string, error) {
	return Rdb.SMembers(ctx, key).Result()
}

// Rename 重命名 key，源 key 不存在时返回错误
func Rename(ctx context.Context, key, newKey string) error {
	return Rdb.Rename(ctx, key, newKey).Err()
}

// Publish 向频道发布消息
func Publish(ctx context.Context, channel string, payload interface{}) error {
	return Rdb.Publish(ctx, channel, payload).Err()
}

// Subscribe 订阅一个或多个频道
func Subscribe(ctx context.Context, channels ...string) *redis.PubSub {
	return Rdb.Subscribe(ctx, channels...)
}

// GetRdbClient 获取redis客户端
func GetRdbClient() *redis.Client {
	return Rdb
}
