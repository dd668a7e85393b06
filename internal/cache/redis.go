package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	trackedOrderKey   = "order:track:%s"
	trackedVersionKey = "order:track:%s:version"
	listVersionKey    = "order:list:version"
	listKey           = "order:list:%d:%s"

	// версия трекинга живёт дольше любого TTL ответа
	trackedVersionTTL = 24 * time.Hour
)

type RedisClient struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisClient(addr, password string, db int, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Redis connected successfully", zap.String("addr", addr))

	return &RedisClient{
		client: rdb,
		log:    log,
	}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// getBytes: промах возвращается как nil, nil.
func (r *RedisClient) getBytes(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return b, err
}

func (r *RedisClient) version(ctx context.Context, key string) (int64, error) {
	v, err := r.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// setIfVersion пишет значение, только если версия не сдвинулась с момента чтения.
// KEYS[1]: ключ версии, KEYS[2]: ключ значения; ARGV: версия, значение, ttl в мс.
var setIfVersion = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if not cur then cur = '0' end
if cur ~= ARGV[1] then return 0 end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

func (r *RedisClient) storeVersioned(ctx context.Context, versionKey, key string, version int64, data []byte, ttl time.Duration) error {
	if ttl < time.Millisecond {
		ttl = time.Second
	}
	stored, err := setIfVersion.Run(ctx, r.client, []string{versionKey, key},
		strconv.FormatInt(version, 10), data, ttl.Milliseconds()).Int()
	if err != nil {
		return err
	}
	if stored == 0 {
		r.log.Debug("cache write skipped, version moved", zap.String("key", key), zap.Int64("version", version))
	}
	return nil
}

// Трекинг. Версия заказа растёт при каждом сбросе, поэтому ответ,
// прочитанный до смены статуса, в кэш уже не попадёт.
func (r *RedisClient) GetTrackedOrder(ctx context.Context, trackingID string) ([]byte, int64, error) {
	v, err := r.version(ctx, fmt.Sprintf(trackedVersionKey, trackingID))
	if err != nil {
		return nil, 0, err
	}
	b, err := r.getBytes(ctx, fmt.Sprintf(trackedOrderKey, trackingID))
	return b, v, err
}

func (r *RedisClient) SetTrackedOrder(ctx context.Context, trackingID string, version int64, data []byte, ttl time.Duration) error {
	return r.storeVersioned(ctx, fmt.Sprintf(trackedVersionKey, trackingID), fmt.Sprintf(trackedOrderKey, trackingID), version, data, ttl)
}

func (r *RedisClient) DropTrackedOrder(ctx context.Context, trackingID string) error {
	verKey := fmt.Sprintf(trackedVersionKey, trackingID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, verKey)
		pipe.Expire(ctx, verKey, trackedVersionTTL)
		pipe.Del(ctx, fmt.Sprintf(trackedOrderKey, trackingID))
		return nil
	})
	return err
}

// Списки заказов версионируются: инвалидация только увеличивает версию,
// старые страницы доживают до своего TTL.
func (r *RedisClient) GetOrderList(ctx context.Context, query string) ([]byte, int64, error) {
	v, err := r.version(ctx, listVersionKey)
	if err != nil {
		return nil, 0, err
	}
	b, err := r.getBytes(ctx, fmt.Sprintf(listKey, v, query))
	return b, v, err
}

// SetOrderList пишет страницу под версией, на которой она была прочитана.
func (r *RedisClient) SetOrderList(ctx context.Context, query string, version int64, data []byte, ttl time.Duration) error {
	return r.storeVersioned(ctx, listVersionKey, fmt.Sprintf(listKey, version, query), version, data, ttl)
}

func (r *RedisClient) InvalidateOrderLists(ctx context.Context) error {
	return r.client.Incr(ctx, listVersionKey).Err()
}
