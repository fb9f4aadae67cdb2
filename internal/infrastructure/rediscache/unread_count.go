package rediscache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Avicola-api/internal/application/notification"
	"github.com/jhoicas/Avicola-api/pkg/config"
	"github.com/jhoicas/Avicola-api/pkg/logger"
)

var _ notification.UnreadCountCache = (*UnreadCountCache)(nil)

// UnreadCountCache caché Redis del contador de notificaciones no leídas.
// Los errores de Redis nunca se propagan: se registran y se responde "miss",
// así el endpoint de polling sigue funcionando contra PostgreSQL.
type UnreadCountCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// New conecta el cliente Redis y valida con Ping. Devuelve error si no hay conexión;
// el caller decide si opera sin caché.
func New(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*UnreadCountCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	ttl := time.Duration(cfg.TTLSecs) * time.Second
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &UnreadCountCache{client: client, ttl: ttl, log: log}, nil
}

func key(userID string) string {
	return "notifications:unread:" + userID
}

// Get devuelve el contador cacheado; (0, false) en miss o error.
func (c *UnreadCountCache) Get(ctx context.Context, userID string) (int, bool) {
	val, err := c.client.Get(ctx, key(userID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("redis get falló; se consulta la BD")
		}
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Set guarda el contador con TTL corto.
func (c *UnreadCountCache) Set(ctx context.Context, userID string, count int) {
	if err := c.client.Set(ctx, key(userID), strconv.Itoa(count), c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("redis set falló")
	}
}

// Invalidate borra la entrada (tras crear/leer/eliminar notificaciones).
func (c *UnreadCountCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, key(userID)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("redis del falló")
	}
}

// Close cierra el cliente.
func (c *UnreadCountCache) Close() error {
	return c.client.Close()
}
