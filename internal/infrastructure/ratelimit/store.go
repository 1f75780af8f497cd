// Package ratelimit cria o store do limitador de requisições do painel.
package ratelimit

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const keyPrefix = "hm_rate"

// Store é o store do limitador e o fechamento da conexão subjacente
type Store struct {
	limiter.Store
	close func() error
}

// Close libera a conexão com o Redis, quando houver
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// NewStore usa Redis quando redisURL está configurada e memória caso contrário.
// Com memória o orçamento é por instância da API.
func NewStore(redisURL string) (*Store, error) {
	if redisURL == "" {
		return &Store{Store: memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          keyPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		})}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   keyPrefix,
		MaxRetry: 3,
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
	}

	return &Store{Store: store, close: client.Close}, nil
}

// PerHour é o orçamento por IP usado nas rotas administrativas
func PerHour(limit int64) limiter.Rate {
	return limiter.Rate{Period: time.Hour, Limit: limit}
}
