package redis

import (
	"context"
	"fmt"

	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/database/redis/codes"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/database/redis/matches"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/database/redis/processed"
	"github.com/Wassim-dev-wq/Qypym-back-sub001/internal/adapters/database/redis/users"
	"github.com/redis/go-redis/v9"
)

// Client bundles the cache namespaces. Each namespace rides its own logical
// DB so a flush of one cannot wipe the others. The stream client (DB 0) is
// handed to the event bus.
type Client struct {
	Streams   *redis.Client
	Users     *users.Storage
	Matches   *matches.Storage
	Codes     *codes.Storage
	Processed *processed.Storage
}

type Options struct {
	Host     string
	Port     string
	Password string
}

func New(opts Options) (*Client, error) {
	streamClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})
	if err := streamClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping stream storage: %w", err)
	}

	userCache := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       1,
	})
	if err := userCache.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping user cache: %w", err)
	}

	matchCache := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       2,
	})
	if err := matchCache.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping match cache: %w", err)
	}

	codeStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       3,
	})
	if err := codeStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping code storage: %w", err)
	}

	processedStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       4,
	})
	if err := processedStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping processed-event storage: %w", err)
	}

	return &Client{
		Streams:   streamClient,
		Users:     users.NewStorage(userCache),
		Matches:   matches.NewStorage(matchCache),
		Codes:     codes.NewStorage(codeStorage),
		Processed: processed.NewStorage(processedStorage),
	}, nil
}
