package setup

import (
	"context"
	"sync"

	"github.com/morelia/expodesk/internal/config"
)

// createFromConfigOnce memoizes a constructor so that setup functions
// can depend on each other without duplicating instances.
func createFromConfigOnce[T any](fn func(ctx context.Context, conf *config.Config) (T, error)) func(ctx context.Context, conf *config.Config) (T, error) {
	var (
		once  sync.Once
		value T
		err   error
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		once.Do(func() {
			value, err = fn(ctx, conf)
		})

		return value, err
	}
}
