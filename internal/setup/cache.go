package setup

import (
	"context"
	"time"

	"github.com/morelia/expodesk/internal/cache"
	"github.com/morelia/expodesk/internal/config"
)

var NewCacheFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*cache.Cache, error) {
	return cache.New(time.Duration(*conf.Cache.TTL)), nil
})
