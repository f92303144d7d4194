package setup

import (
	"context"

	"github.com/morelia/expodesk/internal/backend"
	"github.com/morelia/expodesk/internal/config"
	"github.com/pkg/errors"
)

var NewBackendClientFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*backend.Client, error) {
	rawOptions := map[string]any{}
	if conf.Backend.Options != nil {
		rawOptions = conf.Backend.Options.Data
	}

	opts, err := backend.DecodeOptions(rawOptions)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode platform api client options")
	}

	return backend.NewClient(string(conf.Backend.URL), opts), nil
})
