package backend

import (
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

type Options struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	RetryMax     int           `mapstructure:"retryMax"`
	RetryWaitMin time.Duration `mapstructure:"retryWaitMin"`
	RetryWaitMax time.Duration `mapstructure:"retryWaitMax"`
}

func NewDefaultOptions() Options {
	return Options{
		Timeout:      10 * time.Second,
		RetryMax:     3,
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
	}
}

func DecodeOptions(rawOptions map[string]any) (Options, error) {
	opts := NewDefaultOptions()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           &opts,
	})
	if err != nil {
		return opts, errors.WithStack(err)
	}

	if err := decoder.Decode(rawOptions); err != nil {
		return opts, errors.WithStack(err)
	}

	return opts, nil
}
