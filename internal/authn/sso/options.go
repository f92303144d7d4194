package sso

type Options struct {
	Providers []Provider
	Prefix    string
	LoginURL  string
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Providers: make([]Provider, 0),
		Prefix:    "/auth/sso",
		LoginURL:  "/auth/login",
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithProviders(providers ...Provider) OptionFunc {
	return func(opts *Options) {
		opts.Providers = providers
	}
}

func WithPrefix(prefix string) OptionFunc {
	return func(opts *Options) {
		opts.Prefix = prefix
	}
}

func WithLoginURL(loginURL string) OptionFunc {
	return func(opts *Options) {
		opts.LoginURL = loginURL
	}
}
