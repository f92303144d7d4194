package access

import (
	"context"

	"github.com/morelia/expodesk/internal/session"
	"github.com/pkg/errors"
)

type contextKey string

const contextKeyIdentity contextKey = "accessIdentity"

func ContextIdentity(ctx context.Context) (*session.Identity, error) {
	identity, ok := ctx.Value(contextKeyIdentity).(*session.Identity)
	if !ok {
		return nil, errors.New("no identity in context")
	}

	return identity, nil
}

func setContextIdentity(ctx context.Context, identity *session.Identity) context.Context {
	return context.WithValue(ctx, contextKeyIdentity, identity)
}
