package gateway

import (
	"context"
	"errors"
)

// Offline is used when no provider is configured. Every call fails with
// KindUnavailable.
type Offline struct {
	Reason string
}

func (o Offline) Generate(context.Context, string, float64, int) (string, error) {
	return "", &Error{Provider: ProviderOffline, Kind: KindUnavailable, Err: errors.New(o.Reason)}
}
