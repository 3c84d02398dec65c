package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/campus/pkg/slogx"
	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds how often a unit of work is retried on ErrTransient.
type RetryPolicy struct {
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy is used by drivers when nothing is configured.
var DefaultRetryPolicy = RetryPolicy{
	MaxTries:        3,
	InitialInterval: 50 * time.Millisecond,
	MaxInterval:     time.Second,
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxTries == 0 {
		p.MaxTries = DefaultRetryPolicy.MaxTries
	}
	if p.InitialInterval <= 0 {
		p.InitialInterval = DefaultRetryPolicy.InitialInterval
	}
	if p.MaxInterval <= 0 {
		p.MaxInterval = DefaultRetryPolicy.MaxInterval
	}
	return p
}

// Retry runs op until it succeeds, fails with anything but ErrTransient, or
// the policy runs out of tries. Context cancellation stops it early.
func Retry(ctx context.Context, p RetryPolicy, op func() error) error {
	p = p.withDefaults()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval

	log := slogx.FromContext(ctx)

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := op()
		if err == nil {
			return struct{}{}, nil
		}
		if !errors.Is(err, ErrTransient) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(p.MaxTries),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn("store: transient failure, retrying", "err", err, "backoff", next)
		}),
	)
	return err
}
