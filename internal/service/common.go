package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/validation"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

const publishTimeout = 5 * time.Second

var validate = validation.New()

func validateRequest(req any) error {
	if err := validate.Validate(req); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

func notFound(err error, what string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

// publish is best-effort: a failed event is logged and dropped.
func publish(ctx context.Context, pub Publisher, topic, key string, event map[string]any) {
	if pub == nil {
		return
	}
	l := logging.FromContext(ctx)
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := pub.Publish(pctx, topic, key, event); err != nil {
		l.Warn("publish_event_failed", "topic", topic, "type", event["type"], "error", err)
	}
}
