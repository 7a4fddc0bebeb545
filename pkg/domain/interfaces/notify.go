package interfaces

import (
	"context"

	"github.com/collie-dev/collie/pkg/domain/model"
)

// Notifier alerts a human about decisions that must not be silently ignored
// (currently only Hold)
type Notifier interface {
	NotifyHold(ctx context.Context, pr *model.PullRequest, decision *model.Decision) error
}
