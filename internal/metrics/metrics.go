package metrics

import (
	"context"

	"github.com/fxjung/pushover-watchdog/internal/domain"
)

// Source yields a fresh usage sample for one named resource. Implementations
// must not cache: every call reads the OS again.
type Source interface {
	Name() string
	Sample(ctx context.Context) (domain.Sample, error)
}
