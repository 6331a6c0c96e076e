// Package navigation provides summary.Navigator implementations.
package navigation

import (
	"context"
	"sync"

	"github.com/angelmondragon/packfinderz-cart/pkg/logger"
	"github.com/angelmondragon/packfinderz-cart/pkg/metrics"
)

// Logged records navigation requests in the log and metrics. The HTTP
// surface has no screens of its own, so a navigation request is an event.
type Logged struct {
	logg    *logger.Logger
	metrics *metrics.CartMetrics
}

func NewLogged(logg *logger.Logger, m *metrics.CartMetrics) *Logged {
	return &Logged{logg: logg, metrics: m}
}

func (l *Logged) Navigate(ctx context.Context, screen string) {
	l.metrics.IncNavigation(screen)
	if l.logg != nil {
		l.logg.Info(l.logg.WithField(ctx, "screen", screen), "navigation.requested")
	}
}

// Recorder keeps requested screens in order.
type Recorder struct {
	mu      sync.Mutex
	screens []string
}

func (r *Recorder) Navigate(_ context.Context, screen string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screens = append(r.screens, screen)
}

// Screens returns the screens requested so far.
func (r *Recorder) Screens() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.screens...)
}
