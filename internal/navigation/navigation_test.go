package navigation

import (
	"bytes"
	"context"
	"testing"

	"github.com/angelmondragon/packfinderz-cart/pkg/logger"
	"github.com/angelmondragon/packfinderz-cart/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLoggedNavigatorLogsAndCounts(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "nav-test", Format: logger.FormatJSON, Output: buf})
	reg := prometheus.NewRegistry()
	nav := NewLogged(logg, metrics.NewCartMetrics(reg))

	nav.Navigate(context.Background(), "Cart")
	nav.Navigate(context.Background(), "Cart")

	assert.Contains(t, buf.String(), `"screen":"Cart"`)
	assert.Contains(t, buf.String(), "navigation.requested")

	count, err := testutil.GatherAndCount(reg, "cart_navigations_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, count, "one series for the Cart screen")
}

func TestRecorderKeepsOrder(t *testing.T) {
	rec := &Recorder{}
	rec.Navigate(context.Background(), "Cart")
	rec.Navigate(context.Background(), "Dashboard")

	screens := rec.Screens()
	assert.Equal(t, []string{"Cart", "Dashboard"}, screens)

	screens[0] = "mutated"
	assert.Equal(t, "Cart", rec.Screens()[0], "Screens returns a copy")
}
