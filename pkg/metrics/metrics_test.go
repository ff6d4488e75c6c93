package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveBuild(t *testing.T) {
	before := testutil.ToFloat64(chartBuilds.WithLabelValues("spec", StatusSuccess))
	beforeErr := testutil.ToFloat64(chartBuilds.WithLabelValues("spec", StatusError))

	ObserveBuild("spec", time.Now(), 2, nil)
	ObserveBuild("spec", time.Now(), 0, errors.New("boom"))
	BuildCacheHit("spec")

	assert.Equal(t, before+1, testutil.ToFloat64(chartBuilds.WithLabelValues("spec", StatusSuccess)))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(chartBuilds.WithLabelValues("spec", StatusError)))
	assert.GreaterOrEqual(t, testutil.ToFloat64(chartBuilds.WithLabelValues("spec", StatusCached)), 1.0)
}

func TestObserveMarketFetch(t *testing.T) {
	before := testutil.ToFloat64(marketFetches.WithLabelValues("binance", StatusError))
	ObserveMarketFetch("binance", time.Now(), errors.New("timeout"))
	assert.Equal(t, before+1, testutil.ToFloat64(marketFetches.WithLabelValues("binance", StatusError)))

	ScheduledRefresh(nil)
	assert.GreaterOrEqual(t, testutil.ToFloat64(scheduledRefreshes.WithLabelValues(StatusSuccess)), 1.0)
}

func TestHandler(t *testing.T) {
	ObserveBuild("market", time.Now(), 3, nil)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lwcharts_chart_builds_total")
}
