package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RecordsOnOwnRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncMutation("match", "create")
	s.IncMutation("match", "create")
	s.IncMutation("player", "delete")
	s.IncRankingsComputed()
	s.ObserveRankingDuration(0.002)
	s.IncSlackNotifSent()
	s.IncSlackNotifFailed()
	s.SetStartupTime(1.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.Mutations.WithLabelValues("match", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Mutations.WithLabelValues("player", "delete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.RankingsComputed))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.SlackNotifSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.SlackNotifFailed))
	assert.Equal(t, 1.5, testutil.ToFloat64(s.StartupTimeSeconds))

	rec := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `padel_mutations_total{action="create",entity="match"} 2`)
	assert.Contains(t, string(body), "padel_ranking_duration_seconds_count 1")
}

func TestMock(t *testing.T) {
	m := NewMock()
	m.IncMutation("pair", "create")
	m.ObserveRankingDuration(0.1)
	m.IncRankingsComputed()

	assert.Equal(t, 1, m.Mutations("pair", "create"))
	assert.Equal(t, 0, m.Mutations("pair", "delete"))
	assert.Equal(t, []float64{0.1}, m.RankingDurations())
	assert.Equal(t, 1, m.RankingsComputed())
}
