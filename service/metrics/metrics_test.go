package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()
	registry := prometheus.NewRegistry()
	require.NoError(t, m.Register(registry))

	m.ObserveSubmit(OutcomeOK, 10*time.Millisecond)
	m.ObserveSubmit(OutcomeOK, 20*time.Millisecond)
	m.ObserveSubmit(OutcomeNoCapacity, time.Millisecond)
	m.CountComplete(OutcomeOK)
	m.CountPublish("dispatch", OutcomePublishErr)
	m.Reserved()
	m.Reserved()
	m.Released()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submitTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submitTotal.WithLabelValues(OutcomeNoCapacity)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.completeTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.publishTotal.WithLabelValues("dispatch", OutcomePublishErr)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reservedGauge))

	assert.Error(t, m.Register(registry), "duplicate registration must fail")
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	m.ObserveSubmit(OutcomeOK, time.Second)
	m.CountComplete(OutcomeOK)
	m.CountPublish("relay", OutcomeOK)
	m.Reserved()
	m.Released()
	assert.Nil(t, m.Collectors())
	assert.NoError(t, m.Register(prometheus.NewRegistry()))
}
