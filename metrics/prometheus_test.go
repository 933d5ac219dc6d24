package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/snake-ga/ga"
)

func TestReporter(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewReporter(reg)

	r.GenerationEnd(ga.GenerationStats{Generation: 1, BestScore: 4, MeanScore: 1.5, Ticks: 100, Duration: time.Second})
	r.GenerationEnd(ga.GenerationStats{Generation: 2, BestScore: 7, MeanScore: 2, Ticks: 50, Won: true, AliveAtEnd: 3})
	r.Champion(&ga.Champion{Score: 7})

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Generation))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.BestScore))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.MeanScore))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.AliveAtEnd))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.ChampionScore))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.GenerationsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.WinsTotal))
	assert.Equal(t, 150.0, testutil.ToFloat64(r.TicksTotal))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 10)
}

func TestNewReporter_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewReporter(reg)
	assert.Panics(t, func() { NewReporter(reg) })
}
