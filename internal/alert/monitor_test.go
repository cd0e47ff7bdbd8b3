package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testThresholds() []Threshold {
	return []Threshold{
		{Metric: MetricErrorRate, Level: LevelWarning, Value: 0.1, Cooldown: time.Minute},
		{Metric: MetricErrorRate, Level: LevelCritical, Value: 0.5, Cooldown: time.Minute},
		{Metric: MetricThroughput, Level: LevelWarning, Value: 10, Cooldown: time.Minute},
	}
}

func TestCheckFiresHighestSeverityCrossed(t *testing.T) {
	m := NewMonitor(testThresholds(), 10)
	now := time.Now()

	a := m.Check(MetricErrorRate, 0.6, now, nil)
	require.NotNil(t, a)
	assert.Equal(t, LevelCritical, a.Level)
}

func TestCheckReturnsNilWhenNoThresholdCrossed(t *testing.T) {
	m := NewMonitor(testThresholds(), 10)
	a := m.Check(MetricErrorRate, 0.01, time.Now(), nil)
	assert.Nil(t, a)
}

func TestCheckSuppressesWithinCooldown(t *testing.T) {
	m := NewMonitor(testThresholds(), 10)
	now := time.Now()

	first := m.Check(MetricErrorRate, 0.6, now, nil)
	require.NotNil(t, first)

	second := m.Check(MetricErrorRate, 0.6, now.Add(10*time.Second), nil)
	assert.Nil(t, second, "cooldown should suppress a repeat fire")

	third := m.Check(MetricErrorRate, 0.6, now.Add(2*time.Minute), nil)
	assert.NotNil(t, third, "cooldown elapsed, should fire again")
}

func TestThroughputAlertsOnDrop(t *testing.T) {
	m := NewMonitor(testThresholds(), 10)
	a := m.Check(MetricThroughput, 2, time.Now(), nil)
	require.NotNil(t, a)
	assert.Equal(t, LevelWarning, a.Level)
}

func TestResolveMarksAlertResolved(t *testing.T) {
	m := NewMonitor(testThresholds(), 10)
	now := time.Now()
	a := m.Check(MetricErrorRate, 0.6, now, nil)
	require.NotNil(t, a)

	err := m.Resolve(a.ID, "operator", now.Add(time.Minute))
	require.NoError(t, err)

	active := m.Active()
	assert.Empty(t, active)
}

func TestResolveUnknownIDReturnsNotFound(t *testing.T) {
	m := NewMonitor(testThresholds(), 10)
	err := m.Resolve("missing", "operator", time.Now())
	assert.Error(t, err)
}

func TestRingIsBounded(t *testing.T) {
	m := NewMonitor(testThresholds(), 3)
	now := time.Now()
	for i := 0; i < 10; i++ {
		m.Check(MetricErrorRate, 0.6, now.Add(time.Duration(i)*2*time.Minute), nil)
	}
	assert.LessOrEqual(t, len(m.Snapshot()), 3)
}
