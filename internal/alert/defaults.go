package alert

import "time"

// DefaultThresholds gives each of the four metrics a warning and critical
// level with a five-minute cooldown, a reasonable starting point for a
// single-process deployment. These values are not read from the config file.
func DefaultThresholds() []Threshold {
	return []Threshold{
		{Metric: MetricResponseTime, Level: LevelWarning, Value: 500, Cooldown: 5 * time.Minute},
		{Metric: MetricResponseTime, Level: LevelCritical, Value: 2000, Cooldown: 5 * time.Minute},
		{Metric: MetricMemoryUsage, Level: LevelWarning, Value: 0.75, Cooldown: 5 * time.Minute},
		{Metric: MetricMemoryUsage, Level: LevelCritical, Value: 0.9, Cooldown: 5 * time.Minute},
		{Metric: MetricErrorRate, Level: LevelWarning, Value: 0.05, Cooldown: 5 * time.Minute},
		{Metric: MetricErrorRate, Level: LevelCritical, Value: 0.2, Cooldown: 5 * time.Minute},
		{Metric: MetricThroughput, Level: LevelWarning, Value: 1, Cooldown: 5 * time.Minute},
		{Metric: MetricThroughput, Level: LevelCritical, Value: 0.1, Cooldown: 5 * time.Minute},
	}
}
