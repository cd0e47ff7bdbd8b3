package queue

import "time"

// rollingWindow bounds how much history feeds the throughput/average
// execution-time statistics, mirroring the teacher's IndexProgress
// snapshot discipline (bounded, mutex-guarded, copied out on read).
const rollingWindow = 200

// completionSample records one finished task for the rolling stats.
type completionSample struct {
	at       time.Time
	duration time.Duration
}

// Stats is an immutable snapshot of queue health.
type Stats struct {
	QueueDepth         int
	InFlight           int
	Failed             int
	AvgExecutionMillis float64
	ThroughputPerMin   float64
}

func (q *TaskQueue) recordCompletion(d time.Duration, now time.Time) {
	q.completions = append(q.completions, completionSample{at: now, duration: d})
	if len(q.completions) > rollingWindow {
		q.completions = q.completions[len(q.completions)-rollingWindow:]
	}
}

func (q *TaskQueue) snapshotLocked(queueDepth int) Stats {
	s := Stats{QueueDepth: queueDepth, InFlight: q.inFlight, Failed: q.failed}
	if len(q.completions) == 0 {
		return s
	}
	var totalMillis float64
	oldest := q.completions[0].at
	for _, c := range q.completions {
		totalMillis += float64(c.duration.Microseconds()) / 1000.0
		if c.at.Before(oldest) {
			oldest = c.at
		}
	}
	s.AvgExecutionMillis = totalMillis / float64(len(q.completions))

	span := time.Since(oldest).Minutes()
	if span <= 0 {
		span = 1.0 / 60.0
	}
	s.ThroughputPerMin = float64(len(q.completions)) / span
	return s
}
