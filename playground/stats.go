package playground

import (
	"log/slog"
	"time"
)

// FrameTimes tracks a moving average of frame durations.
type FrameTimes struct {
	FrameCount      uint64
	AverageDuration time.Duration
	MaxDuration     time.Duration

	// Delta time to previous frame
	Delta time.Duration

	lastTime time.Time
}

func (t *FrameTimes) update(d time.Duration) {
	const window = 64

	t.Delta = d
	t.MaxDuration = max(t.MaxDuration, d)

	if t.FrameCount < window/2 {
		t.AverageDuration = d
	} else {
		t.AverageDuration = ((window-1)*t.AverageDuration + d) / window
	}
}

func (t *FrameTimes) FPS() float64 {
	if t.AverageDuration <= 0 {
		return 0
	}

	return 1.0 / t.AverageDuration.Seconds()
}

// Tick records a frame at the given time and reports if
// the statistics should be logged.
func (t *FrameTimes) Tick(now time.Time) bool {
	if t.FrameCount > 0 {
		t.update(now.Sub(t.lastTime))
	}

	t.lastTime = now
	t.FrameCount += 1

	return t.FrameCount%60 == 0
}

func (t *FrameTimes) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frames", t.FrameCount),
		slog.Duration("average", t.AverageDuration),
		slog.Duration("max", t.MaxDuration),
		slog.Float64("fps", t.FPS()),
	)
}
