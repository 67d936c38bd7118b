package pulse

import "testing"

type countingReleaser struct {
	count int
}

func (c *countingReleaser) Release() {
	c.count++
}

func TestReleaseGuard(t *testing.T) {
	t.Run("releases once", func(t *testing.T) {
		var value countingReleaser

		guard := NewReleaseGuard(&value)
		guard.Release()
		guard.Release()

		if value.count != 1 {
			t.Errorf("released %d times, want 1", value.count)
		}
	})

	t.Run("keep skips release", func(t *testing.T) {
		var value countingReleaser

		guard := NewReleaseGuard(&value)
		guard.Keep()
		guard.Release()

		if value.count != 0 {
			t.Errorf("released %d times, want 0", value.count)
		}
	})
}
