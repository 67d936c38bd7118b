package playground

import (
	"sync"

	"github.com/oliverbestmann/shaderplay/glimpse"
	"github.com/oliverbestmann/shaderplay/gui"
)

// Contexts maps windows to their gui context. It is shared between the
// event loop and the renderer.
type Contexts struct {
	mu       sync.Mutex
	byWindow map[glimpse.WindowID]*gui.Context
}

// NewContexts creates one gui context per window.
func NewContexts(ids ...glimpse.WindowID) *Contexts {
	byWindow := make(map[glimpse.WindowID]*gui.Context, len(ids))
	for _, id := range ids {
		byWindow[id] = gui.NewContext()
	}

	return &Contexts{byWindow: byWindow}
}

func (c *Contexts) Get(id glimpse.WindowID) (*gui.Context, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, ok := c.byWindow[id]
	return ctx, ok
}
