package pulse

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// SamplerCache hands out samplers by description. Samplers are released
// when they are evicted or the cache is purged.
type SamplerCache struct {
	device *wgpu.Device
	cache  *lru.Cache[wgpu.SamplerDescriptor, *wgpu.Sampler]
}

func NewSamplerCache(ctx *Context) *SamplerCache {
	cache, _ := lru.NewWithEvict[wgpu.SamplerDescriptor, *wgpu.Sampler](16, samplerCacheOnEvict)
	return &SamplerCache{device: ctx.Device, cache: cache}
}

func samplerCacheOnEvict(_ wgpu.SamplerDescriptor, value *wgpu.Sampler) {
	value.Release()
}

// Get returns a sampler matching your description. The sampler is cached,
// you must not call wgpu.Sampler.Release() on it.
func (c *SamplerCache) Get(desc wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	cachedSampler, ok := c.cache.Get(desc)
	if ok {
		return cachedSampler, nil
	}

	sampler, err := c.device.TryCreateSampler(&desc)
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}

	c.cache.Add(desc, sampler)

	return sampler, nil
}

func (c *SamplerCache) Release() {
	c.cache.Purge()
}
