package pulse

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/oliverbestmann/webgpu/wgpu"
)

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

func init() {
	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

var ErrNoAdapter = errors.New("no suitable gpu adapter")

// Context encapsulates the low level state of the webgpu context,
// this includes the Instance, Device and active Adapter. Surfaces are
// owned by the Viewport they belong to.
type Context struct {
	*wgpu.Device
	*wgpu.Queue
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
}

// NewInstance creates the webgpu instance surfaces are created from.
func NewInstance() *wgpu.Instance {
	return wgpu.CreateInstance(nil)
}

// New requests an adapter that is able to render to the given surface and
// opens a device on it. Ownership of the instance moves to the Context.
func New(instance *wgpu.Instance, compatible *wgpu.Surface) (st *Context, err error) {
	defer func() {
		if err != nil && st != nil {
			st.Release()
			st = nil
		}
	}()

	st = &Context{Instance: instance}

	// create an adapter that can render to the Surface
	st.Adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    compatible,
	})

	if err != nil {
		return st, fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}

	if st.Adapter == nil {
		return st, ErrNoAdapter
	}

	// get a Device with the default settings
	st.Device, err = st.Adapter.RequestDevice(nil)
	if err != nil {
		return st, fmt.Errorf("request device: %w", err)
	}

	st.Queue = st.Device.GetQueue()

	return st, nil
}

func (d *Context) Release() {
	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}

	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Instance != nil {
		d.Instance.Release()
		d.Instance = nil
	}
}
