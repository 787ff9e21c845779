package capture

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/Miuzarte/CaptureShield/logger"
	"github.com/kirides/go-d3d/d3d11"
	"github.com/kirides/go-d3d/outputduplication"
	"github.com/kirides/go-d3d/win"
	"github.com/rs/zerolog"
)

// frames to wait for after (re)creating the duplication, it has nothing to
// hand out until the desktop presents again
const firstFrameAttempts = 10

type duplicator struct {
	displayIndex int
	device       *d3d11.ID3D11Device
	deviceCtx    *d3d11.ID3D11DeviceContext
	ddup         *outputduplication.OutputDuplicator
	screenBounds image.Rectangle
	frame        *image.RGBA
	log          zerolog.Logger
	mu           sync.Mutex
}

func newDuplicator() (*duplicator, error) {
	d := &duplicator{displayIndex: -1, log: logger.WithComponent("capture")}

	// Make thread PerMonitorV2 Dpi aware if supported on OS
	// allows to let windows handle BGRA -> RGBA conversion and possibly more things
	if win.IsValidDpiAwarenessContext(win.DpiAwarenessContextPerMonitorAwareV2) {
		_, err := win.SetThreadDpiAwarenessContext(win.DpiAwarenessContextPerMonitorAwareV2)
		if err != nil {
			d.log.Warn().Err(err).Msg("could not set thread DPI awareness to PerMonitorAwareV2")
		} else {
			d.log.Debug().Msg("enabled PerMonitorAwareV2 DPI awareness")
		}
	}
	return d, nil
}

func (d *duplicator) init(displayIndex int) (err error) {
	d.release()
	d.displayIndex = displayIndex

	d.device, d.deviceCtx, err = d3d11.NewD3D11Device()
	if err != nil {
		return fmt.Errorf("could not create D3D11 Device: %w", err)
	}

	d.ddup, err = outputduplication.NewIDXGIOutputDuplication(d.device, d.deviceCtx, uint(displayIndex))
	if err != nil {
		return fmt.Errorf("err NewIDXGIOutputDuplication: %w", err)
	}

	d.screenBounds, err = d.ddup.GetBounds()
	if err != nil {
		return fmt.Errorf("unable to obtain output bounds: %w", err)
	}
	d.frame = image.NewRGBA(d.screenBounds)
	d.log.Debug().Int("display", displayIndex).Stringer("bounds", d.screenBounds).Msg("output duplication ready")
	return nil
}

func (d *duplicator) Capture(rect image.Rectangle) (*image.RGBA, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	idx, _, err := DisplayOf(rect)
	if err != nil {
		return nil, err
	}
	if idx != d.displayIndex || d.ddup == nil {
		if err := d.init(idx); err != nil {
			return nil, err
		}
	}

	for range firstFrameAttempts {
		err = d.getImage()
		if !errors.Is(err, outputduplication.ErrNoImageYet) {
			break
		}
		time.Sleep(time.Second / 30)
	}
	if err != nil {
		return nil, err
	}
	return Crop(d.frame, rect), nil
}

func (d *duplicator) getImage() error {
	err := d.ddup.GetImage(d.frame, 0)
	if err == nil || errors.Is(err, outputduplication.ErrNoImageYet) {
		return err
	}
	// The duplication interface goes stale on desktop switch, mode change
	// or fullscreen transitions and has to be recreated.
	d.log.Debug().Err(err).Msg("renewing output duplication")
	if err := d.init(d.displayIndex); err != nil {
		return err
	}
	return d.ddup.GetImage(d.frame, 0)
}

func (d *duplicator) release() (err error) {
	var ret1, ret2 int32
	if d.ddup != nil {
		d.ddup.Release()
		d.ddup = nil
	}
	if d.deviceCtx != nil {
		ret1 = d.deviceCtx.Release()
		d.deviceCtx = nil
	}
	if d.device != nil {
		ret2 = d.device.Release()
		d.device = nil
	}
	if ret1 != 0 {
		return fmt.Errorf("ret1 (%d) != 0", ret1)
	}
	if ret2 != 0 {
		return fmt.Errorf("ret2 (%d) != 0", ret2)
	}
	return nil
}

func (d *duplicator) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.release()
}
