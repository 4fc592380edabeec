package sensor

import (
	"fmt"
	"time"

	"github.com/golang/glog"
	mobsensor "golang.org/x/mobile/exp/sensor"
)

// Accelerometer reads the device accelerometer through x/mobile. Readings
// arrive as sensor.Event values on the app event loop, which forwards them
// to Handle.
type Accelerometer struct {
	Holder
	interval time.Duration
	started  bool
}

func NewAccelerometer(interval time.Duration) *Accelerometer {
	return &Accelerometer{interval: interval}
}

func (a *Accelerometer) Start() error {
	if a.started {
		return nil
	}
	if err := mobsensor.Enable(mobsensor.Accelerometer, a.interval); err != nil {
		return fmt.Errorf("enable accelerometer: %w", err)
	}
	a.started = true
	glog.Infof("[sensor]accelerometer enabled, interval %v", a.interval)
	return nil
}

func (a *Accelerometer) Stop() error {
	if !a.started {
		return nil
	}
	a.started = false
	a.Clear()
	if err := mobsensor.Disable(mobsensor.Accelerometer); err != nil {
		return fmt.Errorf("disable accelerometer: %w", err)
	}
	return nil
}

// Handle records e if it is an accelerometer event and reports whether it
// was consumed.
func (a *Accelerometer) Handle(e mobsensor.Event) bool {
	if e.Sensor != mobsensor.Accelerometer {
		return false
	}
	if len(e.Data) < 3 {
		glog.Warningf("[sensor]short accelerometer event: %d values", len(e.Data))
		return true
	}
	a.Update(Sample{
		X: float32(e.Data[0]),
		Y: float32(e.Data[1]),
		Z: float32(e.Data[2]),
	})
	return true
}
