// Package demo wires window, input, sensor and renderer together for the
// desktop (glfw) and android (x/mobile) front ends.
package demo

import (
	"github.com/golang/glog"

	"gles2test/internal/audio"
	"gles2test/internal/config"
	"gles2test/internal/input"
	"gles2test/internal/render"
)

// newCore builds the parts both front ends share.
func newCore(cfg config.Config) (render.Options, *input.Tracker, error) {
	policy, err := cfg.StationaryPolicy()
	if err != nil {
		return render.Options{}, nil, err
	}
	failure, err := cfg.FailurePolicy()
	if err != nil {
		return render.Options{}, nil, err
	}

	tracker := input.NewTracker(policy)
	if cfg.TouchFeedback {
		fb, err := audio.NewFeedback()
		if err != nil {
			glog.Warningf("[audio]init failed (continuing without sound): %v", err)
		} else {
			tracker.OnPress = func(c input.Contact) { fb.Click(c.ID) }
		}
	}

	opts := render.Options{
		ClampGauges: cfg.ClampGauges,
		OnFailure:   failure,
	}
	return opts, tracker, nil
}
