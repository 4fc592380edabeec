// Package audio plays a short procedural click when a contact is pressed, so
// the audio output can be checked together with touch input.
package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)

	clickVolume = 0.6
	maxVoices   = 4
)

// Feedback owns the oto context. A nil *Feedback is valid and silent.
type Feedback struct {
	ctx    *oto.Context
	ready  chan struct{}
	click  []byte
	voices int32
}

// NewFeedback opens the audio device. The context becomes usable once the
// driver signals ready; clicks before that are dropped.
func NewFeedback() (*Feedback, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &Feedback{ctx: ctx, ready: ready, click: genClick(0)}, nil
}

// Click plays the press tone, pitched slightly by contact id so concurrent
// fingers are distinguishable.
func (f *Feedback) Click(id int) {
	if f == nil {
		return
	}
	select {
	case <-f.ready:
	default:
		return
	}
	if atomic.AddInt32(&f.voices, 1) > maxVoices {
		atomic.AddInt32(&f.voices, -1)
		return
	}
	samples := f.click
	if id != 0 {
		samples = genClick(id)
	}
	go func() {
		defer atomic.AddInt32(&f.voices, -1)
		player := f.ctx.NewPlayer(bytes.NewReader(samples))
		player.SetVolume(clickVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			glog.Warningf("[audio]close player: %v", err)
		}
	}()
}

// frameBytes is one interleaved stereo float32 frame.
const frameBytes = ChannelCount * 4

// Click tone shape.
const (
	clickMs     = 65
	clickGain   = 0.38
	clickAttack = 0.004 // fraction of the tone
	clickDecay  = 5.0
	clickFM     = 0.6
)

// clickEnvelope rises linearly over the attack, then decays exponentially
// and reaches zero at the end of the tone. p is the normalized position.
func clickEnvelope(p float64) float64 {
	switch {
	case p <= 0 || p >= 1:
		return 0
	case p < clickAttack:
		return p / clickAttack
	}
	q := (p - clickAttack) / (1 - clickAttack)
	return math.Exp(-clickDecay*q) * (1 - q)
}

func putFrame(dst []byte, v float64) {
	bits := math.Float32bits(float32(v))
	for ch := 0; ch < ChannelCount; ch++ {
		binary.LittleEndian.PutUint32(dst[ch*4:], bits)
	}
}

// genClick renders a falling FM chirp. Each id shifts the pitch by a
// semitone, wrapping after an octave.
func genClick(id int) []byte {
	n := SampleRate * clickMs / 1000
	buf := make([]byte, n*frameBytes)
	shift := math.Pow(2, float64(((id%12)+12)%12)/12)

	var phase float64
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		phase += 2 * math.Pi * (1400 - 700*p) * shift / SampleRate
		s := math.Sin(phase+clickFM*math.Sin(phase)) * clickEnvelope(p) * clickGain
		putFrame(buf[i*frameBytes:], math.Tanh(s))
	}
	return buf
}
