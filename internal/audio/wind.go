// Package audio plays a procedural wind ambience under the scene.
package audio

import (
	"math"
	"sync/atomic"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)

	bytesPerFrame = ChannelCount * 4
)

// Wind is an endless stereo float32 stream of gusting filtered noise.
// Read runs on the audio backend's goroutine; SetGain may be called from
// any goroutine.
type Wind struct {
	gain atomic.Uint32 // float32 bits

	seedL, seedR uint64
	lowL, lowR   float64
	t            float64
}

// NewWind returns a wind generator. The same seed yields the same stream.
func NewWind(seed uint64, gain float32) *Wind {
	w := &Wind{seedL: seed, seedR: seed ^ 0x9e3779b97f4a7c15}
	w.SetGain(gain)
	return w
}

// SetGain sets the output level, clamped to [0, 1].
func (w *Wind) SetGain(g float32) {
	g = float32(math.Max(0, math.Min(1, float64(g))))
	w.gain.Store(math.Float32bits(g))
}

// Gain returns the current output level.
func (w *Wind) Gain() float32 {
	return math.Float32frombits(w.gain.Load())
}

// Read fills p with whole stereo frames. It never returns an error.
func (w *Wind) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	gain := float64(w.Gain())
	dt := 1.0 / SampleRate

	for i := 0; i < frames; i++ {
		// Slow gusts: two detuned swells keep the level from sounding periodic.
		gust := 0.55 + 0.3*math.Sin(2*math.Pi*0.13*w.t) + 0.15*math.Sin(2*math.Pi*0.041*w.t+1.3)
		// Gustier wind lets more high end through.
		alpha := 0.01 + 0.03*gust

		w.lowL += alpha * (lcg(&w.seedL) - w.lowL)
		w.lowR += alpha * (lcg(&w.seedR) - w.lowR)

		left := softClip(w.lowL * 4 * gust * gain)
		right := softClip(w.lowR * 4 * gust * gain)
		putFrame(p, i, left, right)
		w.t += dt
	}
	return frames * bytesPerFrame, nil
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func softClip(x float64) float64 {
	return math.Tanh(x)
}

// putFrame writes left/right samples in [-1,1] as float32 LE at frame i.
func putFrame(buf []byte, i int, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	o := i * bytesPerFrame
	buf[o] = byte(lv)
	buf[o+1] = byte(lv >> 8)
	buf[o+2] = byte(lv >> 16)
	buf[o+3] = byte(lv >> 24)
	buf[o+4] = byte(rv)
	buf[o+5] = byte(rv >> 8)
	buf[o+6] = byte(rv >> 16)
	buf[o+7] = byte(rv >> 24)
}
