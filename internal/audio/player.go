package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"go.uber.org/zap"

	"island-demo/internal/logger"
)

// readyTimeout bounds how long Start waits for the audio device.
var readyTimeout = 2 * time.Second

// oto allows one context per process and has no way to release it, so the
// first one created is kept here and reused by later Start calls.
var (
	ctxMu      sync.Mutex
	sharedCtx  *oto.Context
	sharedWait <-chan struct{}
	newContext = oto.NewContext
)

func deviceContext() (*oto.Context, <-chan struct{}, error) {
	ctxMu.Lock()
	defer ctxMu.Unlock()
	if sharedWait == nil {
		ctx, ready, err := newContext(SampleRate, ChannelCount, BitDepth)
		if err != nil {
			return nil, nil, err
		}
		sharedCtx, sharedWait = ctx, ready
	}
	return sharedCtx, sharedWait, nil
}

// Ambience owns the looping wind player.
type Ambience struct {
	ctx    *oto.Context
	player oto.Player
	wind   *Wind
}

// Start opens the default output device and begins playing wind at gain.
// A machine without audio returns an error; callers treat that as
// non-fatal. If the device is not ready within readyTimeout the context
// stays open for the rest of the process and a later Start waits on it
// again instead of opening a second one.
func Start(seed uint64, gain float32) (*Ambience, error) {
	ctx, ready, err := deviceContext()
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	select {
	case <-ready:
	case <-time.After(readyTimeout):
		logger.Log.Warn("audio device not ready", zap.Duration("timeout", readyTimeout))
		return nil, fmt.Errorf("audio device not ready after %v", readyTimeout)
	}

	wind := NewWind(seed, gain)
	player := ctx.NewPlayer(wind)
	player.Play()

	logger.Log.Info("wind ambience started",
		zap.Int("sampleRate", SampleRate),
		zap.Float32("gain", gain))
	return &Ambience{ctx: ctx, player: player, wind: wind}, nil
}

// SetGain changes the wind level without interrupting playback.
func (a *Ambience) SetGain(g float32) {
	if a == nil {
		return
	}
	a.wind.SetGain(g)
}

// Close stops playback. Safe on a nil Ambience.
func (a *Ambience) Close() {
	if a == nil || a.player == nil {
		return
	}
	if err := a.player.Close(); err != nil {
		logger.Log.Warn("audio player close", zap.Error(err))
	}
	a.player = nil
}
