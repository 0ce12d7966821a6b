package audio

import (
	"testing"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

func TestStartReusesContextAfterTimeout(t *testing.T) {
	origNew, origTimeout := newContext, readyTimeout
	t.Cleanup(func() {
		newContext, readyTimeout = origNew, origTimeout
		sharedCtx, sharedWait = nil, nil
	})
	sharedCtx, sharedWait = nil, nil

	calls := 0
	never := make(chan struct{})
	newContext = func(sampleRate, channelCount, format int) (*oto.Context, chan struct{}, error) {
		calls++
		if sampleRate != SampleRate || channelCount != ChannelCount || format != BitDepth {
			t.Errorf("context opened with %d/%d/%d", sampleRate, channelCount, format)
		}
		return nil, never, nil
	}
	readyTimeout = 10 * time.Millisecond

	for i := 0; i < 2; i++ {
		if a, err := Start(1, 0.5); err == nil || a != nil {
			t.Fatalf("attempt %d: expected timeout error, got %v, %v", i, a, err)
		}
	}
	if calls != 1 {
		t.Errorf("device context opened %d times, want 1", calls)
	}
}
