package emulator

import "testing"

func TestTimeHandlerTick(t *testing.T) {
	th := NewTimeHandler()
	th.Tick(3)
	th.Tick(7)
	if th.Cycles != 10 {
		t.Errorf("expected 10 cycles, got %d", th.Cycles)
	}
}

func TestTimeHandlerFrame(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	th := NewTimeHandler()
	th.StartFrame()
	assert(!th.FrameDone())

	th.Tick(CYCLES_PER_FRAME - 1)
	assert(!th.FrameDone())
	th.Tick(1)
	assert(th.FrameDone())

	// the next frame target is relative to the current time
	th.StartFrame()
	assert(!th.FrameDone())
	assert(th.FrameTarget == 2*CYCLES_PER_FRAME)
}
