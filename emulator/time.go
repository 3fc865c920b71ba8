package emulator

// Number of CPU cycles in one video frame (NTSC). The CPU clock runs
// at 33.8685MHz (~29.525960700946ns per cycle)
const CYCLES_PER_FRAME uint64 = 564480

// Keeps track of the emulation time
type TimeHandler struct {
	// Keeps track of the current execution time, measured in CPU
	// clock cycles
	Cycles uint64
	// Cycle count at which the current frame ends
	FrameTarget uint64
}

// Returns a new instance of TimeHandler
func NewTimeHandler() *TimeHandler {
	return &TimeHandler{}
}

// Advance the current time by `cycles`
func (th *TimeHandler) Tick(cycles uint64) {
	th.Cycles += cycles
}

// Starts a new frame: the frame target is moved one frame ahead of the
// current time
func (th *TimeHandler) StartFrame() {
	th.FrameTarget = th.Cycles + CYCLES_PER_FRAME
}

// Returns true once the current time reached the frame target
func (th *TimeHandler) FrameDone() bool {
	return th.Cycles >= th.FrameTarget
}
