package emulator

// State of the interrupt controller registers I_STAT and I_MASK
type IrqState struct {
	Status uint16 // Interrupt status
	Mask   uint16 // Interrupt mask
}

// Represents an interrupt source, the value is the bit position in
// the I_STAT and I_MASK registers
type Interrupt uint16

const (
	INTERRUPT_VBLANK     Interrupt = 0  // GPU is in vertical blanking
	INTERRUPT_GPU        Interrupt = 1  // GPU command/transfer complete
	INTERRUPT_CDROM      Interrupt = 2  // CD-ROM controller
	INTERRUPT_DMA        Interrupt = 3  // DMA transfer complete
	INTERRUPT_TIMER0     Interrupt = 4  // Timer 0
	INTERRUPT_TIMER1     Interrupt = 5  // Timer 1
	INTERRUPT_TIMER2     Interrupt = 6  // Timer 2
	INTERRUPT_CONTROLLER Interrupt = 7  // Controller and memory card
	INTERRUPT_SIO        Interrupt = 8  // Serial I/O
	INTERRUPT_SPU        Interrupt = 9  // Sound processing unit
	INTERRUPT_LIGHTPEN   Interrupt = 10 // Lightpen/PIO
)

// Returns a new interrupt state instance
func NewIrqState() *IrqState {
	return &IrqState{}
}

// Returns true if any unmasked interrupt is pending
func (state *IrqState) Active() bool {
	return (state.Status & state.Mask) != 0
}

// Flags `interrupt` as pending
func (state *IrqState) SetHigh(interrupt Interrupt) {
	state.Status |= 1 << interrupt
}

// Acknowledges interrupts: a zero bit in `ack` clears the matching
// status bit, a one bit leaves it untouched
func (state *IrqState) Acknowledge(ack uint16) {
	state.Status &= ack
}

func (state *IrqState) SetMask(mask uint16) {
	state.Mask = mask
}
