package emulator

// GTE is the Geometry Transformation Engine register file (coprocessor
// 2). The CPU side only moves words in and out of it, the arithmetic
// pipeline itself lives behind Command
type GTE struct {
	Data    [32]uint32 // data registers, 0-31
	Control [32]uint32 // control registers, 32-63
	// last command word received through COP2, kept around for
	// debugging
	LastCommand uint32
}

func NewGTE() *GTE {
	return &GTE{}
}

func (gte *GTE) Reset() {
	*gte = GTE{}
}

// Returns the value of a data register (MFC2/SWC2)
func (gte *GTE) DataReg(index uint32) uint32 {
	return gte.Data[index]
}

// Sets a data register (MTC2/LWC2)
func (gte *GTE) SetDataReg(index, val uint32) {
	gte.Data[index] = val
}

// Returns the value of a control register (CFC2)
func (gte *GTE) ControlReg(index uint32) uint32 {
	return gte.Control[index]
}

// Sets a control register (CTC2)
func (gte *GTE) SetControlReg(index, val uint32) {
	gte.Control[index] = val
}

// Executes a GTE command word. The transformation pipeline is not
// emulated, the command is only latched
func (gte *GTE) Command(cmd uint32) {
	gte.LastCommand = cmd
}
