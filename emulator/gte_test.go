package emulator

import "testing"

func TestGTERegisterFile(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	gte := NewGTE()
	gte.SetDataReg(0, 0x00120011)
	gte.SetControlReg(31, 0x80000000)

	assert(gte.DataReg(0) == 0x00120011)
	assert(gte.ControlReg(31) == 0x80000000)
	assert(gte.DataReg(1) == 0)

	gte.Command(0x0400012)
	assert(gte.LastCommand == 0x0400012)

	gte.Reset()
	assert(gte.DataReg(0) == 0)
	assert(gte.ControlReg(31) == 0)
	assert(gte.LastCommand == 0)
}
