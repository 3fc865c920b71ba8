package emulator

import "testing"

func TestAdd32Overflow(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	v, err := add32Overflow(1, 2)
	assert(err == nil && v == 3)
	v, err = add32Overflow(-5, 3)
	assert(err == nil && v == -2)
	_, err = add32Overflow(0x7fffffff, 1)
	assert(err != nil)
	_, err = add32Overflow(-0x80000000, -1)
	assert(err != nil)
	v, err = add32Overflow(0x7fffffff, 0)
	assert(err == nil && v == 0x7fffffff)
}

func TestSub32Overflow(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	v, err := sub32Overflow(5, 3)
	assert(err == nil && v == 2)
	v, err = sub32Overflow(3, 5)
	assert(err == nil && v == -2)
	_, err = sub32Overflow(0x7fffffff, -1)
	assert(err != nil)
	_, err = sub32Overflow(-0x80000000, 1)
	assert(err != nil)
	v, err = sub32Overflow(-0x80000000, 0)
	assert(err == nil && v == -0x80000000)
}

func TestRegisterNames(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	assert(GetRegisterName(0) == "r0")
	assert(GetRegisterName(4) == "a0")
	assert(GetRegisterName(29) == "sp")
	assert(GetRegisterName(31) == "ra")

	assert(GetRegisterIndexByName("ra") == 31)
	assert(GetRegisterIndexByName("t0") == 8)
	assert(GetRegisterIndexByName("nope") == 0)
}

func TestOneIfTrue(t *testing.T) {
	if oneIfTrue(true) != 1 || oneIfTrue(false) != 0 {
		t.Error("assert failed")
	}
}
