package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeAtFormula(t *testing.T) {
	for _, cycles := range []int{1, 2, 5, 7} {
		for tick := uint64(0); tick < 100; tick++ {
			want := Modes[(tick/uint64(cycles))%uint64(len(Modes))]
			assert.Equal(t, want, ModeAt(tick, cycles),
				"tick=%d cycles=%d", tick, cycles)
		}
	}
}

func TestModeAtSequence(t *testing.T) {
	// With 2 cycles per mode the first six ticks walk the full cycle
	want := []Mode{
		ModeCPUFrequency, ModeCPUFrequency,
		ModeGPU, ModeGPU,
		ModeCPUFan, ModeCPUFan,
	}

	for tick, mode := range want {
		assert.Equal(t, mode, ModeAt(uint64(tick), 2))
	}

	// ...and tick six wraps back to the start
	assert.Equal(t, ModeCPUFrequency, ModeAt(6, 2))
}

func TestCyclerMatchesFormula(t *testing.T) {
	c := NewCycler(5)

	for tick := uint64(0); tick < 50; tick++ {
		require.Equal(t, tick, c.Tick())
		assert.Equal(t, ModeAt(tick, 5), c.Current())
		assert.Equal(t, ModeAt(tick, 5), c.Advance(), "tick %d", tick)
	}
}

func TestCyclerClampsInvalidCycles(t *testing.T) {
	c := NewCycler(0)

	assert.Equal(t, ModeCPUFrequency, c.Advance())
	assert.Equal(t, ModeGPU, c.Advance(), "cycles below 1 behave as 1")
}

func TestModeDiscriminators(t *testing.T) {
	// Protocol values are fixed by the device firmware
	assert.Equal(t, byte(2), byte(ModeCPUFrequency))
	assert.Equal(t, byte(3), byte(ModeCPUFan))
	assert.Equal(t, byte(4), byte(ModeGPU))
}
