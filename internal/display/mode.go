package display

// Mode selects which metric set the display renders. The values are the
// protocol's mode discriminator bytes.
type Mode uint8

const (
	ModeCPUFrequency Mode = 2
	ModeCPUFan       Mode = 3
	ModeGPU          Mode = 4
)

// Modes is the fixed cycling order
var Modes = [...]Mode{ModeCPUFrequency, ModeGPU, ModeCPUFan}

func (m Mode) String() string {
	switch m {
	case ModeCPUFrequency:
		return "cpu_frequency"
	case ModeCPUFan:
		return "cpu_fan"
	case ModeGPU:
		return "gpu"
	default:
		return "unknown"
	}
}

func (m Mode) includesCPU() bool {
	return m == ModeCPUFrequency || m == ModeCPUFan
}

func (m Mode) includesGPU() bool {
	return m == ModeGPU
}

// ModeAt returns the mode active at a given wall-clock tick. The mode is a
// pure function of the tick count, so it never depends on call history.
func ModeAt(tick uint64, cyclesPerMode int) Mode {
	return Modes[(tick/uint64(cyclesPerMode))%uint64(len(Modes))]
}

// Cycler advances the display mode every cyclesPerMode ticks, wrapping over
// the fixed mode order.
type Cycler struct {
	cyclesPerMode int
	tick          uint64
}

func NewCycler(cyclesPerMode int) *Cycler {
	if cyclesPerMode < 1 {
		cyclesPerMode = 1
	}

	return &Cycler{cyclesPerMode: cyclesPerMode}
}

// Advance consumes one tick and returns the mode for it
func (c *Cycler) Advance() Mode {
	mode := ModeAt(c.tick, c.cyclesPerMode)
	c.tick++

	return mode
}

// Current returns the mode the next Advance call will report
func (c *Cycler) Current() Mode {
	return ModeAt(c.tick, c.cyclesPerMode)
}

// Tick returns the number of ticks consumed so far
func (c *Cycler) Tick() uint64 {
	return c.tick
}
