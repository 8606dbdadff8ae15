package vm

const (
	// MemorySize is the number of 16-bit words addressable by the VM.
	MemorySize = 1 << 16

	// KBSR and KBDR are the memory-mapped keyboard status/data registers.
	KBSR uint16 = 0xFE00
	KBDR uint16 = 0xFE02
)

// KeyboardDevice is polled by Memory whenever KBSR is read. It must not
// block for more than a small, bounded wait (spec.md §4.6).
type KeyboardDevice interface {
	// Poll returns a byte and true if one was available, or (0, false)
	// if none was available within the bounded wait.
	Poll() (byte, bool)
}

// Memory is the LC-3's 2^16-word address space, with KBSR/KBDR hooked
// to a KeyboardDevice.
type Memory struct {
	cells [MemorySize]uint16
	kbd   KeyboardDevice
}

// NewMemory creates a zeroed Memory backed by the given keyboard device.
// A nil device makes KBSR always read as "no key available".
func NewMemory(kbd KeyboardDevice) *Memory {
	return &Memory{kbd: kbd}
}

// Read returns the word at addr. Reading KBSR first polls the keyboard
// device and updates the KBSR/KBDR pair per spec.md §4.4.
func (m *Memory) Read(addr uint16) uint16 {
	if addr == KBSR {
		var c byte
		ok := false
		if m.kbd != nil {
			c, ok = m.kbd.Poll()
		}
		if ok {
			m.cells[KBSR] = 0x8000
			m.cells[KBDR] = uint16(c)
		} else {
			m.cells[KBSR] = 0
		}
	}
	return m.cells[addr]
}

// Write stores value at addr. Writes to KBSR/KBDR are allowed but are
// overwritten on the next read of KBSR.
func (m *Memory) Write(addr uint16, value uint16) {
	m.cells[addr] = value
}

// LoadImage stores words starting at origin, wrapping addresses at
// 2^16, per the loader contract in spec.md §6.
func (m *Memory) LoadImage(origin uint16, words []uint16) {
	addr := origin
	for _, w := range words {
		m.cells[addr] = w
		addr++ // wraps naturally: uint16 arithmetic is already mod 2^16
	}
}
