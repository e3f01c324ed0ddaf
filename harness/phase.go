package harness

// Phase marker values.
const (
	PHASE_START = Phase(0x8000_0000) // First marker of a run.
	PHASE_STAGE = Phase(0x1000_0000) // Jump between the vector and probe stages.
)

// Phase is the next phase marker to be reported. Markers only increase.
type Phase uint32

// Next returns the current marker and advances.
func (ph *Phase) Next() (marker uint32) {
	marker = uint32(*ph)
	*ph++
	return
}

// Stage jumps the marker to the next stage's range.
func (ph *Phase) Stage() {
	*ph += PHASE_STAGE
}
