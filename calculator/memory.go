package calculator

// Memory returns the value in the memory register
func (e *Engine) Memory() float64 {
	return e.memory
}

// MemoryAdd adds the displayed value to memory
func (e *Engine) MemoryAdd() {
	e.memory += ParseNumber(e.display)
	e.awaiting = true
}

// MemorySubtract subtracts the displayed value from memory
func (e *Engine) MemorySubtract() {
	e.memory -= ParseNumber(e.display)
	e.awaiting = true
}

// MemoryRecall shows the memory value on the display
func (e *Engine) MemoryRecall() {
	e.display = FormatNumber(e.memory)
	e.awaiting = true
}

// MemoryClear resets memory to zero
func (e *Engine) MemoryClear() {
	e.memory = 0
}
