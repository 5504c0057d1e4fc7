// Package calculator implements the keypad calculator engine: a digit entry
// buffer, a pending operand and operator that are evaluated eagerly on every
// operator press, and a single memory register.
//
// Operators chain left to right with no precedence, so 2 + 3 × 4 evaluates
// as (2 + 3) × 4. The engine never returns errors; division by zero and
// unparsable input surface as Infinity or NaN on the display.
//
// An Engine is not safe for concurrent use.
package calculator

import (
	"fmt"
	"strings"
)

// CalculationFunc receives every committed calculation
type CalculationFunc func(expression string, result float64)

// State is the observable state of the engine after an event
type State struct {
	// Display is the value currently shown or being edited
	Display string
	// Pending is "{operand} {symbol}" while a chained operation is active, otherwise empty
	Pending string
	// Memory is the value held in the memory register
	Memory float64
}

// Engine is the calculator state machine
type Engine struct {
	display       string
	operand       float64
	hasOperand    bool
	operator      Operator
	awaiting      bool
	memory        float64
	onCalculation CalculationFunc
}

// New creates an engine showing "0". onCalculation may be nil.
func New(onCalculation CalculationFunc) *Engine {
	return &Engine{
		display:       "0",
		awaiting:      true,
		onCalculation: onCalculation,
	}
}

// State returns a snapshot of the display, pending prefix and memory register
func (e *Engine) State() State {
	s := State{Display: e.display, Memory: e.memory}
	if e.hasOperand {
		s.Pending = fmt.Sprintf("%s %s", FormatNumber(e.operand), e.operator.Symbol())
	}
	return s
}

// Display returns the current display buffer
func (e *Engine) Display() string {
	return e.display
}

// Awaiting reports whether the next digit starts a new operand
func (e *Engine) Awaiting() bool {
	return e.awaiting
}

// Pending returns the pending operand and operator, if a chain is active
func (e *Engine) Pending() (float64, Operator, bool) {
	return e.operand, e.operator, e.hasOperand
}

// InputDigit enters d ('0'..'9'). Other runes are ignored.
func (e *Engine) InputDigit(d rune) {
	if d < '0' || d > '9' {
		return
	}
	digit := string(d)

	if e.awaiting {
		e.display = digit
		e.awaiting = false
		return
	}

	// "0" is replaced rather than extended, so "05" and "00" never appear
	if e.display == "0" {
		e.display = digit
		return
	}
	e.display += digit
}

// InputDecimal adds a decimal point unless the buffer already has one
func (e *Engine) InputDecimal() {
	if e.awaiting {
		e.display = "0."
		e.awaiting = false
		return
	}
	if !strings.Contains(e.display, ".") {
		e.display += "."
	}
}

// SetOperator selects op as the next operation. If a chain is already
// active, the pending calculation is committed first and its result becomes
// the new left-hand operand.
func (e *Engine) SetOperator(op Operator) {
	input := ParseNumber(e.display)

	if !e.hasOperand {
		e.operand = input
		e.hasOperand = true
	} else if e.operator != NoOperator {
		result := e.commit(input)
		e.operand = result
		e.display = FormatNumber(result)
	}

	e.operator = op
	e.awaiting = true
}

// Equals commits the pending calculation and ends the chain.
// It does nothing when no operator is pending.
func (e *Engine) Equals() {
	if e.operator == NoOperator {
		return
	}

	result := e.commit(ParseNumber(e.display))

	e.display = FormatNumber(result)
	e.hasOperand = false
	e.operand = 0
	e.operator = NoOperator
	e.awaiting = true
}

// commit evaluates the pending operation against input and reports it
func (e *Engine) commit(input float64) float64 {
	result := Evaluate(e.operand, e.operator, input)
	if e.onCalculation != nil {
		expression := fmt.Sprintf("%s %s %s", FormatNumber(e.operand), e.operator.Symbol(), FormatNumber(input))
		e.onCalculation(expression, result)
	}
	return result
}

// ClearAll resets the display and drops any pending operation. Memory is kept.
func (e *Engine) ClearAll() {
	e.display = "0"
	e.hasOperand = false
	e.operand = 0
	e.operator = NoOperator
	e.awaiting = true
}

// ClearEntry resets the display only, so the right-hand operand can be re-entered
func (e *Engine) ClearEntry() {
	e.display = "0"
	e.awaiting = true
}

// ToggleSign negates the displayed value
func (e *Engine) ToggleSign() {
	e.display = FormatNumber(-ParseNumber(e.display))
}

// Percentage divides the displayed value by 100 in place
func (e *Engine) Percentage() {
	e.display = FormatNumber(ParseNumber(e.display) / 100)
}
