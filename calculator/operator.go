package calculator

import "math"

// Operator is a binary operation waiting for its right-hand operand
type Operator int

const (
	// NoOperator means no operation is pending
	NoOperator Operator = iota
	Add
	Subtract
	Multiply
	Divide
	// Percent computes a percentage of the left-hand operand: a * (b / 100)
	Percent
)

// Symbol returns the symbol used in display prefixes and history expressions
func (op Operator) Symbol() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "×"
	case Divide:
		return "÷"
	case Percent:
		return "%"
	default:
		return ""
	}
}

func (op Operator) String() string {
	switch op {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	case Percent:
		return "percent"
	default:
		return "none"
	}
}

// precision is the rounding scale applied to every computed result
const precision = 1e6

// Evaluate applies op to a and b and rounds the result to 6 decimal places.
// If either operand is NaN, or op is not a known operator, b is returned as-is.
// Division by zero is not guarded and yields ±Inf or NaN.
func Evaluate(a float64, op Operator, b float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return b
	}

	var result float64
	switch op {
	case Add:
		result = a + b
	case Subtract:
		result = a - b
	case Multiply:
		result = a * b
	case Divide:
		result = a / b
	case Percent:
		result = a * (b / 100)
	default:
		return b
	}

	return round(result)
}

// round rounds half toward positive infinity at 6 decimal places
func round(x float64) float64 {
	return math.Floor(x*precision+0.5) / precision
}
