package keypad

import (
	"strings"

	"github.com/bond-kaneko/calcusmart/calculator"
)

// Action is what a key press does
type Action int

const (
	Digit Action = iota
	Decimal
	SetOperator
	Equals
	ClearAll
	ClearEntry
	ToggleSign
	Percentage
	MemoryAdd
	MemorySubtract
	MemoryRecall
	MemoryClear
	ShowHistory
	ClearHistory
	ToggleTheme
	Quit
)

// Key is a single parsed key press
type Key struct {
	Action   Action
	Digit    rune
	Operator calculator.Operator
}

// commands are the whole-word keys. Anything else is read one character at a time.
var commands = map[string]Key{
	"ac":      {Action: ClearAll},
	"c":       {Action: ClearAll},
	"esc":     {Action: ClearAll},
	"ce":      {Action: ClearEntry},
	"mc":      {Action: MemoryClear},
	"mr":      {Action: MemoryRecall},
	"m+":      {Action: MemoryAdd},
	"m-":      {Action: MemorySubtract},
	"neg":     {Action: ToggleSign},
	"+/-":     {Action: ToggleSign},
	"pct":     {Action: Percentage},
	"of":      {Action: SetOperator, Operator: calculator.Percent},
	"history": {Action: ShowHistory},
	"hc":      {Action: ClearHistory},
	"theme":   {Action: ToggleTheme},
	"q":       {Action: Quit},
	"quit":    {Action: Quit},
}

func charKey(r rune) (Key, bool) {
	if r >= '0' && r <= '9' {
		return Key{Action: Digit, Digit: r}, true
	}

	switch r {
	case '.':
		return Key{Action: Decimal}, true
	case '+':
		return Key{Action: SetOperator, Operator: calculator.Add}, true
	case '-':
		return Key{Action: SetOperator, Operator: calculator.Subtract}, true
	case '*', 'x', '×':
		return Key{Action: SetOperator, Operator: calculator.Multiply}, true
	case '/', '÷':
		return Key{Action: SetOperator, Operator: calculator.Divide}, true
	case '%':
		return Key{Action: Percentage}, true
	case '=':
		return Key{Action: Equals}, true
	}
	return Key{}, false
}

// ParseLine converts one line of keyboard input to key presses.
// An empty line is the Enter key, which means equals.
// Characters with no key are returned separately and otherwise skipped.
func ParseLine(line string) (keys []Key, unknown []rune) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return []Key{{Action: Equals}}, nil
	}

	for _, field := range fields {
		if k, ok := commands[strings.ToLower(field)]; ok {
			keys = append(keys, k)
			continue
		}
		for _, r := range field {
			if k, ok := charKey(r); ok {
				keys = append(keys, k)
			} else {
				unknown = append(unknown, r)
			}
		}
	}
	return keys, unknown
}

// Apply sends an engine key to e. It returns false for keys the engine does not handle.
func Apply(e *calculator.Engine, k Key) bool {
	switch k.Action {
	case Digit:
		e.InputDigit(k.Digit)
	case Decimal:
		e.InputDecimal()
	case SetOperator:
		e.SetOperator(k.Operator)
	case Equals:
		e.Equals()
	case ClearAll:
		e.ClearAll()
	case ClearEntry:
		e.ClearEntry()
	case ToggleSign:
		e.ToggleSign()
	case Percentage:
		e.Percentage()
	case MemoryAdd:
		e.MemoryAdd()
	case MemorySubtract:
		e.MemorySubtract()
	case MemoryRecall:
		e.MemoryRecall()
	case MemoryClear:
		e.MemoryClear()
	default:
		return false
	}
	return true
}
