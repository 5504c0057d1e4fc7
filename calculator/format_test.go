package calculator

import (
	"math"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{7, "7"},
		{-7, "-7"},
		{1.5, "1.5"},
		{0.333333, "0.333333"},
		{0.000001, "0.000001"},
		{1.5e-7, "1.5e-7"},
		{123456789, "123456789"},
		{1.2345678901234568e20, "123456789012345680000"},
		{1e21, "1e+21"},
		{-2.5e22, "-2.5e+22"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0", 0},
		{"0.", 0},
		{"12.5", 12.5},
		{"-3", -3},
		{"1e+21", 1e21},
		{"1.5e-7", 1.5e-7},
		{"3abc", 3},
		{"2.5.", 2.5},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		if got := ParseNumber(tt.in); got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"", ".", "-", "abc", "NaN"} {
		if got := ParseNumber(in); !math.IsNaN(got) {
			t.Errorf("ParseNumber(%q) = %v, want NaN", in, got)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, n := range []float64{0.1, 2.718281, -42, 1e-9, 9.87654321e25, 0.30000000000000004} {
		if got := ParseNumber(FormatNumber(n)); got != n {
			t.Errorf("ParseNumber(FormatNumber(%v)) = %v", n, got)
		}
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		a    float64
		op   Operator
		b    float64
		want float64
	}{
		{2, Add, 3, 5},
		{2, Subtract, 3, -1},
		{4, Multiply, 2.5, 10},
		{9, Divide, 3, 3},
		{200, Percent, 15, 30},
		{0.1, Multiply, 0.2, 0.02},
		{2, Divide, 3, 0.666667},
		{-2, Divide, 3, -0.666667},
		{5, NoOperator, 8, 8},
	}

	for _, tt := range tests {
		if got := Evaluate(tt.a, tt.op, tt.b); got != tt.want {
			t.Errorf("Evaluate(%v, %v, %v) = %v, want %v", tt.a, tt.op, tt.b, got, tt.want)
		}
	}
}

func TestEvaluateDivideByZero(t *testing.T) {
	if got := Evaluate(7, Divide, 0); !math.IsInf(got, 1) {
		t.Errorf("7 ÷ 0 should be +Inf, got %v", got)
	}
	if got := Evaluate(-7, Divide, 0); !math.IsInf(got, -1) {
		t.Errorf("-7 ÷ 0 should be -Inf, got %v", got)
	}
	if got := Evaluate(0, Divide, 0); !math.IsNaN(got) {
		t.Errorf("0 ÷ 0 should be NaN, got %v", got)
	}
}

func TestEvaluateNaNOperandReturnsInput(t *testing.T) {
	if got := Evaluate(math.NaN(), Add, 5); got != 5 {
		t.Errorf("NaN left operand should return the input 5, got %v", got)
	}
	if got := Evaluate(5, Multiply, math.NaN()); !math.IsNaN(got) {
		t.Errorf("NaN input should be returned as-is, got %v", got)
	}
}

func TestEvaluateAddSubtractRoundTrip(t *testing.T) {
	pairs := [][2]float64{
		{0, 0},
		{1.5, 2.25},
		{-3, 7},
		{0.1, 0.2},
		{123456.789, 0.000001},
		{1e9, -2.5},
		{-0.000042, 31.4159},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]
		sum := Evaluate(a, Add, b)
		if got := Evaluate(sum, Subtract, b); math.Abs(got-a) > 1e-6 {
			t.Errorf("(%v + %v) - %v = %v, want %v within 1e-6", a, b, b, got, a)
		}
	}
}

func TestOperatorSymbol(t *testing.T) {
	want := map[Operator]string{
		Add:        "+",
		Subtract:   "-",
		Multiply:   "×",
		Divide:     "÷",
		Percent:    "%",
		NoOperator: "",
	}
	for op, sym := range want {
		if got := op.Symbol(); got != sym {
			t.Errorf("%v.Symbol() = %q, want %q", op, got, sym)
		}
	}
}
