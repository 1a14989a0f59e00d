package program

import "math"

// Behaviors of the arithmetic instructions of the default ISA. "top" is the
// value pushed earlier of the pair, "bottom" the one pushed last.

func instADD(top, bottom float64) float64 {
	return top + bottom
}

func instSUB(top, bottom float64) float64 {
	return top - bottom
}

func instMUL(top, bottom float64) float64 {
	return top * bottom
}

func instDIV(top, bottom float64) float64 {
	return top / bottom
}

// instMOD works on the integer parts of both operands.
func instMOD(top, bottom float64) float64 {
	return float64(int64(top) % int64(bottom))
}

func instSQRT(v float64) float64 {
	return math.Sqrt(v)
}

func instABS(v float64) float64 {
	return math.Abs(v)
}

func condAlways(_, _ bool) bool {
	return true
}

func condEqual(zero, _ bool) bool {
	return zero
}

func condNotEqual(zero, _ bool) bool {
	return !zero
}

func condBelow(_, above bool) bool {
	return !above
}

func condBelowEqual(zero, above bool) bool {
	return !above || zero
}

func condAbove(_, above bool) bool {
	return above
}

func condAboveEqual(zero, above bool) bool {
	return above || zero
}
