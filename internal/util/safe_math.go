package util

import "errors"

type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

var ErrOverflow = errors.New("overflow")

func MaxUint[T Unsigned]() T {
	return ^T(0)
}

// Add returns a + b, or ErrOverflow.
func Add[T Unsigned](a, b T) (T, error) {
	if a > MaxUint[T]()-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// Mul returns a * b, or ErrOverflow.
func Mul[T Unsigned](a, b T) (T, error) {
	if b != 0 && a > MaxUint[T]()/b {
		return 0, ErrOverflow
	}
	return a * b, nil
}

// SaturatingSub returns a - b, clamped at zero.
func SaturatingSub[T Unsigned](a, b T) T {
	if a < b {
		return 0
	}
	return a - b
}
