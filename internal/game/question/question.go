// Package question builds difficulty-scaled arithmetic problems.
//
// Difficulty grows with the round number and a boss-specific bonus and is
// clamped to [MinDifficulty, MaxDifficulty]. Every generated Question is
// internally consistent: Left Op Right evaluates exactly to Answer, and
// division always has a non-zero divisor and a whole quotient.
package question

import (
	"errors"
	"fmt"

	"github.com/udisondev/mathduel/internal/rng"
)

// Operation is one of the four arithmetic operators.
type Operation string

const (
	OpAdd      Operation = "+"
	OpSubtract Operation = "-"
	OpMultiply Operation = "*"
	OpDivide   Operation = "/"
)

// AllOperations lists every supported operation in display order.
var AllOperations = []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}

// Difficulty bounds.
const (
	MinDifficulty = 1
	MaxDifficulty = 12
)

var (
	// ErrUnknownOperation is returned for operator symbols outside AllOperations.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrDivisionByZero is returned by Evaluate for a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
)

// Valid reports whether op is a supported operation.
func (op Operation) Valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// ParseOperation converts an operator symbol into an Operation.
func ParseOperation(s string) (Operation, error) {
	op := Operation(s)
	if !op.Valid() {
		return "", fmt.Errorf("parse %q: %w", s, ErrUnknownOperation)
	}
	return op, nil
}

// Question is a single arithmetic problem. Immutable once generated.
type Question struct {
	Left   int
	Right  int
	Op     Operation
	Answer int
	Text   string
}

// Evaluate computes left op right. Division is integer division and
// reports ErrDivisionByZero for a zero divisor.
func Evaluate(left int, op Operation, right int) (int, error) {
	switch op {
	case OpAdd:
		return left + right, nil
	case OpSubtract:
		return left - right, nil
	case OpMultiply:
		return left * right, nil
	case OpDivide:
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		return left / right, nil
	}
	return 0, fmt.Errorf("evaluate %q: %w", op, ErrUnknownOperation)
}

// Difficulty returns the clamped difficulty for a round.
// difficulty = clamp(round/2 + 1 + bonus, MinDifficulty, MaxDifficulty).
func Difficulty(round, bonus int) int {
	return min(MaxDifficulty, max(MinDifficulty, round/2+1+bonus))
}

// Generate creates a question for the given round using one operation
// chosen uniformly from ops.
//
// ops must be non-empty and contain only valid operations; violating that
// is a programming error and panics.
func Generate(src rng.Source, ops []Operation, round, difficultyBonus int) Question {
	if len(ops) == 0 {
		panic("question: Generate requires at least one operation")
	}
	op := rng.Pick(src, ops)
	return build(src, op, Difficulty(round, difficultyBonus))
}

func build(src rng.Source, op Operation, difficulty int) Question {
	lo := max(1, difficulty)
	hi := 10 + difficulty*3

	switch op {
	case OpAdd:
		left := rng.IntRange(src, lo, hi)
		right := rng.IntRange(src, lo, hi)
		return newQuestion(left, op, right, left+right)

	case OpSubtract:
		bigger := rng.IntRange(src, lo+2, hi+4)
		smaller := rng.IntRange(src, lo, bigger-1)
		return newQuestion(bigger, op, smaller, bigger-smaller)

	case OpMultiply:
		left := rng.IntRange(src, 2, max(8, 4+difficulty))
		right := rng.IntRange(src, 2, max(8, 5+difficulty))
		return newQuestion(left, op, right, left*right)

	case OpDivide:
		divisor := rng.IntRange(src, 2, max(4, 4+difficulty))
		quotient := rng.IntRange(src, 2, max(8, 8+difficulty*2))
		return newQuestion(divisor*quotient, op, divisor, quotient)
	}

	panic(fmt.Sprintf("question: unsupported operation %q", op))
}

func newQuestion(left int, op Operation, right, answer int) Question {
	return Question{
		Left:   left,
		Right:  right,
		Op:     op,
		Answer: answer,
		Text:   fmt.Sprintf("%d %s %d", left, op, right),
	}
}
