package grid

import (
	"fmt"

	"github.com/vancomm/minesweeper-cells/internal/cell"
)

type Op int8

const (
	OpUncover Op = iota + 1
	OpReveal
	OpFlag
)

func (op Op) String() string {
	switch op {
	case OpUncover:
		return "uncover"
	case OpReveal:
		return "reveal"
	case OpFlag:
		return "flag"
	default:
		return "!"
	}
}

func ParseOp(s string) (Op, error) {
	switch s {
	case "uncover", "u":
		return OpUncover, nil
	case "reveal", "r":
		return OpReveal, nil
	case "flag", "f":
		return OpFlag, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOp, s)
}

type Command struct {
	Op Op
	cell.Coordinate
}
