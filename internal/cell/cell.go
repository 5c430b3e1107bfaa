package cell

import "fmt"

// Bomb is the value of a cell that holds a mine.
const Bomb = -10

type Coordinate struct {
	Row, Col int
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

// Field is a persisted snapshot of a cell.
type Field interface {
	Value() int
	Uncovered() bool
	MarkedAsSafe() bool
}

type State struct {
	value                int
	uncovered            bool
	markedAsSafe         bool
	wasRevealedAtGameEnd bool
	coordinate           Coordinate

	// uncovered by the player or by a load, never by the sweep
	opened bool
}

func New(c Coordinate) *State {
	return &State{coordinate: c}
}

// Load overwrites the value, uncovered and flag state from f. The game-end
// marker is not part of a snapshot and is cleared.
func (s *State) Load(f Field) {
	s.value = f.Value()
	s.uncovered = f.Uncovered()
	s.opened = s.uncovered
	s.markedAsSafe = f.MarkedAsSafe()
	s.wasRevealedAtGameEnd = false
}

func (s *State) Uncover() bool {
	s.uncovered = true
	s.opened = true
	return true
}

// RevealAtGameEnd exposes the cell as part of the game-end sweep. There is
// no way back.
func (s *State) RevealAtGameEnd() bool {
	s.uncovered = true
	s.wasRevealedAtGameEnd = true
	return true
}

func (s *State) ToggleFlag() bool {
	s.markedAsSafe = !s.markedAsSafe
	return true
}

func (s State) IsBomb() bool {
	return s.value == Bomb
}

func (s State) IsEmpty() bool {
	return s.value == 0
}

func (s State) IsUncovered() bool {
	return s.uncovered
}

func (s State) IsMarkedAsSafe() bool {
	return s.markedAsSafe
}

func (s State) WasRevealedAtGameEnd() bool {
	return s.wasRevealedAtGameEnd
}

func (s State) Value() int {
	return s.value
}

func (s State) Coordinate() Coordinate {
	return s.coordinate
}

// Snapshot is the persisted part of the state. A cell exposed only by the
// game-end sweep is stored as covered.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		Val:    s.value,
		Open:   s.opened,
		Marked: s.markedAsSafe,
	}
}
