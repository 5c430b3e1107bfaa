package render

import "github.com/vancomm/minesweeper-cells/internal/cell"

// Resolve picks the sprite for s. The first matching rule wins:
//
//   - a flagged cell always shows the flag, whatever lies under it;
//   - a bomb exposed by the game-end sweep shows the plain bomb;
//   - a bomb uncovered in play is the one that went off;
//   - any other uncovered cell shows its hint;
//   - everything else is a covered button.
//
// The sweep also sets uncovered, so the second rule must stay ahead of the
// third.
func Resolve(s cell.State, dark bool) AssetID {
	id := AssetID{Theme: ThemeFromDark(dark)}
	switch {
	case s.IsMarkedAsSafe():
		id.Kind = Flag
	case s.WasRevealedAtGameEnd() && s.IsBomb():
		id.Kind = Bomb
	case s.IsUncovered() && s.IsBomb():
		id.Kind = ExplodedBomb
	case s.IsUncovered():
		id.Kind, id.Hint = Hint, s.Value()
	default:
		id.Kind = Covered
	}
	return id
}
