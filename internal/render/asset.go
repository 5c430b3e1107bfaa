package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Kind int8

const (
	Covered Kind = iota
	Flag
	Bomb
	ExplodedBomb
	Hint
)

// MaxHint is the largest hint value a sprite exists for.
const MaxHint = 8

func (k Kind) String() string {
	switch k {
	case Covered:
		return "button"
	case Flag:
		return "flag"
	case Bomb:
		return "bomb"
	case ExplodedBomb:
		return "bomb_exploded"
	case Hint:
		return "minesweeper"
	default:
		return "!"
	}
}

type Theme int8

const (
	Light Theme = iota
	Night
)

func ThemeFromDark(dark bool) Theme {
	if dark {
		return Night
	}
	return Light
}

func (t Theme) Dark() bool {
	return t == Night
}

func (t Theme) String() string {
	if t == Night {
		return "night"
	}
	return "light"
}

var ErrUnknownTheme = errors.New("unknown theme")

func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(s) {
	case "", "light":
		return Light, nil
	case "night", "dark":
		return Night, nil
	}
	return Light, fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// AssetID names exactly one sprite. Hint is only meaningful for [Hint].
type AssetID struct {
	Kind  Kind
	Hint  int
	Theme Theme
}

func (a AssetID) Base() string {
	if a.Kind == Hint {
		return Hint.String() + "_" + strconv.Itoa(a.Hint)
	}
	return a.Kind.String()
}

func (a AssetID) String() string {
	return a.Base() + "_" + a.Theme.String()
}

var ErrUnknownAsset = errors.New("unknown asset")

func ParseAssetID(name string) (AssetID, error) {
	var id AssetID
	base, found := strings.CutSuffix(name, "_light")
	if !found {
		if base, found = strings.CutSuffix(name, "_night"); !found {
			return id, fmt.Errorf("%w: %q has no theme suffix", ErrUnknownAsset, name)
		}
		id.Theme = Night
	}

	switch base {
	case "button":
		id.Kind = Covered
	case "flag":
		id.Kind = Flag
	case "bomb":
		id.Kind = Bomb
	case "bomb_exploded":
		id.Kind = ExplodedBomb
	default:
		digits, ok := strings.CutPrefix(base, "minesweeper_")
		if !ok {
			return id, fmt.Errorf("%w: %q", ErrUnknownAsset, name)
		}
		n, err := strconv.Atoi(digits)
		if err != nil || n < 0 || n > MaxHint {
			return id, fmt.Errorf("%w: %q", ErrUnknownAsset, name)
		}
		id.Kind, id.Hint = Hint, n
	}
	return id, nil
}

// All lists every asset id a well-formed cell can resolve to.
func All() []AssetID {
	ids := make([]AssetID, 0, 2*(4+MaxHint+1))
	for _, theme := range []Theme{Light, Night} {
		for _, kind := range []Kind{Covered, Flag, Bomb, ExplodedBomb} {
			ids = append(ids, AssetID{Kind: kind, Theme: theme})
		}
		for n := range MaxHint + 1 {
			ids = append(ids, AssetID{Kind: Hint, Hint: n, Theme: theme})
		}
	}
	return ids
}
