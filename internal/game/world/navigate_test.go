package world

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/stdquest/internal/game/gameerr"
)

func TestMap_Navigate(t *testing.T) {
	m := loadTestMap(t)

	target, err := m.Navigate("intro", East, "n4950")
	require.NoError(t, err)
	assert.Equal(t, "expr", target)
}

func TestMap_Navigate_NoConnection(t *testing.T) {
	m := loadTestMap(t)

	_, err := m.Navigate("intro", North, "n4950")
	assert.True(t, errors.Is(err, gameerr.ErrNoSuchConnection))
	assert.EqualError(t, err, "You cannot go north from here.")
}

func TestMap_Navigate_TargetNotInEra(t *testing.T) {
	m := loadTestMap(t)

	_, err := m.Navigate("expr.prim.id", South, "n3337")
	assert.True(t, errors.Is(err, gameerr.ErrNotAvailableInEra))
	assert.EqualError(t, err, "Conditional operator doesn't exist in C++11.")
}

func TestMap_Navigate_UnknownOrigin(t *testing.T) {
	m := loadTestMap(t)
	_, err := m.Navigate("nowhere", East, "n4950")
	assert.Equal(t, gameerr.KindNotFound, gameerr.KindOf(err))
}

func TestMap_Enter_MatchOrder(t *testing.T) {
	m := loadTestMap(t)

	got, err := m.Enter("expr", "EXPR.PRIM.ID", "n4950")
	require.NoError(t, err)
	assert.Equal(t, "expr.prim.id", got, "exact stable name ignores case")

	got, err = m.Enter("expr", "names", "n4950")
	require.NoError(t, err)
	assert.Equal(t, "expr.prim.id", got, "display name partial")

	got, err = m.Enter("expr", "prim", "n4950")
	require.NoError(t, err)
	assert.Equal(t, "expr.prim.lambda", got, "ambiguous stable name partial picks first child")
}

func TestMap_Enter_DisplayNameBeatsStableName(t *testing.T) {
	m := loadTestMap(t)
	// "lambda" is in both the stable and display name; display is tried first.
	got, err := m.Enter("expr", "lambda", "trunk")
	require.NoError(t, err)
	assert.Equal(t, "expr.prim.lambda", got)
}

func TestMap_Enter_Failures(t *testing.T) {
	m := loadTestMap(t)

	_, err := m.Enter("intro", "anything", "n4950")
	assert.True(t, errors.Is(err, gameerr.ErrNothingToEnter))

	_, err = m.Enter("expr", "zzz", "n4950")
	assert.True(t, errors.Is(err, gameerr.ErrNoMatch))

	_, err = m.Enter("expr", "cond", "n3337")
	assert.True(t, errors.Is(err, gameerr.ErrNotAvailableInEra))
}

func TestMap_Exit(t *testing.T) {
	m := loadTestMap(t)

	got, err := m.Exit("class.copy", "n3337")
	require.NoError(t, err)
	assert.Equal(t, "class", got)

	_, err = m.Exit("class", "n3337")
	assert.True(t, errors.Is(err, gameerr.ErrNoParent))
}

func TestMap_Exit_ParentNotInEra(t *testing.T) {
	doc := `{
	  "eras": {"n1": "C++98", "n2": "C++03"},
	  "sections": {
	    "a": {"displayName": "A", "availableIn": ["n1"], "children": ["a.b"]},
	    "a.b": {"displayName": "B", "availableIn": ["n1", "n2"], "parent": "a"}
	  }
	}`
	m, err := LoadMapFromBytes([]byte(doc), nil)
	require.NoError(t, err)

	_, err = m.Exit("a.b", "n2")
	assert.True(t, errors.Is(err, gameerr.ErrNotAvailableInEra))
	assert.EqualError(t, err, "The parent area doesn't exist in C++03.")
}

func TestMap_Warp(t *testing.T) {
	m := loadTestMap(t)
	visited := []string{"intro", "expr", "expr.prim.lambda", "expr.prim.id"}

	got, err := m.Warp("expr.prim.id", "n4950", visited)
	require.NoError(t, err)
	assert.Equal(t, "expr.prim.id", got)

	got, err = m.Warp("lambda", "n4950", visited)
	require.NoError(t, err)
	assert.Equal(t, "expr.prim.lambda", got)

	got, err = m.Warp("INTRO", "n4950", visited)
	require.NoError(t, err)
	assert.Equal(t, "intro", got)
}

func TestMap_Warp_Failures(t *testing.T) {
	m := loadTestMap(t)
	visited := []string{"intro", "expr", "expr.prim.lambda", "expr.prim.id"}

	_, err := m.Warp("class", "n4950", visited)
	assert.True(t, errors.Is(err, gameerr.ErrNotDiscovered))

	_, err = m.Warp("copy", "n4950", visited)
	assert.True(t, errors.Is(err, gameerr.ErrNoMatch), "undiscovered sections never match")

	_, err = m.Warp("prim", "n4950", visited)
	require.True(t, errors.Is(err, gameerr.ErrAmbiguous))
	assert.EqualError(t, err, "Multiple matches: Lambda expressions, Names. Be more specific.")
	var ge *gameerr.Error
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, []string{"expr.prim.lambda", "expr.prim.id"}, ge.Candidates)
}

func TestMap_Warp_EraGated(t *testing.T) {
	m := loadTestMap(t)
	_, err := m.Warp("copying", "n4950", []string{"class", "class.copy"})
	assert.True(t, errors.Is(err, gameerr.ErrNotAvailableInEra))
	assert.EqualError(t, err, "Copying class objects doesn't exist in C++23.")
}

func TestMap_Goto(t *testing.T) {
	m := loadTestMap(t)

	got, err := m.Goto("[[class.copy.ctor]]", "n4950")
	require.NoError(t, err)
	assert.Equal(t, "class.copy.ctor", got)

	got, err = m.Goto("class copy ctor", "trunk")
	require.NoError(t, err)
	assert.Equal(t, "class.copy.ctor", got)

	got, err = m.Goto("conditional", "n4950")
	require.NoError(t, err)
	assert.Equal(t, "expr.cond", got)

	_, err = m.Goto("expr.prim", "n4950")
	assert.True(t, errors.Is(err, gameerr.ErrAmbiguous))

	_, err = m.Goto("class.copy", "n4950")
	assert.True(t, errors.Is(err, gameerr.ErrNotAvailableInEra))
	assert.EqualError(t, err, "Copying class objects doesn't exist in C++23.")

	_, err = m.Goto("zzz", "n4950")
	assert.True(t, errors.Is(err, gameerr.ErrNoMatch))
}

func TestMap_Search(t *testing.T) {
	m := loadTestMap(t)

	var names []string
	for _, s := range m.Search("COPY", "n4950") {
		names = append(names, s.StableName)
	}
	assert.Equal(t, []string{"class.copy.ctor"}, names)

	assert.Len(t, m.Search("expr", "n3337"), 3)
	assert.Nil(t, m.Search("  ", "n3337"))
}

func TestMap_Timeshift_Direct(t *testing.T) {
	m := loadTestMap(t)
	shift, err := m.Timeshift("expr", "n3337")
	require.NoError(t, err)
	assert.Equal(t, Shift{Target: "expr"}, shift)
}

func TestMap_Timeshift_Aliased(t *testing.T) {
	m := loadTestMap(t)
	shift, err := m.Timeshift("class.copy", "n4950")
	require.NoError(t, err)
	assert.True(t, shift.Aliased)
	assert.Equal(t, "class.copy.ctor", shift.Target)
	assert.Equal(t, `Section "Copying and moving class objects" was renamed to "Copy/move constructors" in C++23.`, shift.Message)
}

func TestMap_Timeshift_NoEquivalent(t *testing.T) {
	m := loadTestMap(t)
	_, err := m.Timeshift("expr.cond", "n3337")
	assert.True(t, errors.Is(err, gameerr.ErrNoEquivalent))
	assert.EqualError(t, err, `"Conditional operator" doesn't exist in C++11 and has no known equivalent.`)
}

func TestPropertyWarpStaysWithinVisited(t *testing.T) {
	m := loadTestMap(t)
	all := m.StableNames()
	rapid.Check(t, func(t *rapid.T) {
		visited := rapid.SliceOfNDistinct(rapid.SampledFrom(all), 0, len(all), rapid.ID[string]).Draw(t, "visited")
		target := rapid.OneOf(rapid.SampledFrom(all), rapid.StringMatching(`[a-z.]{1,6}`)).Draw(t, "target")
		era := rapid.SampledFrom([]string{"n3337", "n4950", "trunk"}).Draw(t, "era")

		got, err := m.Warp(target, era, visited)
		if err == nil && !slices.Contains(visited, got) {
			t.Fatalf("warp(%q) returned %q outside visited %v", target, got, visited)
		}
	})
}
