// Package gameerr defines the typed failures returned by world, progress, and
// quest operations. Every failure here is an expected game-state branch that
// the presentation layer turns into a player-facing message.
package gameerr

import (
	"errors"
	"fmt"
)

// Kind classifies a game-state failure.
type Kind int

// Failure kinds.
const (
	KindUnknown Kind = iota
	KindNotFound
	KindNotAvailableInEra
	KindAmbiguous
	KindContentError
	KindNoSuchConnection
	KindNothingToEnter
	KindNoMatch
	KindNoParent
	KindNotDiscovered
	KindNoEquivalent
)

var kindNames = map[Kind]string{
	KindUnknown:           "unknown",
	KindNotFound:          "not_found",
	KindNotAvailableInEra: "not_available_in_era",
	KindAmbiguous:         "ambiguous",
	KindContentError:      "content_error",
	KindNoSuchConnection:  "no_such_connection",
	KindNothingToEnter:    "nothing_to_enter",
	KindNoMatch:           "no_match",
	KindNoParent:          "no_parent",
	KindNotDiscovered:     "not_discovered",
	KindNoEquivalent:      "no_equivalent",
}

// String returns the snake_case name of k.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified game-state failure carrying a player-facing message.
type Error struct {
	Kind    Kind
	Message string
	// Candidates lists the competing matches for KindAmbiguous.
	Candidates []string
}

// Error returns the player-facing message.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is reports whether target is an *Error of the same Kind.
// This lets callers write errors.Is(err, gameerr.ErrNoMatch).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons. They carry no message.
var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrNotAvailableInEra = &Error{Kind: KindNotAvailableInEra}
	ErrAmbiguous         = &Error{Kind: KindAmbiguous}
	ErrContentError      = &Error{Kind: KindContentError}
	ErrNoSuchConnection  = &Error{Kind: KindNoSuchConnection}
	ErrNothingToEnter    = &Error{Kind: KindNothingToEnter}
	ErrNoMatch           = &Error{Kind: KindNoMatch}
	ErrNoParent          = &Error{Kind: KindNoParent}
	ErrNotDiscovered     = &Error{Kind: KindNotDiscovered}
	ErrNoEquivalent      = &Error{Kind: KindNoEquivalent}
)

// New returns an *Error of kind k with a formatted message.
func New(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or KindUnknown when err is not an *Error.
//
// Postcondition: KindOf(nil) == KindUnknown.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}
