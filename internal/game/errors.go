package game

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownStrain  = errors.New("unknown strain")
	ErrNegativeDays   = errors.New("elapsed days must not be negative")
	ErrNoSupplies     = errors.New("not enough supplies")
	ErrNotBushyEnough = errors.New("plant is not bushy enough")
	ErrAlreadyPruned  = errors.New("plant already pruned")
	ErrTooYoungToTrim = errors.New("plant has no buds to trim yet")
	ErrAlreadyTrimmed = errors.New("plant already trimmed")
	ErrNoPests        = errors.New("plant has no pests")
	ErrTooEarly       = errors.New("plant has not reached the maturation window")
	ErrAlreadyBurped  = errors.New("jar already burped today")
	ErrNotCured       = errors.New("jar has not aged long enough")
	ErrNoSuchPlant    = errors.New("no such plant")
	ErrNoSuchJar      = errors.New("no such jar")
	ErrGardenFull     = errors.New("garden is full")
)

// ActionError reports a failed player action. The state the action was
// applied to is always left untouched.
type ActionError struct {
	Action        string
	Reason        string
	Resource      Supply
	DaysRemaining int
	Err           error
}

func (e *ActionError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Action, e.Err)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func actionErr(action string, err error, reason string) *ActionError {
	return &ActionError{Action: action, Reason: reason, Err: err}
}
