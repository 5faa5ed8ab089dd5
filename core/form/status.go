package form

import "github.com/pkg/errors"

// Status is the submission status of a form.
type Status string

type Event string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

const (
	EventSubmit  Event = "submit"
	EventSucceed Event = "succeed"
	EventFail    Event = "fail"
	EventReset   Event = "reset"
)

// Transition returns the status reached from current on event.
func Transition(current Status, event Event) (Status, error) {
	switch current {
	case StatusIdle:
		switch event {
		case EventSubmit:
			return StatusSubmitting, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StatusSubmitting:
		switch event {
		case EventSucceed:
			return StatusSucceeded, nil
		case EventFail:
			return StatusFailed, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StatusSucceeded, StatusFailed:
		switch event {
		case EventReset:
			return StatusIdle, nil
		default:
			return current, invalidTransition(current, event)
		}
	default:
		return current, errors.Errorf("unknown status %q", current)
	}
}

func invalidTransition(status Status, event Event) error {
	return errors.Errorf("invalid transition: %s --(%s)--> ?", status, event)
}
