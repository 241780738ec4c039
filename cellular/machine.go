package cellular

import (
	"context"
	"errors"
	"log/slog"

	"github.com/looplab/fsm"
)

// forced builds events that move a machine to dst from any of the given
// states. URCs report what the modem already did, so they are never refused.
func forced(states []string, transitions map[string]string) fsm.Events {
	events := make(fsm.Events, 0, len(transitions))
	for name, dst := range transitions {
		events = append(events, fsm.EventDesc{Name: name, Src: states, Dst: dst})
	}
	return events
}

func newMachine(initial string, events fsm.Events, logger *slog.Logger, attrs ...any) *fsm.FSM {
	return fsm.NewFSM(initial, events, fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			logger.Debug("State transition",
				append([]any{"event", e.Event, "from", e.Src, "to", e.Dst}, attrs...)...)
		},
	})
}

// fire triggers event on f. Re-entering the current state is not an error.
func fire(f *fsm.FSM, event string) error {
	err := f.Event(context.Background(), event)
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		return err
	}
	return nil
}
