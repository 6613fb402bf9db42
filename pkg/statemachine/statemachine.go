package statemachine

import (
	"context"
	"fmt"
)

// Action executes side effects of a transition. Returning an error aborts it.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E, data any) error

// Guard decides at fire time whether a transition may proceed.
type Guard[S, E comparable] func(ctx context.Context, from S, event E, data any) bool

// Transition is a state change triggered by an event.
type Transition[S, E comparable] struct {
	From    S
	To      S
	Event   E
	Guards  []Guard[S, E]
	Actions []Action[S, E]
}

type key[S, E comparable] struct {
	from  S
	event E
}

// Machine is an immutable transition table. It holds no current state:
// callers load the state of an entity, fire an event against it and persist
// the returned state, so one Machine serves any number of entities
// concurrently.
type Machine[S, E comparable] struct {
	transitions map[key[S, E]][]Transition[S, E]
}

// Fire evaluates the transitions registered for (from, event) in
// registration order. The first one whose guards all pass has its actions
// run in order and its target state returned.
func (m *Machine[S, E]) Fire(ctx context.Context, from S, event E, data any) (S, error) {
	t, err := m.match(ctx, from, event, data)
	if err != nil {
		return from, err
	}
	for _, action := range t.Actions {
		if err := action(ctx, from, t.To, event, data); err != nil {
			return from, fmt.Errorf("action failed: %w", err)
		}
	}
	return t.To, nil
}

// CanFire reports whether Fire would find a transition, without running actions.
func (m *Machine[S, E]) CanFire(ctx context.Context, from S, event E, data any) bool {
	_, err := m.match(ctx, from, event, data)
	return err == nil
}

// Events lists the distinct events registered from state.
func (m *Machine[S, E]) Events(from S) []E {
	var out []E
	seen := make(map[E]struct{})
	for k := range m.transitions {
		if k.from != from {
			continue
		}
		if _, ok := seen[k.event]; ok {
			continue
		}
		seen[k.event] = struct{}{}
		out = append(out, k.event)
	}
	return out
}

func (m *Machine[S, E]) match(ctx context.Context, from S, event E, data any) (*Transition[S, E], error) {
	candidates := m.transitions[key[S, E]{from: from, event: event}]
	if len(candidates) == 0 {
		return nil, &NoTransitionError{State: fmt.Sprint(from), Event: fmt.Sprint(event)}
	}
	for i := range candidates {
		if guardsPass(ctx, &candidates[i], from, event, data) {
			return &candidates[i], nil
		}
	}
	return nil, &RejectedError{State: fmt.Sprint(from), Event: fmt.Sprint(event)}
}

func guardsPass[S, E comparable](ctx context.Context, t *Transition[S, E], from S, event E, data any) bool {
	for _, guard := range t.Guards {
		if !guard(ctx, from, event, data) {
			return false
		}
	}
	return true
}
