package statemachine

import "fmt"

// Option adds transitions to a Machine during construction.
type Option[S, E comparable] func(*Machine[S, E]) error

// TransitionOption configures guards and actions of one transition.
type TransitionOption[S, E comparable] func(*Transition[S, E])

// New builds a Machine from opts.
func New[S, E comparable](opts ...Option[S, E]) (*Machine[S, E], error) {
	m := &Machine[S, E]{transitions: make(map[key[S, E]][]Transition[S, E])}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	if len(m.transitions) == 0 {
		return nil, ErrNoTransitions
	}
	return m, nil
}

// MustNew is like New but panics on error.
func MustNew[S, E comparable](opts ...Option[S, E]) *Machine[S, E] {
	m, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// WithTransition registers from --event--> to. Several transitions may share
// (from, event); guards pick between them in registration order.
func WithTransition[S, E comparable](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		t := Transition[S, E]{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		k := key[S, E]{from: from, event: event}
		m.transitions[k] = append(m.transitions[k], t)
		return nil
	}
}

func WithGuard[S, E comparable](guard Guard[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if guard != nil {
			t.Guards = append(t.Guards, guard)
		}
	}
}

func WithAction[S, E comparable](action Action[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if action != nil {
			t.Actions = append(t.Actions, action)
		}
	}
}

// WithActions appends several actions, skipping nil ones.
func WithActions[S, E comparable](actions ...Action[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		for _, action := range actions {
			if action != nil {
				t.Actions = append(t.Actions, action)
			}
		}
	}
}
