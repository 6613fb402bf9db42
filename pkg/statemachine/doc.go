// Package statemachine provides a generic, stateless finite state machine.
//
// A Machine is a table of transitions keyed by (from state, event). It does
// not remember a current state; the caller supplies it on every Fire and
// stores the result. This fits entities whose state lives in a database row.
//
//	type status string
//	type event string
//
//	m := statemachine.MustNew(
//		statemachine.WithTransition[status, event]("new", "active", "subscribe",
//			statemachine.WithAction[status, event](insert)),
//		statemachine.WithTransition[status, event]("inactive", "active", "subscribe",
//			statemachine.WithAction[status, event](reactivate)),
//	)
//
//	next, err := m.Fire(ctx, current, "subscribe", email)
//	if statemachine.IsNoTransition(err) {
//		// e.g. already active
//	}
//
// Guards select between several transitions registered for the same pair;
// the first whose guards all pass wins. Actions run in order and any error
// aborts the transition, leaving the caller with the original state.
package statemachine
