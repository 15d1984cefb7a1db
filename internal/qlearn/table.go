// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qlearn provides a minimal tabular reward learner.
//
// The launcher records one (state, action, reward) observation per launch
// and consults the table to prefill the memory prompt with a RAM value that
// was chosen before for the same image and disk combination. The table lives
// in memory only and is discarded when the process exits.
package qlearn

import (
	"fmt"
	"strconv"
)

// Learning rate and discount factor are fixed, there is no decay schedule
// and no exploration policy.
const (
	alpha = 0.5
	gamma = 0.9
)

// State identifies a launch situation. It encodes the base name of the
// selected image and whether a persistent disk was requested.
type State string

// Action identifies a choice made for a [State]. It encodes the chosen RAM
// value in MB.
type Action string

// LaunchState builds the [State] key for an image base name and disk flag.
func LaunchState(imageName string, hasDisk bool) State {
	return State(fmt.Sprintf("%s|disk=%t", imageName, hasDisk))
}

// RAMAction builds the [Action] key for a chosen memory size.
func RAMAction(memoryMB uint64) Action {
	return Action(strconv.FormatUint(memoryMB, 10))
}

// MemoryMB decodes the RAM value the [Action] was built from.
func (a Action) MemoryMB() (uint64, error) {
	value, err := strconv.ParseUint(string(a), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode action: %w", err)
	}

	return value, nil
}

// LaunchReward returns the fixed reward for a launch observation. Requesting
// a persistent disk is valued higher. The reward is a placeholder, it is not
// derived from the actual VM outcome.
func LaunchReward(hasDisk bool) float64 {
	if hasDisk {
		return 1.0
	}

	return 0.5
}

// Table maps states to estimated action values.
//
// Entries are never removed and growth is unbounded. The zero value is not
// usable, create with [NewTable].
type Table struct {
	estimates map[State]map[Action]float64
}

// NewTable creates an empty [Table].
func NewTable() *Table {
	return &Table{
		estimates: make(map[State]map[Action]float64),
	}
}

// Update blends the immediate reward and the best known value of nextState
// into the estimate for (state, action):
//
//	new = (1-alpha)*old + alpha*(reward + gamma*best(nextState))
//
// An unseen (state, action) estimate defaults to 0, as does the best value
// of an unseen nextState.
func (t *Table) Update(state State, action Action, reward float64, nextState State) {
	actions, exists := t.estimates[state]
	if !exists {
		actions = make(map[Action]float64)
		t.estimates[state] = actions
	}

	target := reward + gamma*t.bestValue(nextState)
	actions[action] = (1-alpha)*actions[action] + alpha*target
}

// Suggest returns the best valued action recorded for the state. It reports
// ok=false if the state has never been observed.
func (t *Table) Suggest(state State) (Action, bool) {
	actions, exists := t.estimates[state]
	if !exists || len(actions) == 0 {
		return "", false
	}

	var (
		best      Action
		bestValue float64
		found     bool
	)

	for action, value := range actions {
		better := value > bestValue ||
			// Tie-break on the action key so the suggestion is stable
			// across map iteration orders.
			(value == bestValue && action < best)

		if !found || better {
			best = action
			bestValue = value
			found = true
		}
	}

	return best, true
}

// Estimate returns the stored value for (state, action), 0 if unseen.
func (t *Table) Estimate(state State, action Action) float64 {
	return t.estimates[state][action]
}

func (t *Table) bestValue(state State) float64 {
	var best float64

	for _, value := range t.estimates[state] {
		if value > best {
			best = value
		}
	}

	return best
}
