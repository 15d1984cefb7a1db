// SPDX-FileCopyrightText: 2026 The vmlaunch authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qlearn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kderwin/vmlaunch/internal/qlearn"
)

func TestLaunchState(t *testing.T) {
	assert.Equal(t,
		qlearn.LaunchState("x.iso", true),
		qlearn.LaunchState("x.iso", true),
	)
	assert.NotEqual(t,
		qlearn.LaunchState("x.iso", true),
		qlearn.LaunchState("x.iso", false),
	)
	assert.NotEqual(t,
		qlearn.LaunchState("x.iso", true),
		qlearn.LaunchState("y.iso", true),
	)
}

func TestRAMAction(t *testing.T) {
	action := qlearn.RAMAction(4096)

	value, err := action.MemoryMB()
	require.NoError(t, err)
	assert.Equal(t, uint64(4096), value)

	_, err = qlearn.Action("not-a-number").MemoryMB()
	assert.Error(t, err)
}

func TestLaunchReward(t *testing.T) {
	assert.Greater(t, qlearn.LaunchReward(true), qlearn.LaunchReward(false))
}

func TestTableSuggestUnseen(t *testing.T) {
	table := qlearn.NewTable()

	_, ok := table.Suggest(qlearn.LaunchState("x.iso", false))
	assert.False(t, ok)
}

func TestTableUpdate(t *testing.T) {
	state := qlearn.LaunchState("x.iso", true)
	action := qlearn.RAMAction(2048)

	t.Run("first update stores half the reward", func(t *testing.T) {
		table := qlearn.NewTable()
		table.Update(state, action, 1.0, state)

		// (1-0.5)*0 + 0.5*(1.0 + 0.9*0) = 0.5
		assert.InDelta(t, 0.5, table.Estimate(state, action), 1e-9)
	})

	t.Run("second update discounts the best next value", func(t *testing.T) {
		table := qlearn.NewTable()
		table.Update(state, action, 1.0, state)
		table.Update(state, action, 1.0, state)

		// 0.5*0.5 + 0.5*(1.0 + 0.9*0.5) = 0.975
		assert.InDelta(t, 0.975, table.Estimate(state, action), 1e-9)
	})

	t.Run("unseen next state defaults to zero", func(t *testing.T) {
		table := qlearn.NewTable()
		next := qlearn.LaunchState("never-seen.img", false)
		table.Update(state, action, 0.5, next)

		assert.InDelta(t, 0.25, table.Estimate(state, action), 1e-9)
	})
}

func TestTableSuggest(t *testing.T) {
	state := qlearn.LaunchState("x.iso", true)
	table := qlearn.NewTable()

	table.Update(state, qlearn.RAMAction(1024), 0.5, state)
	table.Update(state, qlearn.RAMAction(4096), 1.0, state)
	table.Update(state, qlearn.RAMAction(4096), 1.0, state)

	action, ok := table.Suggest(state)
	require.True(t, ok)
	assert.Equal(t, qlearn.RAMAction(4096), action)
}
