package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandStructure(t *testing.T) {
	root := newRootCommand()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate"}, names)
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestMigrateCommandRejectsBadArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing_action", args: []string{"migrate"}},
		{name: "unknown_action", args: []string{"migrate", "sideways"}},
		{name: "too_many", args: []string{"migrate", "up", "down"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCommand()
			root.SetArgs(tt.args)
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})

			require.Error(t, root.Execute())
		})
	}
}

func TestServeCommandRejectsArgs(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"serve", "extra"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	assert.Error(t, root.Execute())
}
