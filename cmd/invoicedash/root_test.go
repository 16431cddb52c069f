package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "seed"})
}

func TestServe_RequiresSecret(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")
	require.NoError(t, os.Unsetenv("AUTH_SECRET"))

	root := newRootCmd()
	root.SetArgs([]string{"serve"})
	root.SetOut(os.Stderr)

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_SECRET")
}
