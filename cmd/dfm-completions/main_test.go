package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	for _, shell := range shells() {
		t.Run(shell, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, generate(shell, buf))
			assert.Contains(t, buf.String(), "dfm")
		})
	}
}

func TestGenerate_UnknownShell(t *testing.T) {
	err := generate("tcsh", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bash, fish, powershell, zsh")
}
