package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		args         []string
		expectedExit int
	}{
		{
			name:         "version command",
			args:         []string{"cargo-ci-precache", "version"},
			expectedExit: 0,
		},
		{
			name:         "help flag",
			args:         []string{"cargo-ci-precache", "--help"},
			expectedExit: 0,
		},
		{
			name:         "unknown command",
			args:         []string{"cargo-ci-precache", "nonsense"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.expectedExit, run())
		})
	}
}
