package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunWithoutArguments(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{}, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "Usage:")
	assert.Empty(t, out.String())
}

func TestRunWithOneArgument(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"RGAPI-test-key"}, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "Usage:")
	assert.Empty(t, out.String())
}

func TestRunWithTooManyArguments(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"RGAPI-test-key", "puuid", "extra"}, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "Usage:")
	assert.Empty(t, out.String())
}

func TestRunWithUnknownFlag(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"-x"}, &out, &errOut)
	assert.Equal(t, 1, code)
}

func TestRunWithMissingConfigFile(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"-c", "no-such-config.yml", "RGAPI-test-key", "puuid"}, &out, &errOut)
	assert.Equal(t, 1, code)
	assert.Empty(t, out.String())
}
