package main

import (
	"bytes"
	"errors"
	"fmt"
	"kbsite/internal/builder"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 2, exitCode(fmt.Errorf("%w: 1 failure(s)", builder.ErrBuildIncomplete)))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestBuild_DefaultActionOnEmptyRoot(t *testing.T) {
	root := t.TempDir()
	out, err := execute(t, "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 8 of 8 pages")

	for _, f := range builder.OutputFiles() {
		assert.FileExists(t, filepath.Join(root, f))
	}
	assert.FileExists(t, filepath.Join(root, builder.MarkerFile))
}

func TestBuild_RelativeOutputIsUnderRoot(t *testing.T) {
	root := t.TempDir()
	_, err := execute(t, "build", "--root", root, "--output", "public")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "public", "index.html"))
	assert.NoFileExists(t, filepath.Join(root, "index.html"))
}

func TestBuild_PartialFailureExitsTwo(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "help.html", "blocker"), 0755))

	out, err := execute(t, "build", "--root", root)
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
	assert.Contains(t, out, "Generated 7 of 8 pages")
	assert.Contains(t, out, "failed: help.html")
	assert.FileExists(t, filepath.Join(root, "contact.html"))
}

func TestBuild_SetupErrorsExitOne(t *testing.T) {
	_, err := execute(t, "build", "--root", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))

	_, err = execute(t, "build", "--root", t.TempDir(), "--help-renderer", "fancy")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))

	_, err = execute(t, "build", "--root", t.TempDir(), "--config", "does-not-exist.yaml")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestNewThenBuild(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	out, err := execute(t, "new", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "kbsite.yaml")

	_, err = execute(t, "new", dir)
	assert.Error(t, err)

	_, err = execute(t, "add", "--root", dir, "faqs", "Do you offer payment plans?")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "schemas", "faqs", "do-you-offer-payment-plans.yaml"))

	_, err = execute(t, "--root", dir, "--repository", "acme/example")
	require.NoError(t, err)

	faqs, err := os.ReadFile(filepath.Join(dir, "faqs.html"))
	require.NoError(t, err)
	assert.Contains(t, string(faqs), "Do you offer payment plans?")
	assert.Contains(t, string(faqs), "How do I book an appointment?")

	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "https://raw.githubusercontent.com/acme/example/main/schemas/faqs/general.yaml")
}
