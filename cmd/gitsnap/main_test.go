package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xsukax/go-gitsnap/internal/clone"
)

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.NotNil(t, cmd)
	assert.Equal(t, "gitsnap", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestSubcommands(t *testing.T) {
	cmd := newRootCmd()

	commandNames := make(map[string]bool)
	for _, subcmd := range cmd.Commands() {
		commandNames[subcmd.Name()] = true
	}
	assert.True(t, commandNames["clone"], "Expected clone command not found")
}

func TestCloneCommand_ArgValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name:    "no arguments",
			args:    []string{},
			wantErr: true,
		},
		{
			name:    "too many arguments",
			args:    []string{"a", "b", "c"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newCloneCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCloneCommand_PassesArguments(t *testing.T) {
	originalCloneFunc := cloneFunc
	defer func() { cloneFunc = originalCloneFunc }()

	var got clone.Options
	cloneFunc = func(opts clone.Options) (*clone.Result, error) {
		got = opts
		return &clone.Result{Dest: "/tmp/x"}, nil
	}

	cmd := newCloneCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"https://github.com/alice/tools.git", "my-folder"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "https://github.com/alice/tools.git", got.Source)
	assert.Equal(t, "my-folder", got.Destination)
	assert.NotNil(t, got.Config)
	assert.NotNil(t, got.Tracker)
}

func TestCloneCommand_DestinationOptional(t *testing.T) {
	originalCloneFunc := cloneFunc
	defer func() { cloneFunc = originalCloneFunc }()

	var got clone.Options
	cloneFunc = func(opts clone.Options) (*clone.Result, error) {
		got = opts
		return &clone.Result{}, nil
	}

	cmd := newCloneCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"https://github.com/alice/tools.git"})

	require.NoError(t, cmd.Execute())
	assert.Empty(t, got.Destination)
}
