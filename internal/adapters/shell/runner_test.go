package shell_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sketchsense/internal/adapters/shell"
	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/sketchsense/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newRunner(t *testing.T) (*shell.Runner, *[]string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	var debug []string
	logger.EXPECT().Debug(gomock.Any()).Do(func(msg string) {
		debug = append(debug, msg)
	}).AnyTimes()
	return shell.NewRunner(logger), &debug
}

func TestRunner_Stdin(t *testing.T) {
	r, _ := newRunner(t)

	res, err := r.Run(context.Background(), "cat", nil, "#include <stdint.h>\n")
	require.NoError(t, err)

	assert.Equal(t, "#include <stdint.h>\n", res.Stdout)
	assert.Equal(t, 0, res.ExitCode)
}

func TestRunner_SeparatesStreams(t *testing.T) {
	r, debug := newRunner(t)

	res, err := r.Run(context.Background(), "sh", []string{"-c", "echo out; echo err1 >&2; printf err2 >&2"}, "")
	require.NoError(t, err)

	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err1\nerr2", res.Stderr)
	assert.Contains(t, *debug, "sh: err1")
	assert.Contains(t, *debug, "sh: err2")
}

func TestRunner_NonZeroExitIsNotAnError(t *testing.T) {
	r, _ := newRunner(t)

	res, err := r.Run(context.Background(), "sh", []string{"-c", "echo partial; exit 3"}, "")
	require.NoError(t, err)

	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "partial\n", res.Stdout)
}

func TestRunner_MissingExecutable(t *testing.T) {
	r, _ := newRunner(t)

	res, err := r.Run(context.Background(), "definitely-not-a-real-compiler-xyz", nil, "")
	require.Error(t, err)

	assert.ErrorContains(t, err, domain.ErrCommandStartFailed.Error())
	assert.Equal(t, -1, res.ExitCode)
}

func TestRunner_ContextTimeout(t *testing.T) {
	r, _ := newRunner(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := r.Run(ctx, "sleep", []string{"5"}, "")
	assert.Error(t, err)
}
