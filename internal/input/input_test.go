package input

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
)

func TestStageInputPathPassesThrough(t *testing.T) {
	s, err := StageInput(domain.Input{Path: "/media/in.mp4"})
	require.NoError(t, err)
	assert.Equal(t, "/media/in.mp4", s.Path)

	// No temp file was created, so cleanup must not touch anything.
	s.Cleanup()
	assert.Equal(t, "/media/in.mp4", s.Path)
}

func TestStageInputBufferWritesTempFile(t *testing.T) {
	s, err := StageInput(domain.Input{Buffer: []byte("media bytes")})
	require.NoError(t, err)
	defer s.Cleanup()

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, "media bytes", string(data))
	assert.Contains(t, s.Path, "ffmpeg-forge-")
}

func TestStageInputReaderDrainsStream(t *testing.T) {
	s, err := StageInput(domain.Input{Reader: strings.NewReader("streamed bytes")})
	require.NoError(t, err)
	defer s.Cleanup()

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, "streamed bytes", string(data))
}

func TestStageInputEmptySourceFails(t *testing.T) {
	_, err := StageInput(domain.Input{})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}

func TestCleanupRemovesTempFileOnce(t *testing.T) {
	s, err := StageInput(domain.Input{Buffer: []byte("x")})
	require.NoError(t, err)

	s.Cleanup()
	_, statErr := os.Stat(s.Path)
	assert.True(t, os.IsNotExist(statErr))

	// Idempotent.
	s.Cleanup()
}

func TestStageOutputWriterAndCollect(t *testing.T) {
	var sink bytes.Buffer
	out := domain.Output{Writer: &sink}

	s, err := StageOutput(out, ".mp4")
	require.NoError(t, err)
	defer s.Cleanup()
	assert.True(t, strings.HasSuffix(s.Path, ".mp4"))

	require.NoError(t, os.WriteFile(s.Path, []byte("finished file"), 0o644))
	require.NoError(t, Collect(s, out))
	assert.Equal(t, "finished file", sink.String())
}

func TestCollectIsNoOpForPathSink(t *testing.T) {
	out := domain.Output{Path: "/media/out.mp4"}
	s, err := StageOutput(out, "")
	require.NoError(t, err)
	assert.NoError(t, Collect(s, out))
}

func TestStageOutputEmptySinkFails(t *testing.T) {
	_, err := StageOutput(domain.Output{}, "")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidOutput))
}

func TestReadStaged(t *testing.T) {
	s, err := StageOutput(domain.Output{Writer: &bytes.Buffer{}}, ".bin")
	require.NoError(t, err)
	defer s.Cleanup()

	require.NoError(t, os.WriteFile(s.Path, []byte{0x00, 0x01, 0x02}, 0o644))
	data, err := ReadStaged(s)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0x02}, data)
}
