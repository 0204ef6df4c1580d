package preset

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
)

func TestGetByCategoryAndName(t *testing.T) {
	p, ok := Get("youtube", "hd1080")
	require.True(t, ok)
	assert.Equal(t, "youtube/hd1080", p.Name)
	assert.Equal(t, "mp4", p.Format)
	assert.Equal(t, "libx264", p.Video.Codec)
	assert.Equal(t, "8M", p.Video.Bitrate)
	assert.Equal(t, 48000, p.Audio.Frequency)
}

func TestGetEmptyNameMeansDefault(t *testing.T) {
	p, ok := Get("tiktok", "")
	require.True(t, ok)
	assert.Equal(t, "tiktok/default", p.Name)
}

func TestGetUnknown(t *testing.T) {
	_, ok := Get("betamax", "hd")
	assert.False(t, ok)

	_, ok = Get("youtube", "")
	assert.False(t, ok, "youtube has no default preset")
}

func TestApplyDoesNotOverrideCallerSettings(t *testing.T) {
	p, ok := Get("web", "hd")
	require.True(t, ok)

	cfg := &domain.ConversionConfig{
		Input:  domain.Input{Path: "in.mp4"},
		Output: domain.Output{Path: "out.mp4"},
		Video:  &domain.VideoConfig{Codec: "libx265"},
	}
	p.Apply(cfg)

	assert.Equal(t, "libx265", cfg.Video.Codec, "caller video settings win")
	assert.Equal(t, "mp4", cfg.Format)
	require.NotNil(t, cfg.Audio)
	assert.Equal(t, "aac", cfg.Audio.Codec)
}

func TestApplyCopiesStreamConfigs(t *testing.T) {
	p, ok := Get("quality", "high")
	require.True(t, ok)

	cfg := &domain.ConversionConfig{}
	p.Apply(cfg)

	require.NotNil(t, cfg.Video)
	cfg.Video.Codec = "changed"
	fresh, _ := Get("quality", "high")
	assert.Equal(t, "libx265", fresh.Video.Codec, "applied config must not alias the built-in")
}

func TestListIsSortedAndNamed(t *testing.T) {
	all := List()
	require.NotEmpty(t, all)

	names := make([]string, len(all))
	for i, p := range all {
		require.NotEmpty(t, p.Name)
		names[i] = p.Name
	}
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "dvd/default")
	assert.Contains(t, names, "size/tiny")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
presets:
  archive:
    format: mkv
    video:
      codec: libx265
      quality: 20
      preset: slow
      size: 1920x1080
    audio:
      codec: flac
  voice:
    format: ogg
    audio:
      codec: libopus
      bitrate: 32k
      channels: 1
`), 0o644))

	presets, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, presets, 2)

	archive := presets[0]
	assert.Equal(t, "archive", archive.Name)
	assert.Equal(t, "mkv", archive.Format)
	require.NotNil(t, archive.Video)
	assert.Equal(t, "libx265", archive.Video.Codec)
	require.NotNil(t, archive.Video.Quality)
	assert.Equal(t, 20, *archive.Video.Quality)
	require.NotNil(t, archive.Video.Size)
	assert.Equal(t, "1920x1080", archive.Video.Size.Raw)
	assert.Equal(t, "flac", archive.Audio.Codec)

	voice := presets[1]
	assert.Equal(t, "voice", voice.Name)
	assert.Nil(t, voice.Video)
	assert.Equal(t, 1, voice.Audio.Channels)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets: [not, a, map]"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
