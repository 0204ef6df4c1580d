package ffmpegforge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToSearchPathNames(t *testing.T) {
	t.Setenv("FFMPEG_PATH", "")
	t.Setenv("FFPROBE_PATH", "")

	f := New(Options{})
	assert.Equal(t, "ffmpeg", f.FFmpegPath())
	assert.Equal(t, "ffprobe", f.FFprobePath())
}

func TestNewEnvironmentFallback(t *testing.T) {
	t.Setenv("FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("FFPROBE_PATH", "/opt/ffmpeg/bin/ffprobe")

	f := New(Options{})
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", f.FFmpegPath())
	assert.Equal(t, "/opt/ffmpeg/bin/ffprobe", f.FFprobePath())
}

func TestNewExplicitPathsWinOverEnvironment(t *testing.T) {
	t.Setenv("FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")

	f := New(Options{FFmpegPath: "/usr/local/bin/ffmpeg"})
	assert.Equal(t, "/usr/local/bin/ffmpeg", f.FFmpegPath())
}

func TestValidateSurfacesAllProblems(t *testing.T) {
	f := New(Options{})

	problems := f.Validate(&ConversionConfig{})
	assert.Contains(t, problems, "input is required")
	assert.Contains(t, problems, "output is required")

	assert.Empty(t, f.Validate(&ConversionConfig{
		Input:  Input{Path: "in.mp4"},
		Output: Output{Path: "out.mp4"},
	}))
}

func TestArgsPreviewsCommandWithoutSpawning(t *testing.T) {
	f := New(Options{FFmpegPath: "ffmpeg-never-invoked"})

	args, err := f.Args(context.Background(), &ConversionConfig{
		Input:  Input{Path: "in.mp4"},
		Output: Output{Path: "out.mp4"},
		Video:  &VideoConfig{Codec: "libx264", Bitrate: "1M"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"-hide_banner",
		"-i", "in.mp4",
		"-c:v", "libx264",
		"-b:v", "1M",
		"-y", "out.mp4",
	}, args)
}

func TestConvertWithPresetUnknownName(t *testing.T) {
	f := New(Options{})

	err := f.ConvertWithPreset(context.Background(), &ConversionConfig{
		Input:  Input{Path: "in.mp4"},
		Output: Output{Path: "out.mp4"},
	}, "betamax", "hd")

	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidConfiguration))
}

func TestGetPresetAndList(t *testing.T) {
	f := New(Options{})

	p, ok := f.GetPreset("youtube", "hd1080")
	require.True(t, ok)
	assert.Equal(t, "youtube/hd1080", p.Name)

	assert.NotEmpty(t, f.ListPresets())
}

func TestCheckAgainstFakeTools(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ffmpeg", "ffprobe"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(
			"#!/bin/sh\necho 'ffmpeg version 6.1.1 Copyright (c) 2000-2023'\nexit 0\n"), 0o755))
	}

	f := New(Options{
		FFmpegPath:  filepath.Join(dir, "ffmpeg"),
		FFprobePath: filepath.Join(dir, "ffprobe"),
	})
	assert.NoError(t, f.Check(context.Background()))
}

func TestCheckReportsMissingTool(t *testing.T) {
	f := New(Options{
		FFmpegPath:  filepath.Join(t.TempDir(), "no-such-ffmpeg"),
		FFprobePath: filepath.Join(t.TempDir(), "no-such-ffprobe"),
	})

	err := f.Check(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindToolNotFound))
}
