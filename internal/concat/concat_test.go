package concat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
)

// fakeJoiner writes stand-in binaries: the converter logs its argument vector
// and snapshots the content of any list file it was pointed at (the joiner
// deletes it on return), the probe answers a fixed duration.
func fakeJoiner(t *testing.T, duration string) (j *Joiner, argsLog, listLog string) {
	t.Helper()
	dir := t.TempDir()
	argsLog = filepath.Join(dir, "args.log")
	listLog = filepath.Join(dir, "list.log")

	ffmpeg := filepath.Join(dir, "ffmpeg")
	require.NoError(t, os.WriteFile(ffmpeg, []byte(fmt.Sprintf(`#!/bin/sh
echo "$@" >> %q
prev=
for a in "$@"; do
  if [ "$prev" = "-i" ] && [ -f "$a" ]; then cat "$a" >> %q; fi
  prev=$a
done
exit 0
`, argsLog, listLog)), 0o755))

	ffprobe := filepath.Join(dir, "ffprobe")
	require.NoError(t, os.WriteFile(ffprobe, []byte(fmt.Sprintf(
		"#!/bin/sh\necho %q\nexit 0\n", duration)), 0o755))

	return New(ffmpeg, ffprobe), argsLog, listLog
}

func loggedArgs(t *testing.T, argsLog string) string {
	t.Helper()
	data, err := os.ReadFile(argsLog)
	require.NoError(t, err)
	return strings.TrimRight(string(data), "\n")
}

func TestConcatenateDemuxerIsDefault(t *testing.T) {
	j, argsLog, listLog := fakeJoiner(t, "42.5")
	tmp := t.TempDir()
	a := filepath.Join(tmp, "a.mp4")
	b := filepath.Join(tmp, "it's.mp4")

	result, err := j.Concatenate(context.Background(), domain.ConcatenationConfig{
		Inputs: []domain.Input{{Path: a}, {Path: b}},
		Output: filepath.Join(tmp, "joined.mp4"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.InputCount)
	assert.InDelta(t, 42.5, result.Duration, 1e-9)

	args := loggedArgs(t, argsLog)
	assert.Contains(t, args, "-f concat -safe 0 -i")
	assert.Contains(t, args, "-c copy -y")

	list, err := os.ReadFile(listLog)
	require.NoError(t, err)
	assert.Contains(t, string(list), "file '"+a+"'\n")
	// Single quotes in paths follow the demuxer's close-escape-reopen rule.
	assert.Contains(t, string(list), "file '"+filepath.Join(tmp, "it")+`'\''`+"s.mp4'\n")
}

func TestConcatenateRequiresTwoInputsAndOutput(t *testing.T) {
	j, _, _ := fakeJoiner(t, "1.0")

	_, err := j.Concatenate(context.Background(), domain.ConcatenationConfig{
		Inputs: []domain.Input{{Path: "only.mp4"}},
		Output: "out.mp4",
	})
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfiguration))

	_, err = j.Concatenate(context.Background(), domain.ConcatenationConfig{
		Inputs: []domain.Input{{Path: "a.mp4"}, {Path: "b.mp4"}},
	})
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfiguration))
}

func TestConcatenateNormalizationForcesFilterGraph(t *testing.T) {
	j, argsLog, _ := fakeJoiner(t, "10.0")

	_, err := j.Concatenate(context.Background(), domain.ConcatenationConfig{
		Inputs: []domain.Input{{Path: "a.mp4"}, {Path: "b.mkv"}},
		Output: "joined.mp4",
		Normalize: &domain.ConcatNormalize{
			Enabled:      true,
			VideoSize:    "1280x720",
			VideoCodec:   "libx265",
			VideoBitrate: "2M",
			AudioCodec:   "libopus",
		},
	})
	require.NoError(t, err)

	args := loggedArgs(t, argsLog)
	assert.Contains(t, args,
		"[0:v]scale=1280:720,setsar=1[v0];[1:v]scale=1280:720,setsar=1[v1];"+
			"[v0][v1]concat=n=2:v=1:a=0[outv];[0:a][1:a]concat=n=2:v=0:a=1[outa]")
	assert.Contains(t, args, "-map [outv] -map [outa]")
	assert.Contains(t, args, "-c:v libx265 -b:v 2M -c:a libopus")
	assert.NotContains(t, args, "-f concat")
}

func TestConcatenateExplicitFilterMethodDefaults(t *testing.T) {
	j, argsLog, _ := fakeJoiner(t, "10.0")

	_, err := j.Concatenate(context.Background(), domain.ConcatenationConfig{
		Inputs: []domain.Input{{Path: "a.mp4"}, {Path: "b.mp4"}, {Path: "c.mp4"}},
		Output: "joined.mp4",
		Method: domain.ConcatFilter,
	})
	require.NoError(t, err)

	args := loggedArgs(t, argsLog)
	assert.Contains(t, args, "[0:v]null[v0];[1:v]null[v1];[2:v]null[v2]")
	assert.Contains(t, args, "concat=n=3:v=1:a=0[outv]")
	assert.Contains(t, args, "-c:v libx264 -c:a aac")
}

func TestConcatenateTransitionsBuildCrossfadeChain(t *testing.T) {
	j, argsLog, _ := fakeJoiner(t, "10.0")

	_, err := j.Concatenate(context.Background(), domain.ConcatenationConfig{
		Inputs:      []domain.Input{{Path: "a.mp4"}, {Path: "b.mp4"}, {Path: "c.mp4"}},
		Output:      "joined.mp4",
		Transitions: &domain.ConcatTransitions{Enabled: true, Type: "wipeleft", Duration: 2},
	})
	require.NoError(t, err)

	args := loggedArgs(t, argsLog)
	// Inputs probe at 10s each; offsets run 8s, then 16s.
	assert.Contains(t, args,
		"[v0][v1]xfade=transition=wipeleft:duration=2:offset=8.00[x1];"+
			"[x1][v2]xfade=transition=wipeleft:duration=2:offset=16.00[outv]")
	assert.Contains(t, args,
		"[0:a][1:a]acrossfade=d=2[ax1];[ax1][2:a]acrossfade=d=2[outa]")
	assert.NotContains(t, args, "concat=n=")
}

func TestConcatenateUnknownMethod(t *testing.T) {
	j, _, _ := fakeJoiner(t, "1.0")

	_, err := j.Concatenate(context.Background(), domain.ConcatenationConfig{
		Inputs: []domain.Input{{Path: "a.mp4"}, {Path: "b.mp4"}},
		Output: "out.mp4",
		Method: "splice",
	})
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfiguration))
}

func TestMergeMapsStreamsByType(t *testing.T) {
	j, argsLog, _ := fakeJoiner(t, "10.0")

	out, err := j.Merge(context.Background(), domain.MergeConfig{
		Inputs: []domain.MergeStream{
			{Source: domain.Input{Path: "video.mp4"}, Type: "video"},
			{Source: domain.Input{Path: "audio.aac"}, Type: "audio"},
			{Source: domain.Input{Path: "subs.srt"}, Type: "subtitle"},
		},
		Output: "merged.mp4",
	})
	require.NoError(t, err)
	assert.Equal(t, "merged.mp4", out)

	args := loggedArgs(t, argsLog)
	assert.Contains(t, args, "-i video.mp4 -i audio.aac -i subs.srt")
	assert.Contains(t, args, "-map 0:v -map 1:a -map 2:s")
	assert.Contains(t, args, "-c:v copy -c:a copy -c:s mov_text")
}

func TestMergeCustomCodecsWithoutSubtitles(t *testing.T) {
	j, argsLog, _ := fakeJoiner(t, "10.0")

	_, err := j.Merge(context.Background(), domain.MergeConfig{
		Inputs: []domain.MergeStream{
			{Source: domain.Input{Path: "video.mp4"}, Type: "video"},
			{Source: domain.Input{Path: "audio.wav"}, Type: "audio"},
		},
		Output:     "merged.mkv",
		VideoCodec: "libx264",
		AudioCodec: "flac",
	})
	require.NoError(t, err)

	args := loggedArgs(t, argsLog)
	assert.Contains(t, args, "-c:v libx264 -c:a flac")
	assert.NotContains(t, args, "mov_text")
}

func TestMergeValidation(t *testing.T) {
	j, _, _ := fakeJoiner(t, "1.0")

	_, err := j.Merge(context.Background(), domain.MergeConfig{
		Inputs: []domain.MergeStream{{Source: domain.Input{Path: "video.mp4"}}},
		Output: "out.mp4",
	})
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfiguration))
}
