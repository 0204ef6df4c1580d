package capability

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
)

const versionOutput = `ffmpeg version 6.1.1 Copyright (c) 2000-2023 the FFmpeg developers
built with Apple clang version 15.0.0
  --prefix=/opt/homebrew --enable-gpl --enable-libx264
libavutil      58.29.100 / 58.29.100
libavcodec     60.31.102 / 60.31.102
`

const formatsOutput = `File formats:
 D. = Demuxing supported
 .E = Muxing supported
 --
 D  aac             raw ADTS AAC
 DE avi             AVI (Audio Video Interleaved)
  E mp4             MP4 (MPEG-4 Part 14)
 DE matroska,webm   Matroska / WebM
 D  mov,mp4,m4a,3gp,3g2,mj2 QuickTime / MOV
`

const encodersOutput = `Encoders:
 V..... = Video
 A..... = Audio
 S..... = Subtitle
 ------
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC
 V....D h264_nvenc           NVIDIA NVENC H.264 encoder
 V....D libx265              libx265 H.265 / HEVC
 A....D aac                  AAC (Advanced Audio Coding)
 A....D libopus              libopus Opus
 S..... mov_text             3GPP Timed Text subtitle
`

func TestParseVersion(t *testing.T) {
	info := ParseVersion(versionOutput)
	assert.Equal(t, "6.1.1", info.Version)
	assert.Equal(t, "2000-2023 the FFmpeg developers", info.Copyright)
	assert.Contains(t, info.Configuration, "--prefix=/opt/homebrew --enable-gpl --enable-libx264")
	assert.Equal(t, "58.29.100", info.LibVersions["libavutil"])
}

func TestParseVersionUnparseable(t *testing.T) {
	info := ParseVersion("garbage")
	assert.Equal(t, "unknown", info.Version)
}

func TestParseFormatsRoutesByFlagPair(t *testing.T) {
	formats := ParseFormats(formatsOutput)

	assert.Contains(t, formats.Demuxing, "aac")
	assert.NotContains(t, formats.Muxing, "aac")

	assert.Contains(t, formats.Muxing, "mp4")
	assert.NotContains(t, formats.Demuxing, "mp4")

	assert.Contains(t, formats.Demuxing, "avi")
	assert.Contains(t, formats.Muxing, "avi")

	// Comma-joined aliases stay one token, as the converter prints them.
	assert.Contains(t, formats.Muxing, "matroska,webm")
}

func TestParseFormatsIgnoresHeaderLines(t *testing.T) {
	formats := ParseFormats("File formats:\n D. = Demuxing supported\n")
	assert.Empty(t, formats.Demuxing)
	assert.Empty(t, formats.Muxing)
}

func TestParseCodecListSplitsByStreamType(t *testing.T) {
	list := ParseCodecList(encodersOutput)
	assert.Equal(t, []string{"libx264", "h264_nvenc", "libx265"}, list.Video)
	assert.Equal(t, []string{"aac", "libopus"}, list.Audio)
	assert.Equal(t, []string{"mov_text"}, list.Subtitle)
}

func TestCanEncodeAgainstFakeConverter(t *testing.T) {
	client := NewClient(writeFakeFFmpeg(t))

	ok, err := client.CanEncode(context.Background(), "libx264", "video", domain.AccelAny)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.CanEncode(context.Background(), "h264_nvenc", "video", domain.AccelCPU)
	require.NoError(t, err)
	assert.False(t, ok, "hardware encoder must not count as a software one")

	ok, err = client.CanEncode(context.Background(), "aac", "audio", domain.AccelAny)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckEncodeDistinguishesMissingFromWrongClass(t *testing.T) {
	client := NewClient(writeFakeFFmpeg(t))

	err := client.CheckEncode(context.Background(), "libx264", "video", domain.AccelIntel)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindHardwareUnavailable))

	err = client.CheckEncode(context.Background(), "libaom-av1", "video", domain.AccelAny)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindCodecUnsupported))

	assert.NoError(t, client.CheckEncode(context.Background(), "libx264", "video", domain.AccelAny))
}

func TestVersionReportsToolNotFound(t *testing.T) {
	client := NewClient(filepath.Join(t.TempDir(), "missing-ffmpeg"))
	_, err := client.Version(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindToolNotFound))
}

func TestSuggestSplitsCodecsAndChecksRemux(t *testing.T) {
	meta := domain.VideoMetadata{
		Format:     domain.FormatMetadata{FormatName: "mov,mp4,m4a,3gp,3g2,mj2"},
		VideoCodec: "h264",
		AudioCodec: "aac",
		Width:      1920,
		Height:     1080,
	}
	formats := domain.Formats{Muxing: []string{"mp4", "mkv", "webm", "mov"}}
	codecs := domain.Codecs{
		Encoders: domain.CodecList{
			Video: []string{"libx264", "h264_nvenc"},
			Audio: []string{"aac", "libopus", "pcm_s16le"},
		},
	}

	s := Suggest(meta, formats, codecs)
	assert.Equal(t, "mov", s.CurrentFormat)
	assert.Equal(t, "1920x1080", s.CurrentResolution)
	assert.Equal(t, []string{"libx264"}, s.SuggestedVideoCodecs.CPU)
	assert.Equal(t, []string{"h264_nvenc"}, s.SuggestedVideoCodecs.GPU)
	assert.Equal(t, []string{"aac", "libopus"}, s.SuggestedAudioCodecs)
	assert.True(t, s.CanTranscode)
	assert.True(t, s.CanRemux)
	assert.Contains(t, s.SuggestedFormats, "mp4")
	assert.NotContains(t, s.SuggestedFormats, "avi")
}

func TestSuggestUnknownFormatFallsBackSorted(t *testing.T) {
	meta := domain.VideoMetadata{
		Format: domain.FormatMetadata{FormatName: "nut"},
	}
	formats := domain.Formats{Muxing: []string{"webm", "mp4", "mkv", "avi", "mov", "flv", "ogv"}}

	s := Suggest(meta, formats, domain.Codecs{})
	assert.Equal(t, []string{"avi", "flv", "mkv", "mov", "mp4", "ogv", "webm"}, s.SuggestedFormats)
}

func TestCheckCompatibilityDirectCopy(t *testing.T) {
	compat := CheckCompatibility("h264", "aac", "mp4", "copy", "copy", "mkv")
	assert.True(t, compat.CanDirectCopy)
	assert.False(t, compat.RequiresTranscode)
	assert.Equal(t, "lossless", compat.EstimatedQuality)
	assert.Empty(t, compat.Warnings)
}

func TestCheckCompatibilityTranscodeWarnings(t *testing.T) {
	compat := CheckCompatibility("hevc", "flac", "mkv", "libx264", "aac", "avi")
	assert.True(t, compat.RequiresTranscode)
	assert.Equal(t, "high", compat.EstimatedQuality)
	assert.Contains(t, compat.Warnings, "transcoding required - may lose quality")
	assert.Contains(t, compat.Warnings, "audio will be re-encoded")
}

func TestRecommendCoversUseCases(t *testing.T) {
	web := Recommend(domain.UseCaseWeb)
	assert.Equal(t, "mp4", web.Format)
	assert.Equal(t, "libx264", web.VideoCodec)
	assert.NotEmpty(t, web.Alternatives)

	size := Recommend(domain.UseCaseSize)
	assert.Equal(t, "webm", size.Format)
	assert.Equal(t, "libvpx-vp9", size.VideoCodec)

	other := Recommend(domain.UseCase("unknown"))
	assert.Equal(t, "mp4", other.Format)
	assert.Empty(t, other.Alternatives)
}

// writeFakeFFmpeg installs a shell script answering -encoders and -decoders
// with a fixed capability list.
func writeFakeFFmpeg(t *testing.T) string {
	t.Helper()
	script := filepath.Join(t.TempDir(), "ffmpeg")
	require.NoError(t, os.WriteFile(script, []byte(fakeCapabilityScript), 0o755))
	return script
}

const fakeCapabilityScript = `#!/bin/sh
case "$1" in
-encoders|-decoders)
cat <<'EOF'
Encoders:
 ------
 V....D libx264              libx264 H.264
 V....D h264_nvenc           NVIDIA NVENC H.264 encoder
 A....D aac                  AAC (Advanced Audio Coding)
EOF
;;
-formats)
cat <<'EOF'
File formats:
 --
 DE mp4             MP4
EOF
;;
*)
echo "ffmpeg version 6.1.1 Copyright (c) 2000-2023 the FFmpeg developers"
;;
esac
exit 0
`
