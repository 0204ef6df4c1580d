package ffmpegforge

import (
	"context"

	"github.com/parth181195/ffmpeg-forge/internal/capability"
	"github.com/parth181195/ffmpeg-forge/internal/probe"
)

// GetMetadata probes the input and returns the full structured result.
func (f *FFmpeg) GetMetadata(ctx context.Context, in Input) (MediaMetadata, error) {
	return f.prober.Probe(ctx, in)
}

// GetVideoMetadata probes the input and returns the video-oriented view.
// Fails with KindInvalidInput when the media has no video stream.
func (f *FFmpeg) GetVideoMetadata(ctx context.Context, in Input) (VideoMetadata, error) {
	meta, err := f.prober.Probe(ctx, in)
	if err != nil {
		return VideoMetadata{}, err
	}
	return probe.VideoMetadata(meta)
}

// GetImageMetadata probes the input and returns the still-image view.
func (f *FFmpeg) GetImageMetadata(ctx context.Context, in Input) (ImageMetadata, error) {
	meta, err := f.prober.Probe(ctx, in)
	if err != nil {
		return ImageMetadata{}, err
	}
	return probe.ImageMetadata(meta)
}

// GetDuration returns the input's duration in seconds.
func (f *FFmpeg) GetDuration(ctx context.Context, in Input) (float64, error) {
	meta, err := f.GetVideoMetadata(ctx, in)
	if err != nil {
		return 0, err
	}
	return meta.Duration, nil
}

// GetResolution returns the input's video width and height in pixels.
func (f *FFmpeg) GetResolution(ctx context.Context, in Input) (width, height int, err error) {
	meta, err := f.GetVideoMetadata(ctx, in)
	if err != nil {
		return 0, 0, err
	}
	return meta.Width, meta.Height, nil
}

// GetFrameRate returns the input's average video frame rate.
func (f *FFmpeg) GetFrameRate(ctx context.Context, in Input) (float64, error) {
	meta, err := f.GetVideoMetadata(ctx, in)
	if err != nil {
		return 0, err
	}
	return meta.FrameRate, nil
}

// IsVideo reports whether the input has a video stream with a frame rate. A
// video-typed stream without one is a still image, not a video.
func (f *FFmpeg) IsVideo(ctx context.Context, in Input) (bool, error) {
	meta, err := f.prober.Probe(ctx, in)
	if err != nil {
		return false, err
	}
	return probe.IsVideo(meta), nil
}

// IsImage reports whether the input is a still image.
func (f *FFmpeg) IsImage(ctx context.Context, in Input) (bool, error) {
	meta, err := f.prober.Probe(ctx, in)
	if err != nil {
		return false, err
	}
	return probe.IsImage(meta), nil
}

// SuggestConversions probes the input and cross-references it against the
// converter's capability lists, returning remux-compatible containers and
// CPU/GPU encode options.
func (f *FFmpeg) SuggestConversions(ctx context.Context, in Input) (ConversionSuggestion, error) {
	meta, err := f.GetVideoMetadata(ctx, in)
	if err != nil {
		return ConversionSuggestion{}, err
	}
	formats, err := f.capabilities.Formats(ctx)
	if err != nil {
		return ConversionSuggestion{}, err
	}
	codecs, err := f.capabilities.Codecs(ctx)
	if err != nil {
		return ConversionSuggestion{}, err
	}
	return capability.Suggest(meta, formats, codecs), nil
}

// CheckCompatibility rates a proposed conversion of the probed input: copy
// detection, quality tier of the target codecs, and warnings for lossy or
// container-incompatible combinations.
func (f *FFmpeg) CheckCompatibility(ctx context.Context, in Input, targetVideoCodec, targetAudioCodec, targetFormat string) (ConversionCompatibility, error) {
	meta, err := f.GetVideoMetadata(ctx, in)
	if err != nil {
		return ConversionCompatibility{}, err
	}
	return capability.CheckCompatibility(
		meta.VideoCodec, meta.AudioCodec, meta.Format.FormatName,
		targetVideoCodec, targetAudioCodec, targetFormat,
	), nil
}

// Recommend returns format and codec picks for a use case ("web", "mobile",
// "quality", "size", "compatibility"), with alternatives.
func (f *FFmpeg) Recommend(useCase UseCase) ConversionRecommendation {
	return capability.Recommend(useCase)
}
