package ffmpegforge

import (
	"context"

	"github.com/parth181195/ffmpeg-forge/internal/preset"
)

// Preset is a named partial conversion config that fills in unset fields.
type Preset = preset.Preset

// ExtractThumbnails pulls frames from a video by the configured strategy:
// explicit timestamps, an even count, a fixed interval, scene changes, or
// the converter's own best-frame picker.
func (f *FFmpeg) ExtractThumbnails(ctx context.Context, cfg ThumbnailConfig) (ThumbnailResult, error) {
	return f.extractor.Thumbnails(ctx, cfg)
}

// Screenshot captures a single frame, addressed by timestamp or frame number.
// Returns the written file's path.
func (f *FFmpeg) Screenshot(ctx context.Context, cfg ScreenshotConfig) (string, error) {
	return f.extractor.Screenshot(ctx, cfg)
}

// Screenshots captures multiple frames into a folder, by explicit timestamps,
// an even count, or a fixed interval.
func (f *FFmpeg) Screenshots(ctx context.Context, cfg ScreenshotsConfig) (ThumbnailResult, error) {
	return f.extractor.Screenshots(ctx, cfg)
}

// GenerateTrailer cuts a short preview reel out of a longer video.
func (f *FFmpeg) GenerateTrailer(ctx context.Context, cfg TrailerConfig) (TrailerResult, error) {
	return f.trailers.Generate(ctx, cfg)
}

// Concatenate joins multiple inputs into one output. Same-codec inputs splice
// without re-encoding; normalization or transitions force a re-encode.
func (f *FFmpeg) Concatenate(ctx context.Context, cfg ConcatenationConfig) (ConcatenationResult, error) {
	return f.joiner.Concatenate(ctx, cfg)
}

// Merge multiplexes separate video, audio and subtitle inputs into one
// container, stream-copying by default. Returns the output path.
func (f *FFmpeg) Merge(ctx context.Context, cfg MergeConfig) (string, error) {
	return f.joiner.Merge(ctx, cfg)
}

// PictureInPicture overlays one video onto another. Returns the output path.
func (f *FFmpeg) PictureInPicture(ctx context.Context, cfg PictureInPictureConfig) (string, error) {
	return f.composer.PictureInPicture(ctx, cfg)
}

// SideBySide stacks two videos horizontally or vertically for comparison.
// Returns the output path.
func (f *FFmpeg) SideBySide(ctx context.Context, cfg SideBySideConfig) (string, error) {
	return f.composer.SideBySide(ctx, cfg)
}

// GetPreset looks up a built-in preset by category and name; an empty name
// means the category's default.
func (f *FFmpeg) GetPreset(category, name string) (Preset, bool) {
	return preset.Get(category, name)
}

// ListPresets returns every built-in preset, sorted by name.
func (f *FFmpeg) ListPresets() []Preset {
	return preset.List()
}

// LoadPresetsFile reads user presets from a YAML file.
func (f *FFmpeg) LoadPresetsFile(path string) ([]Preset, error) {
	return preset.LoadFile(path)
}

// ConvertWithPreset fills the config's unset fields from a built-in preset
// and runs the conversion.
func (f *FFmpeg) ConvertWithPreset(ctx context.Context, cfg *ConversionConfig, category, name string) error {
	p, ok := preset.Get(category, name)
	if !ok {
		return &Error{
			Kind:     KindInvalidConfiguration,
			Problems: []string{"unknown preset " + category + "/" + name},
		}
	}
	p.Apply(cfg)
	return f.Convert(ctx, cfg)
}
