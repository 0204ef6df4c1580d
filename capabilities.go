package ffmpegforge

import (
	"context"

	"github.com/parth181195/ffmpeg-forge/internal/hwaccel"
)

// Version reports the converter's version, build configuration and bundled
// library versions.
func (f *FFmpeg) Version(ctx context.Context) (VersionInfo, error) {
	return f.capabilities.Version(ctx)
}

// Formats reports the container formats the converter can read and write.
func (f *FFmpeg) Formats(ctx context.Context) (Formats, error) {
	return f.capabilities.Formats(ctx)
}

// Codecs reports the encoders and decoders available, split by stream type.
func (f *FFmpeg) Codecs(ctx context.Context) (Codecs, error) {
	return f.capabilities.Codecs(ctx)
}

// GetCapabilities bundles Version, Formats and Codecs into one call.
func (f *FFmpeg) GetCapabilities(ctx context.Context) (Capabilities, error) {
	return f.capabilities.Capabilities(ctx)
}

// CanMux reports whether the container format is writable. Advisory queries
// like this return a boolean; use CheckMux for hard-error semantics.
func (f *FFmpeg) CanMux(ctx context.Context, format string) (bool, error) {
	return f.capabilities.CanMux(ctx, format)
}

// CanDemux reports whether the container format is readable.
func (f *FFmpeg) CanDemux(ctx context.Context, format string) (bool, error) {
	return f.capabilities.CanDemux(ctx, format)
}

// CanEncode reports whether the codec can encode the given stream type
// ("video", "audio", "subtitle") under the given acceleration class. AccelAny
// matches every class; AccelCPU restricts to software encoders.
func (f *FFmpeg) CanEncode(ctx context.Context, codec, streamType string, accel Acceleration) (bool, error) {
	return f.capabilities.CanEncode(ctx, codec, streamType, accel)
}

// CanDecode is CanEncode for the decoder lists.
func (f *FFmpeg) CanDecode(ctx context.Context, codec, streamType string, accel Acceleration) (bool, error) {
	return f.capabilities.CanDecode(ctx, codec, streamType, accel)
}

// CheckEncode is CanEncode with hard-error semantics: KindCodecUnsupported
// when the codec is absent outright, KindHardwareUnavailable when it exists
// but not under the requested acceleration class.
func (f *FFmpeg) CheckEncode(ctx context.Context, codec, streamType string, accel Acceleration) error {
	return f.capabilities.CheckEncode(ctx, codec, streamType, accel)
}

// CheckMux is CanMux with hard-error semantics.
func (f *FFmpeg) CheckMux(ctx context.Context, format string) error {
	return f.capabilities.CheckMux(ctx, format)
}

// DetectAccelerations returns the normalized hardware acceleration classes
// the converter reports, best first.
func (f *FFmpeg) DetectAccelerations(ctx context.Context) []Acceleration {
	return hwaccel.Detect(ctx, f.opts.FFmpegPath)
}

// GetHardwareInfo reports, per detected acceleration class, the hardware
// encoders available under it.
func (f *FFmpeg) GetHardwareInfo(ctx context.Context) ([]HardwareInfo, error) {
	return f.capabilities.HardwareInfo(ctx)
}
