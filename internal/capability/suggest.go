package capability

import (
	"fmt"
	"sort"
	"strings"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
	"github.com/parth181195/ffmpeg-forge/internal/hwaccel"
)

// formatCompatibility maps a source container to the targets it converts to
// cleanly.
var formatCompatibility = map[string][]string{
	"mp4":      {"mp4", "webm", "mkv", "avi", "mov", "flv", "ogv"},
	"webm":     {"webm", "mp4", "mkv", "ogv"},
	"mkv":      {"mkv", "mp4", "webm", "avi", "mov"},
	"matroska": {"mkv", "mp4", "webm", "avi", "mov"},
	"avi":      {"avi", "mp4", "mkv", "mov"},
	"mov":      {"mov", "mp4", "mkv", "webm"},
	"flv":      {"flv", "mp4", "mkv"},
	"ogv":      {"ogv", "webm", "mkv"},
}

// codecContainers maps a stream codec to the containers that accept it
// without re-encoding, for remux feasibility.
var codecContainers = map[string][]string{
	"h264":   {"mp4", "mkv", "mov", "avi", "flv", "ts", "m4v"},
	"hevc":   {"mp4", "mkv", "mov", "ts"},
	"vp8":    {"webm", "mkv"},
	"vp9":    {"webm", "mkv"},
	"av1":    {"webm", "mkv", "mp4"},
	"mpeg4":  {"mp4", "avi", "mkv", "3gp"},
	"aac":    {"mp4", "mov", "mkv", "flv", "m4a"},
	"opus":   {"webm", "mkv", "ogg"},
	"vorbis": {"webm", "mkv", "ogg"},
	"mp3":    {"mp3", "mp4", "mkv", "avi"},
}

var commonAudioEncoders = []string{"aac", "libmp3lame", "libopus", "libvorbis", "flac", "ac3"}

// Suggest cross-references a probed video against the local capability lists
// and reports what it can sensibly be converted into.
func Suggest(meta domain.VideoMetadata, formats domain.Formats, codecs domain.Codecs) domain.ConversionSuggestion {
	currentFormat := strings.Split(meta.Format.FormatName, ",")[0]

	suggestion := domain.ConversionSuggestion{
		CurrentFormat:     currentFormat,
		CurrentVideoCodec: meta.VideoCodec,
		CurrentAudioCodec: meta.AudioCodec,
		CurrentResolution: fmt.Sprintf("%dx%d", meta.Width, meta.Height),
	}

	compatible := formatCompatibility[currentFormat]
	if compatible == nil {
		// Unknown source container: fall back to every target we know, in a
		// stable order.
		for format := range formatCompatibility {
			compatible = append(compatible, format)
		}
		sort.Strings(compatible)
	}
	for _, format := range compatible {
		if contains(formats.Muxing, format) {
			suggestion.SuggestedFormats = append(suggestion.SuggestedFormats, format)
		}
	}

	for _, codec := range codecs.Encoders.Video {
		if hwaccel.IsGPUCodec(codec) {
			suggestion.SuggestedVideoCodecs.GPU = append(suggestion.SuggestedVideoCodecs.GPU, codec)
		} else {
			suggestion.SuggestedVideoCodecs.CPU = append(suggestion.SuggestedVideoCodecs.CPU, codec)
		}
	}

	for _, codec := range codecs.Encoders.Audio {
		for _, common := range commonAudioEncoders {
			if strings.Contains(codec, common) {
				suggestion.SuggestedAudioCodecs = append(suggestion.SuggestedAudioCodecs, codec)
				break
			}
		}
	}

	suggestion.CanTranscode = len(suggestion.SuggestedVideoCodecs.CPU) > 0 ||
		len(suggestion.SuggestedVideoCodecs.GPU) > 0

	for _, container := range codecContainers[meta.VideoCodec] {
		if contains(formats.Muxing, container) {
			suggestion.CanRemux = true
			break
		}
	}

	return suggestion
}

// CheckCompatibility estimates what a given source-to-target conversion
// costs: whether streams can be copied, whether transcoding is needed, and a
// rough output quality tier.
func CheckCompatibility(sourceVideoCodec, sourceAudioCodec, sourceFormat, targetVideoCodec, targetAudioCodec, targetFormat string) domain.ConversionCompatibility {
	videoMatch := sourceVideoCodec == targetVideoCodec || targetVideoCodec == "copy"
	audioMatch := sourceAudioCodec == targetAudioCodec || targetAudioCodec == "copy"
	canDirectCopy := videoMatch && audioMatch

	compat := domain.ConversionCompatibility{
		SourceFormat:      sourceFormat,
		TargetFormat:      targetFormat,
		SourceVideoCodec:  sourceVideoCodec,
		TargetVideoCodec:  targetVideoCodec,
		SourceAudioCodec:  sourceAudioCodec,
		TargetAudioCodec:  targetAudioCodec,
		Compatible:        true,
		RequiresTranscode: !canDirectCopy,
		CanDirectCopy:     canDirectCopy,
	}

	switch {
	case canDirectCopy,
		strings.Contains(targetVideoCodec, "ffv1"),
		strings.Contains(targetVideoCodec, "copy"):
		compat.EstimatedQuality = "lossless"
	case strings.Contains(targetVideoCodec, "264"),
		strings.Contains(targetVideoCodec, "265"),
		strings.Contains(targetVideoCodec, "vp9"):
		compat.EstimatedQuality = "high"
	default:
		compat.EstimatedQuality = "medium"
	}

	if compat.RequiresTranscode {
		compat.Warnings = append(compat.Warnings, "transcoding required - may lose quality")
	}

	formatCompatible := true
	if targets, ok := formatCompatibility[sourceFormat]; ok {
		formatCompatible = contains(targets, targetFormat)
	}
	if !formatCompatible {
		compat.Warnings = append(compat.Warnings, "format combination may have compatibility issues")
	}

	if strings.Contains(sourceVideoCodec, "hevc") && targetFormat == "avi" {
		compat.Warnings = append(compat.Warnings, "HEVC in AVI has limited player support")
	}
	if targetAudioCodec != "" && sourceAudioCodec != "" && !audioMatch {
		compat.Warnings = append(compat.Warnings, "audio will be re-encoded")
	}

	return compat
}

// Recommend returns the conversion settings best matching a use case.
func Recommend(useCase domain.UseCase) domain.ConversionRecommendation {
	switch useCase {
	case domain.UseCaseWeb:
		return domain.ConversionRecommendation{
			RecommendationOption: domain.RecommendationOption{
				Format: "mp4", VideoCodec: "libx264", AudioCodec: "aac",
				Reason: "best browser compatibility and streaming support",
			},
			Alternatives: []domain.RecommendationOption{
				{Format: "webm", VideoCodec: "libvpx-vp9", AudioCodec: "libopus",
					Reason: "modern browsers, better compression"},
				{Format: "mp4", VideoCodec: "libx265", AudioCodec: "aac",
					Reason: "better quality/size ratio, requires modern browsers"},
			},
		}
	case domain.UseCaseMobile:
		return domain.ConversionRecommendation{
			RecommendationOption: domain.RecommendationOption{
				Format: "mp4", VideoCodec: "libx264", AudioCodec: "aac",
				Reason: "universal mobile device support",
			},
			Alternatives: []domain.RecommendationOption{
				{Format: "mp4", VideoCodec: "h264_videotoolbox", AudioCodec: "aac",
					Reason: "hardware acceleration on Apple devices"},
			},
		}
	case domain.UseCaseQuality:
		return domain.ConversionRecommendation{
			RecommendationOption: domain.RecommendationOption{
				Format: "mkv", VideoCodec: "libx265", AudioCodec: "flac",
				Reason: "best quality with efficient compression",
			},
			Alternatives: []domain.RecommendationOption{
				{Format: "mp4", VideoCodec: "libx265", AudioCodec: "aac",
					Reason: "high quality with better compatibility"},
				{Format: "webm", VideoCodec: "libvpx-vp9", AudioCodec: "libopus",
					Reason: "excellent quality, open format"},
			},
		}
	case domain.UseCaseSize:
		return domain.ConversionRecommendation{
			RecommendationOption: domain.RecommendationOption{
				Format: "webm", VideoCodec: "libvpx-vp9", AudioCodec: "libopus",
				Reason: "best compression efficiency",
			},
			Alternatives: []domain.RecommendationOption{
				{Format: "mp4", VideoCodec: "libx265", AudioCodec: "aac",
					Reason: "excellent compression, better compatibility"},
			},
		}
	case domain.UseCaseCompatibility:
		return domain.ConversionRecommendation{
			RecommendationOption: domain.RecommendationOption{
				Format: "mp4", VideoCodec: "libx264", AudioCodec: "aac",
				Reason: "works everywhere",
			},
			Alternatives: []domain.RecommendationOption{
				{Format: "avi", VideoCodec: "mpeg4", AudioCodec: "libmp3lame",
					Reason: "legacy system support"},
			},
		}
	default:
		return domain.ConversionRecommendation{
			RecommendationOption: domain.RecommendationOption{
				Format: "mp4", VideoCodec: "libx264", AudioCodec: "aac",
				Reason: "general purpose balance",
			},
		}
	}
}
