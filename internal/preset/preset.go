// Package preset carries ready-made conversion settings for common targets
// and loads user-defined preset files.
package preset

import (
	"sort"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
)

// Preset is a partial conversion configuration: container format plus stream
// settings. Input, output and timing always come from the caller.
type Preset struct {
	Name   string
	Format string
	Video  *domain.VideoConfig
	Audio  *domain.AudioConfig
}

// Apply copies the preset onto a configuration, without overriding fields
// the caller already set.
func (p Preset) Apply(cfg *domain.ConversionConfig) {
	if cfg.Format == "" {
		cfg.Format = p.Format
	}
	if cfg.Video == nil && p.Video != nil {
		video := *p.Video
		cfg.Video = &video
	}
	if cfg.Audio == nil && p.Audio != nil {
		audio := *p.Audio
		cfg.Audio = &audio
	}
}

func intp(v int) *int { return &v }

// builtins maps "category/name" to its preset. Bitrates and profiles follow
// the publishing targets' own upload recommendations.
var builtins = map[string]Preset{
	"web/hd": {
		Format: "mp4",
		Video:  &domain.VideoConfig{Codec: "libx264", Size: &domain.SizeSpec{Raw: "1920x1080"}, Bitrate: "5M", Preset: "medium", Profile: "high"},
		Audio:  &domain.AudioConfig{Codec: "aac", Bitrate: "128k"},
	},
	"web/sd": {
		Format: "mp4",
		Video:  &domain.VideoConfig{Codec: "libx264", Size: &domain.SizeSpec{Raw: "1280x720"}, Bitrate: "3M", Preset: "medium"},
		Audio:  &domain.AudioConfig{Codec: "aac", Bitrate: "96k"},
	},
	"web/mobile": {
		Format: "mp4",
		Video:  &domain.VideoConfig{Codec: "libx264", Size: &domain.SizeSpec{Raw: "854x480"}, Bitrate: "1.5M", Preset: "medium", Profile: "baseline"},
		Audio:  &domain.AudioConfig{Codec: "aac", Bitrate: "64k"},
	},
	"youtube/hd1080": {
		Format: "mp4",
		Video: &domain.VideoConfig{
			Codec: "libx264", Size: &domain.SizeSpec{Raw: "1920x1080"}, Bitrate: "8M",
			Preset: "slow", Profile: "high", Level: "4.2", PixelFormat: "yuv420p", FPS: 30,
		},
		Audio: &domain.AudioConfig{Codec: "aac", Bitrate: "192k", Channels: 2, Frequency: 48000},
	},
	"youtube/hd720": {
		Format: "mp4",
		Video: &domain.VideoConfig{
			Codec: "libx264", Size: &domain.SizeSpec{Raw: "1280x720"}, Bitrate: "5M",
			Preset: "medium", Profile: "high", Level: "4.0", FPS: 30,
		},
		Audio: &domain.AudioConfig{Codec: "aac", Bitrate: "128k", Frequency: 48000},
	},
	"youtube/uhd4k": {
		Format: "mp4",
		Video: &domain.VideoConfig{
			Codec: "libx264", Size: &domain.SizeSpec{Raw: "3840x2160"}, Bitrate: "45M",
			Preset: "slow", Profile: "high", Level: "5.2", FPS: 30,
		},
		Audio: &domain.AudioConfig{Codec: "aac", Bitrate: "192k", Frequency: 48000},
	},
	"instagram/feed": {
		Format: "mp4",
		Video:  &domain.VideoConfig{Codec: "libx264", Size: &domain.SizeSpec{Raw: "1080x1080"}, Bitrate: "5M", Preset: "medium", FPS: 30},
		Audio:  &domain.AudioConfig{Codec: "aac", Bitrate: "128k"},
	},
	"instagram/story": {
		Format: "mp4",
		Video:  &domain.VideoConfig{Codec: "libx264", Size: &domain.SizeSpec{Raw: "1080x1920"}, Bitrate: "4M", Preset: "medium", FPS: 30},
		Audio:  &domain.AudioConfig{Codec: "aac", Bitrate: "128k"},
	},
	"tiktok/default": {
		Format: "mp4",
		Video:  &domain.VideoConfig{Codec: "libx264", Size: &domain.SizeSpec{Raw: "1080x1920"}, Bitrate: "6M", Preset: "medium", FPS: 30},
		Audio:  &domain.AudioConfig{Codec: "aac", Bitrate: "192k", Frequency: 44100},
	},
	"quality/high": {
		Format: "mp4",
		Video:  &domain.VideoConfig{Codec: "libx265", Quality: intp(18), Preset: "slow", Profile: "main"},
		Audio:  &domain.AudioConfig{Codec: "aac", Bitrate: "256k"},
	},
	"quality/medium": {
		Format: "mp4",
		Video:  &domain.VideoConfig{Codec: "libx264", Quality: intp(23), Preset: "medium"},
		Audio:  &domain.AudioConfig{Codec: "aac", Bitrate: "128k"},
	},
	"quality/low": {
		Format: "mp4",
		Video:  &domain.VideoConfig{Codec: "libx264", Quality: intp(28), Preset: "fast"},
		Audio:  &domain.AudioConfig{Codec: "aac", Bitrate: "96k"},
	},
	"size/small": {
		Format: "webm",
		Video:  &domain.VideoConfig{Codec: "libvpx-vp9", Quality: intp(35), Preset: "medium"},
		Audio:  &domain.AudioConfig{Codec: "libopus", Bitrate: "96k"},
	},
	"size/tiny": {
		Format: "webm",
		Video:  &domain.VideoConfig{Codec: "libvpx-vp9", Quality: intp(40), Size: &domain.SizeSpec{Raw: "640x360"}, FPS: 24},
		Audio:  &domain.AudioConfig{Codec: "libopus", Bitrate: "64k"},
	},
	"archive/default": {
		Format: "mkv",
		Video:  &domain.VideoConfig{Codec: "libx265", Quality: intp(18), Preset: "slow"},
		Audio:  &domain.AudioConfig{Codec: "flac"},
	},
	"gif/default": {
		Format: "gif",
		Video:  &domain.VideoConfig{Size: &domain.SizeSpec{Raw: "480x270"}, FPS: 12},
		Audio:  &domain.AudioConfig{Disabled: true},
	},
	"dvd/default": {
		Format: "mpeg",
		Video:  &domain.VideoConfig{Codec: "mpeg2video", Bitrate: "6M", Size: &domain.SizeSpec{Raw: "720x480"}, FPS: 29.97},
		Audio:  &domain.AudioConfig{Codec: "ac3", Bitrate: "192k", Channels: 2, Frequency: 48000},
	},
}

// Get looks up a built-in preset by category and name. Single-preset
// categories accept an empty name.
func Get(category, name string) (Preset, bool) {
	if name == "" {
		name = "default"
	}
	key := category + "/" + name
	p, ok := builtins[key]
	if ok {
		p.Name = key
	}
	return p, ok
}

// List returns every built-in preset, sorted by name.
func List() []Preset {
	out := make([]Preset, 0, len(builtins))
	for key, p := range builtins {
		p.Name = key
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
