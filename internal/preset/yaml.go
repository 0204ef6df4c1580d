package preset

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
)

// fileSchema is the YAML layout of a user preset file:
//
//	presets:
//	  archive:
//	    format: mkv
//	    video: {codec: libx265, quality: 20, preset: slow}
//	    audio: {codec: flac}
type fileSchema struct {
	Presets map[string]presetSchema `yaml:"presets"`
}

type presetSchema struct {
	Format string       `yaml:"format"`
	Video  *videoSchema `yaml:"video"`
	Audio  *audioSchema `yaml:"audio"`
}

type videoSchema struct {
	Codec       string  `yaml:"codec"`
	Bitrate     string  `yaml:"bitrate"`
	Quality     *int    `yaml:"quality"`
	Size        string  `yaml:"size"`
	FPS         float64 `yaml:"fps"`
	Preset      string  `yaml:"preset"`
	Profile     string  `yaml:"profile"`
	Level       string  `yaml:"level"`
	PixelFormat string  `yaml:"pixel_format"`
}

type audioSchema struct {
	Codec     string `yaml:"codec"`
	Bitrate   string `yaml:"bitrate"`
	Quality   *int   `yaml:"quality"`
	Channels  int    `yaml:"channels"`
	Frequency int    `yaml:"frequency"`
}

// LoadFile parses a user preset file. Presets are returned sorted by name.
func LoadFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var schema fileSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse preset file: %w", err)
	}

	presets := make([]Preset, 0, len(schema.Presets))
	for name, raw := range schema.Presets {
		presets = append(presets, fromSchema(name, raw))
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}

func fromSchema(name string, raw presetSchema) Preset {
	p := Preset{Name: name, Format: raw.Format}
	if raw.Video != nil {
		video := &domain.VideoConfig{
			Codec:       raw.Video.Codec,
			Bitrate:     raw.Video.Bitrate,
			Quality:     raw.Video.Quality,
			FPS:         raw.Video.FPS,
			Preset:      raw.Video.Preset,
			Profile:     raw.Video.Profile,
			Level:       raw.Video.Level,
			PixelFormat: raw.Video.PixelFormat,
		}
		if raw.Video.Size != "" {
			video.Size = &domain.SizeSpec{Raw: raw.Video.Size}
		}
		p.Video = video
	}
	if raw.Audio != nil {
		p.Audio = &domain.AudioConfig{
			Codec:     raw.Audio.Codec,
			Bitrate:   raw.Audio.Bitrate,
			Quality:   raw.Audio.Quality,
			Channels:  raw.Audio.Channels,
			Frequency: raw.Audio.Frequency,
		}
	}
	return p
}
