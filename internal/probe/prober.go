// Package probe runs the metadata executable and maps its JSON output into
// structured metadata records.
package probe

import (
	"context"
	"encoding/json"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
	"github.com/parth181195/ffmpeg-forge/internal/input"
)

// Prober wraps one probe binary.
type Prober struct {
	ffprobePath string
}

func NewProber(ffprobePath string) *Prober {
	return &Prober{ffprobePath: ffprobePath}
}

// Check verifies the probe binary responds to a version invocation.
func (p *Prober) Check(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, p.ffprobePath, "-version")
	if err := cmd.Run(); err != nil {
		return domain.NewToolNotFound("ffprobe", p.ffprobePath, err)
	}
	return nil
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

type ffprobeFormat struct {
	Filename       string            `json:"filename"`
	FormatName     string            `json:"format_name"`
	FormatLongName string            `json:"format_long_name"`
	StartTime      string            `json:"start_time"`
	Duration       string            `json:"duration"`
	Size           string            `json:"size"`
	BitRate        string            `json:"bit_rate"`
	ProbeScore     int               `json:"probe_score"`
	Tags           map[string]string `json:"tags"`
}

type ffprobeStream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`
	CodecLongName string `json:"codec_long_name"`
	CodecType     string `json:"codec_type"`
	CodecTag      string `json:"codec_tag_string"`

	Width              int    `json:"width"`
	Height             int    `json:"height"`
	CodedWidth         int    `json:"coded_width"`
	CodedHeight        int    `json:"coded_height"`
	DisplayAspectRatio string `json:"display_aspect_ratio"`
	PixFmt             string `json:"pix_fmt"`
	RFrameRate         string `json:"r_frame_rate"`
	AvgFrameRate       string `json:"avg_frame_rate"`

	SampleRate    string `json:"sample_rate"`
	Channels      int    `json:"channels"`
	ChannelLayout string `json:"channel_layout"`
	BitsPerSample int    `json:"bits_per_sample"`

	Duration  string            `json:"duration"`
	StartTime string            `json:"start_time"`
	BitRate   string            `json:"bit_rate"`
	Tags      map[string]string `json:"tags"`

	SideDataList []ffprobeSideData `json:"side_data_list"`
}

type ffprobeSideData struct {
	SideDataType string   `json:"side_data_type"`
	Rotation     *float64 `json:"rotation"`
}

// Probe runs one metadata query against the input and returns the full
// structured result. Buffer and stream inputs are staged to a temp file for
// the duration of the probe.
func (p *Prober) Probe(ctx context.Context, in domain.Input) (domain.MediaMetadata, error) {
	staged, err := input.StageInput(in)
	if err != nil {
		return domain.MediaMetadata{}, err
	}
	defer staged.Cleanup()

	cmd := exec.CommandContext(ctx, p.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		staged.Path,
	)
	output, err := cmd.Output()
	if err != nil {
		if _, pathErr := exec.LookPath(p.ffprobePath); pathErr != nil {
			return domain.MediaMetadata{}, domain.NewToolNotFound("ffprobe", p.ffprobePath, err)
		}
		return domain.MediaMetadata{}, domain.NewInvalidInput(staged.Path, "probe failed", err)
	}

	return ParseMediaMetadata(output)
}

// ParseMediaMetadata maps a captured probe JSON document into MediaMetadata.
func ParseMediaMetadata(data []byte) (domain.MediaMetadata, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.MediaMetadata{}, domain.NewInvalidInput("", "malformed probe output", err)
	}

	meta := domain.MediaMetadata{
		Format: domain.FormatMetadata{
			Filename:       raw.Format.Filename,
			FormatName:     raw.Format.FormatName,
			FormatLongName: raw.Format.FormatLongName,
			StartTime:      raw.Format.StartTime,
			Duration:       raw.Format.Duration,
			Size:           raw.Format.Size,
			BitRate:        raw.Format.BitRate,
			ProbeScore:     raw.Format.ProbeScore,
			Tags:           emptyIfNil(raw.Format.Tags),
		},
	}

	for _, s := range raw.Streams {
		stream := domain.StreamMetadata{
			Index:              s.Index,
			CodecName:          s.CodecName,
			CodecLongName:      s.CodecLongName,
			CodecType:          s.CodecType,
			CodecTag:           s.CodecTag,
			Width:              s.Width,
			Height:             s.Height,
			CodedWidth:         s.CodedWidth,
			CodedHeight:        s.CodedHeight,
			DisplayAspectRatio: s.DisplayAspectRatio,
			PixelFormat:        s.PixFmt,
			FrameRate:          s.RFrameRate,
			AvgFrameRate:       s.AvgFrameRate,
			SampleRate:         s.SampleRate,
			Channels:           s.Channels,
			ChannelLayout:      s.ChannelLayout,
			BitsPerSample:      s.BitsPerSample,
			Duration:           s.Duration,
			StartTime:          s.StartTime,
			BitRate:            s.BitRate,
			Tags:               emptyIfNil(s.Tags),
		}
		for _, sd := range s.SideDataList {
			stream.SideDataList = append(stream.SideDataList, domain.SideData{
				Type:     sd.SideDataType,
				Rotation: sd.Rotation,
			})
		}
		meta.Streams = append(meta.Streams, stream)
	}

	return meta, nil
}

// VideoMetadata derives the video-oriented view from a probe result. Fails
// when no video-typed stream is present.
func VideoMetadata(meta domain.MediaMetadata) (domain.VideoMetadata, error) {
	video := streamsOfType(meta, "video")
	if len(video) == 0 {
		return domain.VideoMetadata{}, domain.NewInvalidInput(meta.Format.Filename, "no video stream found", nil)
	}
	audio := streamsOfType(meta, "audio")

	primary := video[0]

	out := domain.VideoMetadata{
		Format:          meta.Format,
		VideoStreams:    video,
		AudioStreams:    audio,
		SubtitleStreams: streamsOfType(meta, "subtitle"),
		Width:           primary.Width,
		Height:          primary.Height,
		VideoCodec:      primary.CodecName,
		FrameRate:       parseRational(primary.AvgFrameRate),
		Rotation:        rotationOf(primary),
	}
	if len(audio) > 0 {
		out.AudioCodec = audio[0].CodecName
	}

	out.Duration, _ = strconv.ParseFloat(meta.Format.Duration, 64)
	if bitrate, err := strconv.ParseFloat(meta.Format.BitRate, 64); err == nil {
		out.BitrateKbps = bitrate / 1000
	}
	out.Size, _ = strconv.ParseInt(meta.Format.Size, 10, 64)

	return out, nil
}

// ImageMetadata derives the still-image view from a probe result.
func ImageMetadata(meta domain.MediaMetadata) (domain.ImageMetadata, error) {
	video := streamsOfType(meta, "video")
	if len(video) == 0 {
		return domain.ImageMetadata{}, domain.NewInvalidInput(meta.Format.Filename, "no image stream found", nil)
	}
	primary := video[0]

	pixFmt := primary.PixelFormat
	if pixFmt == "" {
		pixFmt = "unknown"
	}
	size, _ := strconv.ParseInt(meta.Format.Size, 10, 64)

	return domain.ImageMetadata{
		Format:      meta.Format,
		Width:       primary.Width,
		Height:      primary.Height,
		PixelFormat: pixFmt,
		Codec:       primary.CodecName,
		Size:        size,
	}, nil
}

// IsVideo reports whether the media carries a video stream with a frame
// rate. Still images probe as video-typed streams without one.
func IsVideo(meta domain.MediaMetadata) bool {
	for _, s := range streamsOfType(meta, "video") {
		if hasFrameRate(s) {
			return true
		}
	}
	return false
}

// IsImage reports whether the media's first video-typed stream lacks a
// frame rate.
func IsImage(meta domain.MediaMetadata) bool {
	video := streamsOfType(meta, "video")
	return len(video) > 0 && !hasFrameRate(video[0])
}

func hasFrameRate(s domain.StreamMetadata) bool {
	return frameRateSet(s.FrameRate) || frameRateSet(s.AvgFrameRate)
}

func frameRateSet(rate string) bool {
	return rate != "" && rate != "0/0" && parseRational(rate) > 0
}

// rotationOf recovers display rotation: the legacy rotate tag first, then
// the display-matrix side channel, which wins when both are present.
func rotationOf(s domain.StreamMetadata) *int {
	var rotation *int
	if tag, ok := s.Tags["rotate"]; ok {
		if v, err := strconv.Atoi(tag); err == nil && v != 0 {
			rotation = &v
		}
	}
	for _, sd := range s.SideDataList {
		if sd.Type == "Display Matrix" && sd.Rotation != nil {
			v := int(math.Round(*sd.Rotation))
			rotation = &v
			break
		}
	}
	return rotation
}

func parseRational(rate string) float64 {
	parts := strings.Split(rate, "/")
	if len(parts) != 2 {
		return 0
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0
	}
	return num / den
}

func streamsOfType(meta domain.MediaMetadata, codecType string) []domain.StreamMetadata {
	var out []domain.StreamMetadata
	for _, s := range meta.Streams {
		if s.CodecType == codecType {
			out = append(out, s)
		}
	}
	return out
}

func emptyIfNil(tags map[string]string) map[string]string {
	if tags == nil {
		return map[string]string{}
	}
	return tags
}
