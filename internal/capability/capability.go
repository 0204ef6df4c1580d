// Package capability queries the converter's version, container and codec
// support, and answers encode/decode/mux feasibility questions against the
// parsed lists.
package capability

import (
	"context"
	"os/exec"
	"regexp"
	"strings"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
	"github.com/parth181195/ffmpeg-forge/internal/hwaccel"
)

var (
	versionRe   = regexp.MustCompile(`ffmpeg version (\S+)`)
	copyrightRe = regexp.MustCompile(`Copyright \(c\) (.+)`)
	libRe       = regexp.MustCompile(`^(lib\w+)\s+([\d.]+)`)
	formatRe    = regexp.MustCompile(`^\s*([DE\s]{2})\s+(\S+)`)
	codecRe     = regexp.MustCompile(`^\s*([VAS][.FXBD]{5})\s+(\S+)`)
)

// Client runs capability queries against one converter binary.
type Client struct {
	ffmpegPath string
}

func NewClient(ffmpegPath string) *Client {
	return &Client{ffmpegPath: ffmpegPath}
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil && len(output) == 0 {
		return "", domain.NewToolNotFound("ffmpeg", c.ffmpegPath, err)
	}
	return string(output), nil
}

// Version reports the converter's version line, build configuration and
// linked library versions.
func (c *Client) Version(ctx context.Context) (domain.VersionInfo, error) {
	output, err := c.run(ctx, "-version")
	if err != nil {
		return domain.VersionInfo{}, err
	}
	return ParseVersion(output), nil
}

// Formats reports the container formats available for reading and writing.
func (c *Client) Formats(ctx context.Context) (domain.Formats, error) {
	output, err := c.run(ctx, "-formats")
	if err != nil {
		return domain.Formats{}, err
	}
	return ParseFormats(output), nil
}

// Codecs reports the encoder and decoder lists grouped by stream type.
func (c *Client) Codecs(ctx context.Context) (domain.Codecs, error) {
	encoders, err := c.run(ctx, "-encoders")
	if err != nil {
		return domain.Codecs{}, err
	}
	decoders, err := c.run(ctx, "-decoders")
	if err != nil {
		return domain.Codecs{}, err
	}
	return domain.Codecs{
		Encoders: ParseCodecList(encoders),
		Decoders: ParseCodecList(decoders),
	}, nil
}

// Capabilities bundles version, formats and codecs into one record.
func (c *Client) Capabilities(ctx context.Context) (domain.Capabilities, error) {
	version, err := c.Version(ctx)
	if err != nil {
		return domain.Capabilities{}, err
	}
	formats, err := c.Formats(ctx)
	if err != nil {
		return domain.Capabilities{}, err
	}
	codecs, err := c.Codecs(ctx)
	if err != nil {
		return domain.Capabilities{}, err
	}
	return domain.Capabilities{Version: version, Formats: formats, Codecs: codecs}, nil
}

// CanMux reports whether the container format is writable.
func (c *Client) CanMux(ctx context.Context, format string) (bool, error) {
	formats, err := c.Formats(ctx)
	if err != nil {
		return false, err
	}
	return contains(formats.Muxing, format), nil
}

// CanDemux reports whether the container format is readable.
func (c *Client) CanDemux(ctx context.Context, format string) (bool, error) {
	formats, err := c.Formats(ctx)
	if err != nil {
		return false, err
	}
	return contains(formats.Demuxing, format), nil
}

// CanEncode reports whether the codec is available for encoding the given
// stream type under the given acceleration class. AccelAny matches every
// class; AccelCPU restricts to software encoders.
func (c *Client) CanEncode(ctx context.Context, codec, streamType string, accel domain.Acceleration) (bool, error) {
	codecs, err := c.Codecs(ctx)
	if err != nil {
		return false, err
	}
	return contains(filterList(byType(codecs.Encoders, streamType), accel), codec), nil
}

// CanDecode is CanEncode for the decoder lists.
func (c *Client) CanDecode(ctx context.Context, codec, streamType string, accel domain.Acceleration) (bool, error) {
	codecs, err := c.Codecs(ctx)
	if err != nil {
		return false, err
	}
	return contains(filterList(byType(codecs.Decoders, streamType), accel), codec), nil
}

// CheckEncode is CanEncode with hard-error semantics: an unavailable codec
// is reported as CodecUnsupported, or as HardwareUnavailable when the codec
// exists but not under the requested acceleration class.
func (c *Client) CheckEncode(ctx context.Context, codec, streamType string, accel domain.Acceleration) error {
	codecs, err := c.Codecs(ctx)
	if err != nil {
		return err
	}
	all := byType(codecs.Encoders, streamType)
	if contains(filterList(all, accel), codec) {
		return nil
	}
	if accel != "" && accel != domain.AccelAny && accel != domain.AccelCPU && contains(all, codec) {
		return domain.NewHardwareUnavailable(codec, accel)
	}
	return domain.NewCodecUnsupported(codec, "encode")
}

// CheckMux is CanMux with hard-error semantics.
func (c *Client) CheckMux(ctx context.Context, format string) error {
	ok, err := c.CanMux(ctx, format)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewFormatUnsupported(format, "mux")
	}
	return nil
}

// HardwareInfo reports, per detected acceleration class, the hardware
// encoders available under it.
func (c *Client) HardwareInfo(ctx context.Context) ([]domain.HardwareInfo, error) {
	codecs, err := c.Codecs(ctx)
	if err != nil {
		return nil, err
	}
	detected := hwaccel.Detect(ctx, c.ffmpegPath)

	infos := make([]domain.HardwareInfo, 0, len(detected))
	for _, class := range detected {
		infos = append(infos, domain.HardwareInfo{
			Type:      class,
			Available: true,
			Encoders:  hwaccel.FilterByClass(codecs.Encoders.Video, class),
		})
	}
	return infos, nil
}

// ParseVersion parses a captured -version block. The first line carries the
// version and copyright; configuration flags and library version lines follow.
func ParseVersion(output string) domain.VersionInfo {
	info := domain.VersionInfo{
		Version:     "unknown",
		LibVersions: make(map[string]string),
	}

	for i, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if i == 0 {
			if m := versionRe.FindStringSubmatch(trimmed); m != nil {
				info.Version = m[1]
			}
			if m := copyrightRe.FindStringSubmatch(trimmed); m != nil {
				info.Copyright = m[1]
			}
			continue
		}
		if strings.HasPrefix(trimmed, "--") {
			info.Configuration = append(info.Configuration, trimmed)
			continue
		}
		if m := libRe.FindStringSubmatch(trimmed); m != nil {
			info.LibVersions[m[1]] = m[2]
		}
	}
	return info
}

// ParseFormats parses a captured -formats block. Scanning is gated on the
// header separator; each line's D/E flag pair routes the format name into
// the demuxing and/or muxing list.
func ParseFormats(output string) domain.Formats {
	var formats domain.Formats

	parsing := false
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "--") {
			parsing = true
			continue
		}
		if !parsing || strings.TrimSpace(line) == "" {
			continue
		}
		m := formatRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if strings.Contains(m[1], "D") {
			formats.Demuxing = append(formats.Demuxing, m[2])
		}
		if strings.Contains(m[1], "E") {
			formats.Muxing = append(formats.Muxing, m[2])
		}
	}
	return formats
}

// ParseCodecList parses a captured -encoders or -decoders block; the two use
// the same layout. The flag field's first character classifies the stream
// type.
func ParseCodecList(output string) domain.CodecList {
	var list domain.CodecList

	parsing := false
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "------") {
			parsing = true
			continue
		}
		if !parsing || strings.TrimSpace(line) == "" {
			continue
		}
		m := codecRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		switch m[1][0] {
		case 'V':
			list.Video = append(list.Video, m[2])
		case 'A':
			list.Audio = append(list.Audio, m[2])
		case 'S':
			list.Subtitle = append(list.Subtitle, m[2])
		}
	}
	return list
}

func byType(list domain.CodecList, streamType string) []string {
	switch streamType {
	case "audio":
		return list.Audio
	case "subtitle":
		return list.Subtitle
	default:
		return list.Video
	}
}

func filterList(codecs []string, accel domain.Acceleration) []string {
	if accel == "" || accel == domain.AccelAny {
		return codecs
	}
	return hwaccel.FilterByClass(codecs, accel)
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
