// Package hwaccel detects the converter's hardware acceleration classes and
// substitutes hardware encoders for software codec identifiers.
package hwaccel

import (
	"bufio"
	"context"
	"os/exec"
	"strings"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
)

// contextFlags maps a vendor class to the value of the converter's
// acceleration-context flag.
var contextFlags = map[domain.Acceleration]string{
	domain.AccelNVIDIA:       "cuda",
	domain.AccelIntel:        "qsv",
	domain.AccelAMD:          "amf",
	domain.AccelVAAPI:        "vaapi",
	domain.AccelVideoToolbox: "videotoolbox",
	domain.AccelV4L2:         "v4l2m2m",
	domain.AccelDXVA2:        "dxva2",
}

// codecTables maps vendor class to software-codec substitutions. Library
// prefixes are stripped from the desired codec before lookup, so libx264 and
// h264 both land on the same row.
var codecTables = map[domain.Acceleration]map[string]string{
	domain.AccelNVIDIA: {
		"h264": "h264_nvenc",
		"h265": "hevc_nvenc",
		"hevc": "hevc_nvenc",
		"x264": "h264_nvenc",
		"x265": "hevc_nvenc",
		"av1":  "av1_nvenc",
	},
	domain.AccelIntel: {
		"h264": "h264_qsv",
		"h265": "hevc_qsv",
		"hevc": "hevc_qsv",
		"x264": "h264_qsv",
		"x265": "hevc_qsv",
		"av1":  "av1_qsv",
		"vp9":  "vp9_qsv",
	},
	domain.AccelAMD: {
		"h264": "h264_amf",
		"h265": "hevc_amf",
		"hevc": "hevc_amf",
		"x264": "h264_amf",
		"x265": "hevc_amf",
	},
	domain.AccelVAAPI: {
		"h264": "h264_vaapi",
		"h265": "hevc_vaapi",
		"hevc": "hevc_vaapi",
		"x264": "h264_vaapi",
		"x265": "hevc_vaapi",
		"vp8":  "vp8_vaapi",
		"vp9":  "vp9_vaapi",
		"av1":  "av1_vaapi",
	},
	domain.AccelVideoToolbox: {
		"h264": "h264_videotoolbox",
		"h265": "hevc_videotoolbox",
		"hevc": "hevc_videotoolbox",
		"x264": "h264_videotoolbox",
		"x265": "hevc_videotoolbox",
	},
}

// priority is the selection order when the caller expresses no preference.
var priority = []domain.Acceleration{
	domain.AccelNVIDIA,
	domain.AccelIntel,
	domain.AccelAMD,
	domain.AccelVAAPI,
	domain.AccelVideoToolbox,
}

// Detect runs the converter's acceleration-listing subcommand and normalizes
// its output into vendor classes. Idempotent and side-effect free; an
// unrunnable converter yields an empty list.
func Detect(ctx context.Context, ffmpegPath string) []domain.Acceleration {
	cmd := exec.CommandContext(ctx, ffmpegPath, "-hide_banner", "-hwaccels")
	output, err := cmd.Output()
	if err != nil {
		return nil
	}
	return Normalize(string(output))
}

// Normalize classifies raw acceleration-listing lines into vendor classes,
// collapsing synonyms onto one entry per class.
func Normalize(output string) []domain.Acceleration {
	var available []domain.Acceleration
	seen := make(map[domain.Acceleration]bool)
	add := func(a domain.Acceleration) {
		if !seen[a] {
			seen[a] = true
			available = append(available, a)
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch {
		case line == "cuda" || strings.Contains(line, "nvenc"):
			add(domain.AccelNVIDIA)
		case line == "qsv":
			add(domain.AccelIntel)
		case line == "amf" || line == "d3d11va":
			add(domain.AccelAMD)
		case line == "vaapi":
			add(domain.AccelVAAPI)
		case line == "videotoolbox":
			add(domain.AccelVideoToolbox)
		case line == "v4l2m2m":
			add(domain.AccelV4L2)
		case line == "dxva2":
			add(domain.AccelDXVA2)
		}
	}
	return available
}

// Select picks the preferred class from the detected list: the fixed vendor
// priority first, then any other detected class. Empty result means software
// only.
func Select(available []domain.Acceleration) domain.Acceleration {
	for _, want := range priority {
		for _, a := range available {
			if a == want {
				return a
			}
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return ""
}

// Resolution is the outcome of a hardware codec lookup.
type Resolution struct {
	Codec        string
	Acceleration domain.Acceleration
	ContextFlag  string
	IsHardware   bool
}

// ContextFlag returns the converter flag value for a vendor class, falling
// back to the class name itself for classes the converter names directly.
func ContextFlag(a domain.Acceleration) string {
	if flag, ok := contextFlags[a]; ok {
		return flag
	}
	return string(a)
}

// Lookup substitutes a hardware encoder for the desired codec under one
// vendor class. Never fails: a missing mapping returns the codec unchanged
// with IsHardware false.
func Lookup(desiredCodec string, accel domain.Acceleration) Resolution {
	table := codecTables[accel]
	if table == nil {
		return Resolution{Codec: desiredCodec}
	}
	normalized := strings.TrimPrefix(strings.ToLower(desiredCodec), "lib")
	hw, ok := table[normalized]
	if !ok {
		return Resolution{Codec: desiredCodec}
	}
	return Resolution{
		Codec:        hw,
		Acceleration: accel,
		ContextFlag:  ContextFlag(accel),
		IsHardware:   true,
	}
}

// Resolve detects the best available class (or uses the preference when
// given) and substitutes the matching hardware encoder. With nothing
// detected, or no mapping for the class/codec pair, the desired codec comes
// back unchanged with IsHardware false.
func Resolve(ctx context.Context, ffmpegPath, desiredCodec string, preference domain.Acceleration) Resolution {
	accel := preference
	if accel == "" || accel == domain.AccelAny {
		accel = Select(Detect(ctx, ffmpegPath))
	}
	if accel == "" || accel == domain.AccelCPU {
		return Resolution{Codec: desiredCodec}
	}
	return Lookup(desiredCodec, accel)
}

// GPUPatterns maps vendor classes to the encoder-name suffixes that identify
// their hardware codecs in capability lists.
var GPUPatterns = map[domain.Acceleration][]string{
	domain.AccelNVIDIA:       {"_nvenc", "_cuvid"},
	domain.AccelIntel:        {"_qsv"},
	domain.AccelAMD:          {"_amf"},
	domain.AccelVAAPI:        {"_vaapi"},
	domain.AccelVideoToolbox: {"_videotoolbox"},
	domain.AccelV4L2:         {"_v4l2m2m"},
}

// IsGPUCodec reports whether a codec identifier names a hardware encoder of
// any vendor class.
func IsGPUCodec(codec string) bool {
	return ClassOf(codec) != domain.AccelCPU
}

// ClassOf reports which vendor class a codec identifier belongs to, or
// AccelCPU for software codecs.
func ClassOf(codec string) domain.Acceleration {
	for class, patterns := range GPUPatterns {
		for _, p := range patterns {
			if strings.Contains(codec, p) {
				return class
			}
		}
	}
	return domain.AccelCPU
}

// FilterByClass keeps the codecs belonging to one vendor class; AccelCPU
// keeps software codecs, AccelAny keeps everything.
func FilterByClass(codecs []string, class domain.Acceleration) []string {
	if class == domain.AccelAny {
		return codecs
	}
	var out []string
	for _, c := range codecs {
		if ClassOf(c) == class {
			out = append(out, c)
		}
	}
	return out
}
