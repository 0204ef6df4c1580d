package domain

// Acceleration is a normalized hardware acceleration vendor class. Synonyms
// reported by the converter (cuda/nvenc, amf/d3d11va) collapse onto one entry
// per class.
type Acceleration string

const (
	AccelCPU          Acceleration = "cpu"
	AccelNVIDIA       Acceleration = "nvidia"
	AccelIntel        Acceleration = "intel"
	AccelAMD          Acceleration = "amd"
	AccelVAAPI        Acceleration = "vaapi"
	AccelVideoToolbox Acceleration = "videotoolbox"
	AccelV4L2         Acceleration = "v4l2"
	AccelDXVA2        Acceleration = "dxva2"
	AccelAny          Acceleration = "any"
)

// HardwareAccelConfig controls codec substitution and the acceleration
// context flag. With Type empty the best detected class is used.
type HardwareAccelConfig struct {
	Enabled bool
	Type    Acceleration

	// PreferHardware substitutes the matching hardware encoder for the
	// configured software codec. Defaults to true.
	PreferHardware *bool

	// FallbackToSoftware keeps the software codec when no hardware mapping
	// exists. Defaults to true; when false a missing mapping is a hard error.
	FallbackToSoftware *bool
}

// WantsHardwareCodec reports whether the resolver should substitute a
// hardware encoder.
func (h *HardwareAccelConfig) WantsHardwareCodec() bool {
	if h == nil || !h.Enabled {
		return false
	}
	return h.PreferHardware == nil || *h.PreferHardware
}

// AllowsSoftwareFallback reports whether a missing hardware mapping may
// silently degrade to the software codec.
func (h *HardwareAccelConfig) AllowsSoftwareFallback() bool {
	if h == nil {
		return true
	}
	return h.FallbackToSoftware == nil || *h.FallbackToSoftware
}

// HardwareInfo describes one detected acceleration class and the encoders it
// can substitute.
type HardwareInfo struct {
	Type      Acceleration
	Available bool
	Encoders  []string
}
