package domain

// VersionInfo is the parsed output of a -version invocation.
type VersionInfo struct {
	Version       string
	Copyright     string
	Configuration []string
	LibVersions   map[string]string
}

// Formats lists the container formats the converter can read and write.
type Formats struct {
	Demuxing []string
	Muxing   []string
}

// CodecList groups codec identifiers by stream type.
type CodecList struct {
	Video    []string
	Audio    []string
	Subtitle []string
}

// Codecs is the converter's full codec capability surface.
type Codecs struct {
	Encoders CodecList
	Decoders CodecList
}

// Capabilities bundles every capability query into one record.
type Capabilities struct {
	Version VersionInfo
	Formats Formats
	Codecs  Codecs
}

// ConversionSuggestion summarizes what a given source can sensibly be
// converted into given the local capability lists.
type ConversionSuggestion struct {
	CurrentFormat     string
	CurrentVideoCodec string
	CurrentAudioCodec string
	CurrentResolution string

	SuggestedFormats     []string
	SuggestedVideoCodecs struct {
		CPU []string
		GPU []string
	}
	SuggestedAudioCodecs []string

	CanTranscode bool
	CanRemux     bool
}

// ConversionCompatibility estimates the cost of one source/target pairing.
type ConversionCompatibility struct {
	SourceFormat     string
	TargetFormat     string
	SourceVideoCodec string
	TargetVideoCodec string
	SourceAudioCodec string
	TargetAudioCodec string

	Compatible        bool
	RequiresTranscode bool
	CanDirectCopy     bool

	// EstimatedQuality is one of lossless, high, medium, low.
	EstimatedQuality string
	Warnings         []string
}

// UseCase selects a recommendation profile.
type UseCase string

const (
	UseCaseWeb           UseCase = "web"
	UseCaseMobile        UseCase = "mobile"
	UseCaseQuality       UseCase = "quality"
	UseCaseSize          UseCase = "size"
	UseCaseCompatibility UseCase = "compatibility"
)

// RecommendationOption is one format/codec pairing with its rationale.
type RecommendationOption struct {
	Format     string
	VideoCodec string
	AudioCodec string
	Reason     string
}

// ConversionRecommendation is the suggested settings for a use case plus
// ranked alternatives.
type ConversionRecommendation struct {
	RecommendationOption
	Alternatives []RecommendationOption
}
