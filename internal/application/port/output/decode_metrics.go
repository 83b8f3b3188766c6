package output

// Checksum failure reasons reported to DecodeMetrics.
const (
	ChecksumReasonMismatch  = "mismatch"
	ChecksumReasonMissing   = "missing"
	ChecksumReasonMalformed = "malformed"
)

// DecodeMetrics receives per-message decode outcomes
type DecodeMetrics interface {
	RecordDecoded(unknownTags int)
	RecordDecodeFailure()
	RecordChecksumFailure(reason string)
}

// NopDecodeMetrics discards everything
type NopDecodeMetrics struct{}

func (NopDecodeMetrics) RecordDecoded(int)            {}
func (NopDecodeMetrics) RecordDecodeFailure()         {}
func (NopDecodeMetrics) RecordChecksumFailure(string) {}
