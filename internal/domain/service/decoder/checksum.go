package decoder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
)

var checksumPrefix = strconv.Itoa(fix.TagCheckSum) + "="

// ChecksumResult reports the outcome of a checksum verification.
// Err is nil when Valid is true.
type ChecksumResult struct {
	Computed int
	Declared int
	Valid    bool
	Err      error
}

// Skipped reports whether the check could not run at all
func (r ChecksumResult) Skipped() bool {
	return r.Err != nil && !errors.Is(r.Err, fix.ErrChecksumMismatch)
}

// checksumBoundary returns the index of the delimiter that precedes the
// CheckSum (10) field. Fields after the checksum are excluded. Without a
// CheckSum field the delimiter before the final field is used.
func checksumBoundary(msg string, delim byte) (int, error) {
	if strings.Count(msg, string(delim)) < 2 {
		return 0, fmt.Errorf("%w: need at least two delimiters to locate checksum", fix.ErrMalformedMessage)
	}
	if i := strings.LastIndex(msg, string(delim)+checksumPrefix); i >= 0 {
		return i, nil
	}
	last := strings.LastIndexByte(msg, delim)
	if last == len(msg)-1 {
		last = strings.LastIndexByte(msg[:last], delim)
	}
	if last < 0 {
		return 0, fmt.Errorf("%w: checksum field not delimited", fix.ErrMalformedMessage)
	}
	return last, nil
}

// ComputeChecksum sums the bytes of msg up to and including the delimiter that
// precedes the checksum field, modulo 256. The delimiter always counts as 1 so
// '|' fixtures produce the same value as SOH on the wire.
func ComputeChecksum(msg string, delim byte) (int, error) {
	boundary, err := checksumBoundary(msg, delim)
	if err != nil {
		return 0, err
	}

	sum := 0
	for i := 0; i <= boundary; i++ {
		if msg[i] == delim {
			sum += int(SOH)
			continue
		}
		sum += int(msg[i])
	}
	return sum % 256, nil
}

// FormatChecksum renders a checksum the way it is carried on the wire
func FormatChecksum(n int) string {
	return fmt.Sprintf("%03d", n%256)
}

// ValidateChecksum recomputes the checksum of msg and compares it with declared
func ValidateChecksum(msg, declared string, delim byte) ChecksumResult {
	computed, err := ComputeChecksum(msg, delim)
	if err != nil {
		return ChecksumResult{Err: err}
	}

	want, err := strconv.Atoi(strings.TrimSpace(declared))
	if err != nil {
		return ChecksumResult{
			Computed: computed,
			Err:      fmt.Errorf("%w: %q", fix.ErrInvalidChecksum, declared),
		}
	}

	res := ChecksumResult{Computed: computed, Declared: want, Valid: computed == want}
	if !res.Valid {
		res.Err = fmt.Errorf("%w: computed %s, declared %s",
			fix.ErrChecksumMismatch, FormatChecksum(computed), FormatChecksum(want))
	}
	return res
}
