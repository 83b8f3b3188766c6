package decoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
)

// ComputeBodyLength counts the bytes between the delimiter ending the
// BodyLength (9) field and the delimiter preceding the checksum field, inclusive
// of the latter.
func ComputeBodyLength(msg string, delim byte) (int, error) {
	end, err := checksumBoundary(msg, delim)
	if err != nil {
		return 0, err
	}

	prefix := strconv.Itoa(fix.TagBodyLength) + "="
	start := -1
	for pos := 0; pos < end; {
		next := strings.IndexByte(msg[pos:], delim)
		if next < 0 {
			break
		}
		if strings.HasPrefix(msg[pos:pos+next], prefix) {
			start = pos + next
			break
		}
		pos += next + 1
	}
	if start < 0 || start > end {
		return 0, fmt.Errorf("%w: no BodyLength field before checksum", fix.ErrMalformedMessage)
	}
	return end - start, nil
}
