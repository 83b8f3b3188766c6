package decoder

import "github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"

// Classify picks the section a field belongs to by its dictionary name.
// Header membership is checked before trailer; everything else is body.
func Classify(dict fix.Dictionary, name string) fix.SectionKind {
	switch {
	case dict.IsHeaderField(name):
		return fix.SectionHeader
	case dict.IsTrailerField(name):
		return fix.SectionTrailer
	default:
		return fix.SectionBody
	}
}
