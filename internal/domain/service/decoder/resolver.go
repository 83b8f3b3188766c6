package decoder

import "github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"

// Resolve looks up the definition for raw.Tag and builds a ResolvedField.
// It returns false when the dictionary does not know the tag.
func Resolve(dict fix.Dictionary, raw fix.RawField) (fix.ResolvedField, bool) {
	def, ok := dict.FieldByNumber(raw.Tag)
	if !ok || def == nil {
		return fix.ResolvedField{}, false
	}

	field := fix.ResolvedField{
		Number: def.Number,
		Name:   def.Name,
		Type:   def.Type,
		Value:  raw.Value,
	}
	if desc, ok := dict.EnumDescription(def.Number, raw.Value); ok {
		field.Description = desc
	}
	return field, true
}
