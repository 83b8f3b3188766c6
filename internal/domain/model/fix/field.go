package fix

// Well-known tag numbers the decoder relies on outside of dictionary lookups.
const (
	TagBeginString = 8
	TagBodyLength  = 9
	TagMsgType     = 35
	TagCheckSum    = 10
)

// CheckSumFieldName is the dictionary name of the trailer checksum field
const CheckSumFieldName = "CheckSum"

// RawField is a single tag=value pair taken from the wire before any dictionary lookup.
// Tags start at 1; the tokenizer never produces a zero tag.
type RawField struct {
	Tag   int    `json:"tag"`
	Value string `json:"value"`
}

// EnumValue is one declared value of an enumerated field, e.g.
// <value enum='1' description='BUY' />
type EnumValue struct {
	Enum        string `json:"enum" yaml:"enum"`
	Description string `json:"description" yaml:"description"`
}

// FieldDefinition describes a field as declared by the protocol dictionary.
// Values keeps declaration order so the first declared enum code wins.
type FieldDefinition struct {
	Number int         `json:"number"`
	Name   string      `json:"name"`
	Type   string      `json:"type"`
	Values []EnumValue `json:"values,omitempty"`
}

// Describe returns the description of the first enum value equal to value
func (d *FieldDefinition) Describe(value string) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, v := range d.Values {
		if v.Enum == value {
			return v.Description, true
		}
	}
	return "", false
}

// HasEnum reports whether the field declares enumerated values
func (d *FieldDefinition) HasEnum() bool {
	return d != nil && len(d.Values) > 0
}

// ResolvedField is a RawField enriched with its dictionary definition.
// Description is only set when Value matches a declared enum code.
type ResolvedField struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Display returns the enum description when there is one, otherwise the raw value
func (f ResolvedField) Display() string {
	if f.Description != "" {
		return f.Description
	}
	return f.Value
}
