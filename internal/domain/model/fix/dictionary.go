package fix

import "strconv"

// Dictionary is the read-only view of a loaded protocol dictionary.
// Implementations must be safe for concurrent reads once loaded.
type Dictionary interface {
	// FieldByNumber returns the definition for a tag number
	FieldByNumber(number int) (*FieldDefinition, bool)
	// FieldByName returns the definition for a field name
	FieldByName(name string) (*FieldDefinition, bool)
	// IsHeaderField reports whether the named field is declared in the header
	IsHeaderField(name string) bool
	// IsTrailerField reports whether the named field is declared in the trailer
	IsTrailerField(name string) bool
	// EnumDescription returns the description of an enumerated value for a tag
	EnumDescription(number int, value string) (string, bool)
}

// Lookup resolves key as a tag number when it is all digits, otherwise as a field name.
func Lookup(d Dictionary, key string) (*FieldDefinition, bool) {
	if d == nil || key == "" {
		return nil, false
	}
	if n, err := strconv.Atoi(key); err == nil {
		return d.FieldByNumber(n)
	}
	return d.FieldByName(key)
}
