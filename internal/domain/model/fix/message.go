package fix

// SectionKind identifies one of the three partitions of a FIX message
type SectionKind int

const (
	SectionHeader SectionKind = iota
	SectionBody
	SectionTrailer
)

// String returns the display name of the section
func (k SectionKind) String() string {
	switch k {
	case SectionHeader:
		return "Header"
	case SectionBody:
		return "Body"
	case SectionTrailer:
		return "Trailer"
	default:
		return "Unknown"
	}
}

// Section is an ordered list of fields in wire order.
// Repeated tags are kept; nothing is keyed by tag number.
type Section []ResolvedField

// Find returns the first field with the given tag number
func (s Section) Find(number int) (ResolvedField, bool) {
	for _, f := range s {
		if f.Number == number {
			return f, true
		}
	}
	return ResolvedField{}, false
}

// FindByName returns the first field with the given dictionary name
func (s Section) FindByName(name string) (ResolvedField, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return ResolvedField{}, false
}

// DecodedMessage is the structured form of one raw FIX message.
// Raw holds the whitespace-trimmed input used for checksum recomputation.
// Unknown holds tags the dictionary does not define, in wire order; they are
// never part of Header, Body or Trailer.
type DecodedMessage struct {
	Header  Section    `json:"header"`
	Body    Section    `json:"body"`
	Trailer Section    `json:"trailer"`
	Raw     string     `json:"raw"`
	Unknown []RawField `json:"unknown,omitempty"`
}

// Append adds a field to the section identified by kind
func (m *DecodedMessage) Append(kind SectionKind, f ResolvedField) {
	switch kind {
	case SectionHeader:
		m.Header = append(m.Header, f)
	case SectionTrailer:
		m.Trailer = append(m.Trailer, f)
	default:
		m.Body = append(m.Body, f)
	}
}

// Section returns the fields of the given section
func (m *DecodedMessage) Section(kind SectionKind) Section {
	switch kind {
	case SectionHeader:
		return m.Header
	case SectionTrailer:
		return m.Trailer
	default:
		return m.Body
	}
}

// MsgType returns the MsgType (35) value from the header, if present
func (m *DecodedMessage) MsgType() string {
	if f, ok := m.Header.Find(TagMsgType); ok {
		return f.Value
	}
	return ""
}

// CheckSum returns the declared CheckSum field from the trailer
func (m *DecodedMessage) CheckSum() (ResolvedField, bool) {
	return m.Trailer.FindByName(CheckSumFieldName)
}

// FieldCount returns the number of resolved fields across all sections
func (m *DecodedMessage) FieldCount() int {
	return len(m.Header) + len(m.Body) + len(m.Trailer)
}
