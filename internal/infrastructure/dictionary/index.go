package dictionary

import (
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/YoshitsuguKoike/fixinspect/internal/app"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
)

// Index is an immutable, indexed dictionary built once at load time.
// Lookups never scan the underlying document; Index is safe for concurrent reads.
type Index struct {
	version  string
	byNumber map[int]*fix.FieldDefinition
	byName   map[string]*fix.FieldDefinition
	header   map[string]struct{}
	trailer  map[string]struct{}
}

var _ fix.Dictionary = (*Index)(nil)

// Builder accumulates definitions and produces an Index
type Builder struct {
	idx    *Index
	logger app.Logger
}

// NewBuilder creates an empty builder
func NewBuilder(version string) *Builder {
	return &Builder{
		idx: &Index{
			version:  version,
			byNumber: make(map[int]*fix.FieldDefinition),
			byName:   make(map[string]*fix.FieldDefinition),
			header:   make(map[string]struct{}),
			trailer:  make(map[string]struct{}),
		},
		logger: app.GetLogger(),
	}
}

// AddField registers a definition. The first definition of a number or name wins;
// later duplicates are reported and ignored.
func (b *Builder) AddField(def fix.FieldDefinition) bool {
	def.Name = normalizeName(def.Name)
	if def.Number < 1 || def.Name == "" {
		b.logger.Warn("dictionary: skipping field with number=%d name=%q", def.Number, def.Name)
		return false
	}
	if _, dup := b.idx.byNumber[def.Number]; dup {
		b.logger.Warn("dictionary: duplicate field number %d (%s) ignored", def.Number, def.Name)
		return false
	}
	if _, dup := b.idx.byName[def.Name]; dup {
		b.logger.Warn("dictionary: duplicate field name %s (%d) ignored", def.Name, def.Number)
		return false
	}

	values := make([]fix.EnumValue, len(def.Values))
	copy(values, def.Values)
	def.Values = values

	stored := def
	b.idx.byNumber[def.Number] = &stored
	b.idx.byName[def.Name] = &stored
	return true
}

// AddHeader declares a header field name
func (b *Builder) AddHeader(name string) {
	if name = normalizeName(name); name != "" {
		b.idx.header[name] = struct{}{}
	}
}

// AddTrailer declares a trailer field name
func (b *Builder) AddTrailer(name string) {
	if name = normalizeName(name); name != "" {
		b.idx.trailer[name] = struct{}{}
	}
}

// Build returns the finished Index. The builder must not be used afterwards.
func (b *Builder) Build() *Index {
	return b.idx
}

func normalizeName(name string) string {
	return norm.NFC.String(name)
}

// Version returns the protocol version, e.g. "FIX.4.4"
func (i *Index) Version() string {
	return i.version
}

// Len returns the number of field definitions
func (i *Index) Len() int {
	return len(i.byNumber)
}

// FieldByNumber returns the definition for a tag number
func (i *Index) FieldByNumber(number int) (*fix.FieldDefinition, bool) {
	def, ok := i.byNumber[number]
	return def, ok
}

// FieldByName returns the definition for a field name
func (i *Index) FieldByName(name string) (*fix.FieldDefinition, bool) {
	def, ok := i.byName[normalizeName(name)]
	return def, ok
}

// IsHeaderField reports whether name is declared in the header
func (i *Index) IsHeaderField(name string) bool {
	_, ok := i.header[normalizeName(name)]
	return ok
}

// IsTrailerField reports whether name is declared in the trailer
func (i *Index) IsTrailerField(name string) bool {
	_, ok := i.trailer[normalizeName(name)]
	return ok
}

// EnumDescription returns the description of value for the given tag
func (i *Index) EnumDescription(number int, value string) (string, bool) {
	def, ok := i.byNumber[number]
	if !ok {
		return "", false
	}
	return def.Describe(value)
}

// Fields returns all definitions ordered by tag number
func (i *Index) Fields() []fix.FieldDefinition {
	out := make([]fix.FieldDefinition, 0, len(i.byNumber))
	for _, def := range i.byNumber {
		out = append(out, *def)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Number < out[b].Number })
	return out
}

// HeaderFields returns the declared header names, sorted
func (i *Index) HeaderFields() []string {
	return sortedKeys(i.header)
}

// TrailerFields returns the declared trailer names, sorted
func (i *Index) TrailerFields() []string {
	return sortedKeys(i.trailer)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
