package decoder

import (
	"github.com/YoshitsuguKoike/fixinspect/internal/app"
	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
)

// Decoder decodes raw messages against a loaded dictionary.
// It holds no per-message state.
type Decoder struct {
	dict   fix.Dictionary
	delim  byte
	logger app.Logger
}

// Option configures a Decoder
type Option func(*Decoder)

// WithDelimiter sets the field delimiter (default '|')
func WithDelimiter(delim byte) Option {
	return func(d *Decoder) {
		if delim != 0 {
			d.delim = delim
		}
	}
}

// WithLogger sets the logger used for dropped-field diagnostics
func WithLogger(logger app.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDecoder creates a decoder. A nil dictionary is accepted; every Decode
// then fails with fix.ErrDictionaryUnavailable.
func NewDecoder(dict fix.Dictionary, opts ...Option) *Decoder {
	d := &Decoder{
		dict:   dict,
		delim:  Pipe,
		logger: app.GetLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Delimiter returns the configured field delimiter
func (d *Decoder) Delimiter() byte {
	return d.delim
}

// Dictionary returns the dictionary the decoder resolves against
func (d *Decoder) Dictionary() fix.Dictionary {
	return d.dict
}

// Decode tokenizes raw, resolves every field and partitions the result into
// header, body and trailer. Unknown tags are collected in Unknown.
func (d *Decoder) Decode(raw string) (*fix.DecodedMessage, error) {
	if d.dict == nil {
		return nil, &fix.DecodeError{Op: "decode", Cause: fix.ErrDictionaryUnavailable}
	}

	trimmed := TrimMessage(raw, d.delim)
	msg := &fix.DecodedMessage{
		Header:  fix.Section{},
		Body:    fix.Section{},
		Trailer: fix.Section{},
		Raw:     trimmed,
	}

	for _, rf := range Tokenize(trimmed, d.delim) {
		field, ok := Resolve(d.dict, rf)
		if !ok {
			d.logger.Debug("decoder: unknown tag %d dropped", rf.Tag)
			msg.Unknown = append(msg.Unknown, rf)
			continue
		}
		msg.Append(Classify(d.dict, field.Name), field)
	}

	return msg, nil
}

// Verify validates the checksum declared in msg's trailer against msg.Raw
func (d *Decoder) Verify(msg *fix.DecodedMessage) ChecksumResult {
	if msg == nil {
		return ChecksumResult{Err: fix.ErrMalformedMessage}
	}
	declared, ok := msg.CheckSum()
	if !ok {
		return ChecksumResult{Err: fix.ErrChecksumMissing}
	}
	res := ValidateChecksum(msg.Raw, declared.Value, d.delim)
	if res.Err != nil {
		d.logger.Debug("decoder: checksum check failed: %v", res.Err)
	}
	return res
}
