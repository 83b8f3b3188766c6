package dictionary

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
)

// yamlDocument is a compact dictionary format for hand-written dictionaries:
//
//	version: FIX.4.4
//	header: [BeginString, BodyLength, MsgType]
//	trailer: [CheckSum]
//	fields:
//	  - number: 35
//	    name: MsgType
//	    type: STRING
//	    values:
//	      - {enum: "0", description: HEARTBEAT}
type yamlDocument struct {
	Version string      `yaml:"version"`
	Header  []string    `yaml:"header"`
	Trailer []string    `yaml:"trailer"`
	Fields  []yamlField `yaml:"fields"`
}

type yamlField struct {
	Number int             `yaml:"number"`
	Name   string          `yaml:"name"`
	Type   string          `yaml:"type"`
	Values []fix.EnumValue `yaml:"values"`
}

// ParseYAML reads a YAML dictionary. Unknown keys are rejected.
func ParseYAML(r io.Reader) (*Index, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read yaml dictionary: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc yamlDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse yaml dictionary: empty document")
		}
		return nil, fmt.Errorf("parse yaml dictionary: %w", err)
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("parse yaml dictionary: no fields declared")
	}

	b := NewBuilder(doc.Version)
	for _, f := range doc.Fields {
		b.AddField(fix.FieldDefinition{Number: f.Number, Name: f.Name, Type: f.Type, Values: f.Values})
	}
	for _, name := range doc.Header {
		b.AddHeader(name)
	}
	for _, name := range doc.Trailer {
		b.AddTrailer(name)
	}
	return b.Build(), nil
}
