package dictionary

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
)

// QuickFIX-style dictionary document:
//
//	<fix major='4' minor='4'>
//	  <header><field name='BeginString' required='Y'/>...</header>
//	  <trailer><field name='CheckSum' required='Y'/></trailer>
//	  <components>...</components>
//	  <fields>
//	    <field number='54' name='Side' type='CHAR'>
//	      <value enum='1' description='BUY'/>
//	    </field>
//	  </fields>
//	</fix>
type xmlDocument struct {
	XMLName     xml.Name       `xml:"fix"`
	Type        string         `xml:"type,attr"`
	Major       string         `xml:"major,attr"`
	Minor       string         `xml:"minor,attr"`
	ServicePack string         `xml:"servicepack,attr"`
	Header      xmlMemberList  `xml:"header"`
	Trailer     xmlMemberList  `xml:"trailer"`
	Components  []xmlComponent `xml:"components>component"`
	Fields      []xmlField     `xml:"fields>field"`
}

// xmlMember is a <field>, <group> or <component> reference
type xmlMember struct {
	XMLName xml.Name
	Name    string      `xml:"name,attr"`
	Members []xmlMember `xml:",any"`
}

type xmlMemberList struct {
	Members []xmlMember `xml:",any"`
}

type xmlComponent struct {
	Name    string      `xml:"name,attr"`
	Members []xmlMember `xml:",any"`
}

type xmlField struct {
	Number string     `xml:"number,attr"`
	Name   string     `xml:"name,attr"`
	Type   string     `xml:"type,attr"`
	Values []xmlValue `xml:"value"`
}

type xmlValue struct {
	Enum        string `xml:"enum,attr"`
	Description string `xml:"description,attr"`
}

// ParseXML reads a QuickFIX-style XML dictionary
func ParseXML(r io.Reader) (*Index, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse xml dictionary: %w", err)
	}
	if len(doc.Fields) == 0 {
		return nil, fmt.Errorf("parse xml dictionary: no <fields> declared")
	}

	b := NewBuilder(doc.version())
	for _, f := range doc.Fields {
		number, err := strconv.Atoi(strings.TrimSpace(f.Number))
		if err != nil {
			b.logger.Warn("dictionary: field %q has invalid number %q", f.Name, f.Number)
			continue
		}
		def := fix.FieldDefinition{Number: number, Name: f.Name, Type: f.Type}
		for _, v := range f.Values {
			def.Values = append(def.Values, fix.EnumValue{Enum: v.Enum, Description: v.Description})
		}
		b.AddField(def)
	}

	components := make(map[string][]xmlMember, len(doc.Components))
	for _, c := range doc.Components {
		components[c.Name] = c.Members
	}

	for _, name := range flattenMembers(doc.Header.Members, components) {
		b.AddHeader(name)
	}
	for _, name := range flattenMembers(doc.Trailer.Members, components) {
		b.AddTrailer(name)
	}
	return b.Build(), nil
}

func (d xmlDocument) version() string {
	if d.Major == "" {
		return ""
	}
	prefix := d.Type
	if prefix == "" {
		prefix = "FIX"
	}
	v := fmt.Sprintf("%s.%s.%s", prefix, d.Major, d.Minor)
	if d.ServicePack != "" && d.ServicePack != "0" {
		v += "SP" + d.ServicePack
	}
	return v
}

// flattenMembers collects field names from fields, nested groups and component
// references. Group names are fields themselves (the NoXxx counter).
func flattenMembers(members []xmlMember, components map[string][]xmlMember) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func([]xmlMember)
	walk = func(ms []xmlMember) {
		for _, m := range ms {
			switch m.XMLName.Local {
			case "field", "group":
				out = append(out, m.Name)
				walk(m.Members)
			case "component":
				if seen[m.Name] {
					continue
				}
				seen[m.Name] = true
				walk(components[m.Name])
				walk(m.Members)
			}
		}
	}
	walk(members)
	return out
}
