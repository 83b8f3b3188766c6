package dictionary

import (
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/fixinspect/internal/domain/model/fix"
)

func loadTestXML(t *testing.T) *Index {
	t.Helper()
	f, err := os.Open("testdata/FIX44.xml")
	require.NoError(t, err)
	defer f.Close()

	idx, err := ParseXML(f)
	require.NoError(t, err)
	return idx
}

func TestParseXML(t *testing.T) {
	idx := loadTestXML(t)

	assert.Equal(t, "FIX.4.4", idx.Version())
	assert.Equal(t, 25, idx.Len())

	def, ok := idx.FieldByNumber(35)
	require.True(t, ok)
	assert.Equal(t, "MsgType", def.Name)
	assert.Equal(t, "STRING", def.Type)
	assert.Len(t, def.Values, 3)

	byName, ok := idx.FieldByName("MsgType")
	require.True(t, ok)
	assert.Same(t, def, byName)

	_, ok = idx.FieldByNumber(9999)
	assert.False(t, ok)
}

func TestParseXML_HeaderTrailerMembership(t *testing.T) {
	idx := loadTestXML(t)

	for _, name := range []string{"BeginString", "BodyLength", "MsgType", "SendingTime", "NoHops", "HopCompID"} {
		assert.True(t, idx.IsHeaderField(name), name)
		assert.False(t, idx.IsTrailerField(name), name)
	}
	for _, name := range []string{"SignatureLength", "Signature", "CheckSum"} {
		assert.True(t, idx.IsTrailerField(name), name)
		assert.False(t, idx.IsHeaderField(name), name)
	}
	// message-level component fields are body fields
	assert.False(t, idx.IsHeaderField("Symbol"))
	assert.False(t, idx.IsTrailerField("Symbol"))
}

func TestParseXML_EnumDescription(t *testing.T) {
	idx := loadTestXML(t)

	desc, ok := idx.EnumDescription(54, "2")
	assert.True(t, ok)
	assert.Equal(t, "SELL", desc)

	_, ok = idx.EnumDescription(54, "9")
	assert.False(t, ok)
	_, ok = idx.EnumDescription(55, "MSFT")
	assert.False(t, ok)
	_, ok = idx.EnumDescription(9999, "1")
	assert.False(t, ok)
}

func TestParseXML_ComponentReferenceInHeader(t *testing.T) {
	doc := `<fix major='5' minor='0' servicepack='2' type='FIXT'>
 <header>
  <field name='BeginString' required='Y'/>
  <component name='HopGrp' required='N'/>
 </header>
 <trailer><field name='CheckSum' required='Y'/></trailer>
 <components>
  <component name='HopGrp'>
   <group name='NoHops' required='N'><field name='HopCompID' required='N'/></group>
  </component>
 </components>
 <fields>
  <field number='8' name='BeginString' type='STRING'/>
  <field number='10' name='CheckSum' type='STRING'/>
  <field number='627' name='NoHops' type='NUMINGROUP'/>
  <field number='628' name='HopCompID' type='STRING'/>
 </fields>
</fix>`
	idx, err := ParseXML(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "FIXT.5.0SP2", idx.Version())
	assert.True(t, idx.IsHeaderField("NoHops"))
	assert.True(t, idx.IsHeaderField("HopCompID"))
	assert.Equal(t, []string{"BeginString", "HopCompID", "NoHops"}, idx.HeaderFields())
	assert.Equal(t, []string{"CheckSum"}, idx.TrailerFields())
}

func TestParseXML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not xml", doc: "8=FIX.4.4|"},
		{name: "no fields", doc: "<fix><header/><trailer/></fix>"},
		{name: "wrong root", doc: "<dictionary><fields/></dictionary>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseXML(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParseXML_InvalidNumberSkipped(t *testing.T) {
	doc := `<fix major='4' minor='4'><header/><trailer/><fields>
  <field number='x' name='Broken' type='STRING'/>
  <field number='55' name='Symbol' type='STRING'/>
 </fields></fix>`
	idx, err := ParseXML(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 1, idx.Len())
	_, ok := idx.FieldByName("Broken")
	assert.False(t, ok)
}

func TestParseYAML(t *testing.T) {
	f, err := os.Open("testdata/custom.yml")
	require.NoError(t, err)
	defer f.Close()

	idx, err := ParseYAML(f)
	require.NoError(t, err)

	assert.Equal(t, "FIX.4.4", idx.Version())
	assert.True(t, idx.IsHeaderField("MsgType"))
	assert.True(t, idx.IsTrailerField("CheckSum"))

	// first declared enum code wins
	desc, ok := idx.EnumDescription(54, "1")
	assert.True(t, ok)
	assert.Equal(t, "BUY", desc)

	// first declared field number wins
	def, ok := idx.FieldByNumber(55)
	require.True(t, ok)
	assert.Equal(t, "Symbol", def.Name)
	_, ok = idx.FieldByName("DuplicateSymbol")
	assert.False(t, ok)
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "unknown key", doc: "fields: []\nbogus: 1\n"},
		{name: "no fields", doc: "version: FIX.4.4\nheader: [BeginString]\n"},
		{name: "bad number", doc: "fields:\n  - number: eight\n    name: BeginString\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestBuilder_NormalizesNames(t *testing.T) {
	b := NewBuilder("test")
	decomposed := "Cafe\u0301"
	precomposed := "Caf\u00e9"
	require.True(t, b.AddField(fix.FieldDefinition{Number: 5000, Name: decomposed, Type: "STRING"}))
	b.AddHeader(decomposed)
	idx := b.Build()

	def, ok := idx.FieldByName(precomposed)
	require.True(t, ok)
	assert.Equal(t, precomposed, def.Name)
	assert.True(t, idx.IsHeaderField(precomposed))
}

func TestBuilder_RejectsInvalid(t *testing.T) {
	b := NewBuilder("test")
	assert.False(t, b.AddField(fix.FieldDefinition{Number: 0, Name: "Zero"}))
	assert.False(t, b.AddField(fix.FieldDefinition{Number: 1, Name: ""}))
	assert.True(t, b.AddField(fix.FieldDefinition{Number: 1, Name: "Account"}))
	assert.False(t, b.AddField(fix.FieldDefinition{Number: 2, Name: "Account"}))
	assert.Equal(t, 1, b.Build().Len())
}

func TestBuilder_CopiesEnumValues(t *testing.T) {
	values := []fix.EnumValue{{Enum: "1", Description: "BUY"}}
	b := NewBuilder("test")
	b.AddField(fix.FieldDefinition{Number: 54, Name: "Side", Values: values})
	idx := b.Build()

	values[0].Description = "MUTATED"
	desc, _ := idx.EnumDescription(54, "1")
	assert.Equal(t, "BUY", desc)
}

func TestIndex_Fields_SortedByNumber(t *testing.T) {
	fields := loadTestXML(t).Fields()
	require.NotEmpty(t, fields)
	for i := 1; i < len(fields); i++ {
		assert.Less(t, fields[i-1].Number, fields[i].Number)
	}
}

func TestIndex_ConcurrentReads(t *testing.T) {
	idx := loadTestXML(t)

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				_, _ = idx.FieldByNumber(35)
				_ = idx.IsHeaderField("MsgType")
				_, _ = idx.EnumDescription(54, "1")
			}
		}()
	}
	wg.Wait()
}
