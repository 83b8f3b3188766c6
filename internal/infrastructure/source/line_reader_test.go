package source

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader_ReadMessages(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "8=FIX.4.2|35=A|10=001|\n\n   \n8=FIX.4.2|35=0|10=002|\r\n8=FIX.4.2|35=5|10=003|"
	require.NoError(t, afero.WriteFile(fs, "samples/fix42.fix", []byte(content), 0o644))

	msgs, err := NewLineReader(fs).ReadMessages("samples/fix42.fix")
	require.NoError(t, err)

	require.Len(t, msgs, 3)
	assert.Equal(t, Message{Line: 1, Text: "8=FIX.4.2|35=A|10=001|"}, msgs[0])
	assert.Equal(t, 4, msgs[1].Line)
	assert.Equal(t, "8=FIX.4.2|35=0|10=002|", msgs[1].Text)
	assert.Equal(t, 5, msgs[2].Line)
}

func TestLineReader_MissingFile(t *testing.T) {
	_, err := NewLineReader(afero.NewMemMapFs()).ReadMessages("nope.fix")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "nope.fix")
}

func TestReadFrom_LongLine(t *testing.T) {
	long := "8=FIX.4.4|58=" + strings.Repeat("x", 200*1024) + "|10=000|"
	msgs, err := ReadFrom(strings.NewReader(long + "\n"))
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, long, msgs[0].Text)
}

func TestFromStringsAndTexts(t *testing.T) {
	msgs := FromStrings([]string{"a", "b"})
	assert.Equal(t, []Message{{Line: 1, Text: "a"}, {Line: 2, Text: "b"}}, msgs)
	assert.Equal(t, []string{"a", "b"}, Texts(msgs))
}
