package cmdoc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<bulkCmConfigDataFile xmlns="configData.xsd" xmlns:xn="genericNrm.xsd" xmlns:es="EricssonSpecificAttributes.xsd">
  <configData dnPrefix="">
    <xn:SubNetwork id="NR">
      <xn:MeContext id="SITE1">
        <xn:ManagedElement id="1">
          <xn:VsDataContainer id="1">
            <xn:attributes>
              <xn:vsDataType>vsDataGNBDUFunction</xn:vsDataType>
              <es:vsDataGNBDUFunction>
                <es:gNBId>GNB001</es:gNBId>
              </es:vsDataGNBDUFunction>
            </xn:attributes>
          </xn:VsDataContainer>
        </xn:ManagedElement>
      </xn:MeContext>
    </xn:SubNetwork>
  </configData>
</bulkCmConfigDataFile>`

func TestParseBuildsNamespacedTree(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	require.NotNil(t, doc.Root)
	assert.Nil(t, doc.Recovered)

	assert.Equal(t, "bulkCmConfigDataFile", doc.Root.Name.Local)
	assert.Equal(t, "configData.xsd", doc.Root.Name.Space)

	contexts := doc.Root.Descendants(Generic("MeContext"))
	require.Len(t, contexts, 1)
	assert.Equal(t, "SITE1", contexts[0].ID())

	me := contexts[0].Child(Generic("ManagedElement"))
	require.NotNil(t, me)
	assert.Same(t, contexts[0], me.Parent)

	block := me.ChildPath(Generic("VsDataContainer"), Generic("attributes"), Vendor("vsDataGNBDUFunction"))
	require.NotNil(t, block)
	assert.Equal(t, "GNB001", Value(block, "gNBId"))
}

func TestParseKeepsLeadingTextOnly(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<r><a>head<b>inner</b>tail</a><c><!-- note -->after</c></r>`))
	require.NoError(t, err)

	a := doc.Root.Child(Name{Local: "a"})
	require.NotNil(t, a)
	assert.Equal(t, "head", a.Text)
	assert.Equal(t, "inner", a.Child(Name{Local: "b"}).Text)

	c := doc.Root.Child(Name{Local: "c"})
	require.NotNil(t, c)
	assert.Empty(t, c.Text)
}

func TestParseRecoversTruncatedDocument(t *testing.T) {
	input := `<r xmlns:es="EricssonSpecificAttributes.xsd"><es:block><es:gNBId>G1</es:gNBId><es:nCI>77`
	doc, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Error(t, doc.Recovered)

	assert.Equal(t, "G1", Value(doc.Root, "gNBId"))
	assert.Equal(t, "77", Value(doc.Root, "nCI"))
}

func TestParseClosesMismatchedElements(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<r><a><b>x</a><c>y</c></r>`))
	require.NoError(t, err)

	b := doc.Root.Descendant(Name{Local: "b"})
	require.NotNil(t, b)
	assert.Equal(t, "x", b.Text)

	c := doc.Root.Descendant(Name{Local: "c"})
	require.NotNil(t, c)
	assert.Equal(t, "y", c.Text)
}

func TestParseBindsUndeclaredVendorPrefix(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<r><es:gNBId>G7</es:gNBId><xn:vsDataType>vsDataNRCellDU</xn:vsDataType></r>`))
	require.NoError(t, err)

	v, ok := Read(doc.Root, "gNBId", "es")
	assert.True(t, ok)
	assert.Equal(t, "G7", v)

	v, ok = Read(doc.Root, "vsDataType", "xn")
	assert.True(t, ok)
	assert.Equal(t, "vsDataNRCellDU", v)
}

func TestParseReplacesInvalidUTF8(t *testing.T) {
	doc, err := ParseBytes([]byte("<r><v>ab\xffcd</v></r>"))
	require.NoError(t, err)
	assert.Equal(t, "ab\uFFFDcd", doc.Root.Child(Name{Local: "v"}).Text)
}

func TestParseTranscodesDeclaredEncoding(t *testing.T) {
	input := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><r><v>caf\xe9</v></r>"
	doc, err := ParseBytes([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "café", doc.Root.Child(Name{Local: "v"}).Text)
}

func TestParseToleratesUndefinedEntities(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<r><v>a &bogus; b&nbsp;c</v></r>`))
	require.NoError(t, err)
	v := doc.Root.Child(Name{Local: "v"}).Text
	assert.Contains(t, v, "&bogus;")
	assert.Contains(t, v, "b\u00a0c")
}

func TestParseSkipsByteOrderMark(t *testing.T) {
	doc, err := ParseBytes([]byte("\xEF\xBB\xBF<r><v>1</v></r>"))
	require.NoError(t, err)
	assert.Equal(t, "r", doc.Root.Name.Local)
}

func TestParseRejectsInputWithoutRoot(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace", input: "   \n\t"},
		{name: "declaration only", input: `<?xml version="1.0"?>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.True(t, errors.Is(err, ErrNoRootElement))
		})
	}
}

func TestParseRejectsGarbageBeforeRoot(t *testing.T) {
	_, err := Parse(strings.NewReader(`<<<>>>`))
	require.Error(t, err)

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestParseFileReportsPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.xml")
	_, err := ParseFile(missing)
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, missing, perr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), missing)
}

func TestParseFileLoadsDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Root.Descendants(Generic("VsDataContainer")), 1)
	assert.Len(t, doc.Digest, 64)
	assert.Equal(t, len(sampleDoc), doc.Size)

	again, err := ParseBytes([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, doc.Digest, again.Digest)
}

func TestParseFileEmptyCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := ParseFile(path)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, path, perr.Path)
	assert.ErrorIs(t, err, ErrNoRootElement)
}
