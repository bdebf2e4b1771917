package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radio-control/cmexport/internal/extract"
)

var sampleCells = []extract.Cell{
	{
		GlobalCellID:  "123456",
		LocalCellID:   "1",
		TAC:           "7001",
		GNBID:         "GNB001",
		FrequencyBand: "3500",
		CellID:        "5",
		ContextID:     "SITE1",
	},
	{
		GlobalCellID: "123457",
		GNBID:        "GNB001",
		CellRange:    "10,000",
		ContextID:    "SITE1",
	},
}

var sampleRelations = []extract.Relation{
	{HomeGNBID: "GNB001", HomeCellID: "5", HomeGlobalCellID: "123456", Label: "auto_NR02"},
	{HomeCellID: "9", Label: "R9"},
}

func TestWriteCells(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCells(&buf, sampleCells, ','))

	want := strings.Join([]string{
		"Global Cell ID (nCI),Local Cell ID,TAC,gNBId,Latitude,Longitude,arfcnUL,arfcnDL,Frequency Band,Cell Range,Operational State,Administrative State",
		"123456,1,7001,GNB001,,,,,3500,,,",
		`123457,,,GNB001,,,,,,"10,000",,`,
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteRelations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRelations(&buf, sampleRelations, ','))

	want := "Home gNB ID,Home Cell ID,Home Cell Global cell Id,Neighbor Cell Info\n" +
		"GNB001,5,123456,auto_NR02\n" +
		",9,,R9\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTablesWithoutRowsKeepHeader(t *testing.T) {
	var cells, relations bytes.Buffer
	require.NoError(t, WriteCells(&cells, nil, ','))
	require.NoError(t, WriteRelations(&relations, nil, ','))

	assert.Equal(t, strings.Join(CellHeader, ",")+"\n", cells.String())
	assert.Equal(t, strings.Join(RelationHeader, ",")+"\n", relations.String())
}

func TestWriteRelationsDelimiter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRelations(&buf, sampleRelations[:1], ';'))
	assert.Contains(t, buf.String(), "GNB001;5;123456;auto_NR02\n")
}

func TestWriteRejectsInvalidDelimiter(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteCells(&buf, sampleCells, '"'))
}

func TestWriteIsByteIdentical(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, WriteCells(&first, sampleCells, ','))
	require.NoError(t, WriteCells(&second, sampleCells, ','))
	assert.Equal(t, first.Bytes(), second.Bytes())
}
