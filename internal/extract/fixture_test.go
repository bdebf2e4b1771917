package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radio-control/cmexport/internal/cmdoc"
)

// Builders for small bulk CM documents.

func document(body ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<bulkCmConfigDataFile xmlns="configData.xsd" xmlns:xn="genericNrm.xsd" xmlns:es="EricssonSpecificAttributes.xsd">
<configData dnPrefix=""><xn:SubNetwork id="NR">` + strings.Join(body, "\n") + `</xn:SubNetwork></configData>
</bulkCmConfigDataFile>`
}

func meContext(id string, body ...string) string {
	return fmt.Sprintf(`<xn:MeContext id=%q><xn:ManagedElement id="1">%s</xn:ManagedElement></xn:MeContext>`,
		id, strings.Join(body, "\n"))
}

func container(id, typ, block string, children ...string) string {
	return fmt.Sprintf(`<xn:VsDataContainer id=%q><xn:attributes><xn:vsDataType>%s</xn:vsDataType>%s</xn:attributes>%s</xn:VsDataContainer>`,
		id, typ, block, strings.Join(children, "\n"))
}

func fields(kv ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, "<es:%s>%s</es:%s>", kv[i], kv[i+1], kv[i])
	}
	return b.String()
}

func duFunction(gnbID string, children ...string) string {
	return container("1", "vsDataGNBDUFunction",
		`<es:vsDataGNBDUFunction>`+fields("gNBId", gnbID)+`</es:vsDataGNBDUFunction>`, children...)
}

func cellDU(kv ...string) string {
	return container("cell", "vsDataNRCellDU", `<es:vsDataNRCellDU>`+fields(kv...)+`</es:vsDataNRCellDU>`)
}

func sectorCarrier(kv ...string) string {
	return container("sc", "vsDataNRSectorCarrier", `<es:vsDataNRSectorCarrier>`+fields(kv...)+`</es:vsDataNRSectorCarrier>`)
}

func cellRelation(kv ...string) string {
	return container("rel", "vsDataNRCellRelation", `<es:vsDataNRCellRelation>`+fields(kv...)+`</es:vsDataNRCellRelation>`)
}

func cuFunction(children ...string) string {
	return container("1", "vsDataGNBCUCPFunction", "", children...)
}

func load(t *testing.T, xml string) *cmdoc.Document {
	t.Helper()
	doc, err := cmdoc.Parse(strings.NewReader(xml))
	require.NoError(t, err)
	return doc
}
