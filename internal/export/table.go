package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/radio-control/cmexport/internal/extract"
)

// CellHeader is the column set of the cell inventory.
var CellHeader = []string{
	"Global Cell ID (nCI)", "Local Cell ID", "TAC", "gNBId",
	"Latitude", "Longitude", "arfcnUL", "arfcnDL",
	"Frequency Band", "Cell Range", "Operational State", "Administrative State",
}

// RelationHeader is the column set of the neighbor-relation list.
var RelationHeader = []string{
	"Home gNB ID", "Home Cell ID", "Home Cell Global cell Id", "Neighbor Cell Info",
}

func cellRow(c extract.Cell) []string {
	return []string{
		c.GlobalCellID, c.LocalCellID, c.TAC, c.GNBID,
		c.Latitude, c.Longitude, c.ArfcnUL, c.ArfcnDL,
		c.FrequencyBand, c.CellRange, c.OperationalState, c.AdministrativeState,
	}
}

func relationRow(r extract.Relation) []string {
	return []string{r.HomeGNBID, r.HomeCellID, r.HomeGlobalCellID, r.Label}
}

// WriteCells writes the cell inventory to w.
func WriteCells(w io.Writer, cells []extract.Cell, delimiter rune) error {
	rows := make([][]string, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, cellRow(c))
	}
	return writeTable(w, CellHeader, rows, delimiter)
}

// WriteRelations writes the neighbor-relation list to w.
func WriteRelations(w io.Writer, relations []extract.Relation, delimiter rune) error {
	rows := make([][]string, 0, len(relations))
	for _, r := range relations {
		rows = append(rows, relationRow(r))
	}
	return writeTable(w, RelationHeader, rows, delimiter)
}

func writeTable(w io.Writer, header []string, rows [][]string, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}
