// Package export serialises generation results for download.
package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/turtacn/molforge/pkg/errors"
	mtypes "github.com/turtacn/molforge/pkg/types/molecule"
)

// csvHeader is the fixed column layout of exported result sets.  Consumers
// key on these exact names; do not reorder or rename.
var csvHeader = []string{
	"Molecule ID", "SMILES", "MW (Da)", "LogP", "TPSA", "H-Acceptors", "H-Donors",
}

// WriteCSV writes the result set to w with the fixed header row.  Numeric
// descriptor columns are rounded to two decimals.  An empty record slice
// produces a header-only document.
func WriteCSV(w io.Writer, records []mtypes.RecordDTO) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to write CSV header")
	}

	for _, rec := range records {
		row := []string{
			rec.ID,
			rec.SMILES,
			formatDescriptor(rec.Descriptors.Weight),
			formatDescriptor(rec.Descriptors.LogP),
			formatDescriptor(rec.Descriptors.TPSA),
			strconv.Itoa(rec.Descriptors.HAcceptors),
			strconv.Itoa(rec.Descriptors.HDonors),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, errors.ErrCodeSerialization, "failed to write CSV row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to flush CSV output")
	}
	return nil
}

// CSVBytes renders the result set to an in-memory CSV document.
func CSVBytes(records []mtypes.RecordDTO) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDescriptor(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
