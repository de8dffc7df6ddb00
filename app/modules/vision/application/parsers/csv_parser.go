package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// CSVRosterParser parses comma or tab separated roster files.
type CSVRosterParser struct{}

// NewCSVRosterParser creates a new CSV roster parser
func NewCSVRosterParser() *CSVRosterParser {
	return &CSVRosterParser{}
}

// Parse reads every record and hands the rows to the shared roster reader.
func (p *CSVRosterParser) Parse(data []byte) ([]visiontypes.RosterPlayer, error) {
	cleaned, delimiter, err := preprocessCSVData(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(cleaned))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		records = append(records, record)
	}

	return rosterFromRows(records)
}
