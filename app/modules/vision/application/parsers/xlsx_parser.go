package parsers

import (
	"bytes"
	"fmt"
	"strings"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	"github.com/xuri/excelize/v2"
)

// XLSXRosterParser parses the first sheet of a spreadsheet roster.
type XLSXRosterParser struct{}

// NewXLSXRosterParser creates a new XLSX roster parser
func NewXLSXRosterParser() *XLSXRosterParser {
	return &XLSXRosterParser{}
}

// Parse opens the workbook and reads the first sheet.
func (p *XLSXRosterParser) Parse(data []byte) ([]visiontypes.RosterPlayer, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		if strings.Contains(err.Error(), "zip: not a valid zip file") {
			return nil, fmt.Errorf("failed to open XLSX file: %w. (Hint: If this is a CSV file, please ensure it has a .csv extension)", err)
		}
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	sheetName := sheets[0]
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty: %w", sheetName, ErrEmptyRoster)
	}

	return rosterFromRows(rows)
}
