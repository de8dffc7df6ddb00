package parsers

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

var (
	idColumnNames   = []string{"id", "player_id", "playerid"}
	nameColumnNames = []string{"name", "player_name", "playername", "username"}
)

// headerScanRows is how many leading rows may hold the header.
const headerScanRows = 5

// findColumn searches for a column by multiple possible names (case-insensitive)
// Removes spaces, underscores, and hyphens for normalization
func findColumn(header []string, possibleNames []string) int {
	for i, col := range header {
		colNorm := normalizeHeader(col)
		for _, name := range possibleNames {
			if colNorm == normalizeHeader(name) {
				return i
			}
		}
	}
	return -1
}

func normalizeHeader(s string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

// preprocessCSVData strips a UTF-8 BOM, normalizes line endings and picks comma or tab as
// the delimiter from the first few lines.
func preprocessCSVData(data []byte) (string, rune, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if len(bytes.TrimSpace(data)) == 0 {
		return "", ',', ErrEmptyRoster
	}

	cleaned := string(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")))

	lines := strings.SplitN(cleaned, "\n", headerScanRows+1)
	commaCount, tabCount := 0, 0
	for i := 0; i < len(lines) && i < headerScanRows; i++ {
		commaCount += strings.Count(lines[i], ",")
		tabCount += strings.Count(lines[i], "\t")
	}

	delimiter := ','
	if tabCount > commaCount {
		delimiter = '\t'
	}
	return cleaned, delimiter, nil
}

// rosterFromRows locates the header within the first rows and reads one player per
// following non-blank row.
func rosterFromRows(rows [][]string) ([]visiontypes.RosterPlayer, error) {
	headerIdx, idCol, nameCol := -1, -1, -1
	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		id, name := findColumn(rows[i], idColumnNames), findColumn(rows[i], nameColumnNames)
		if id >= 0 && name >= 0 {
			headerIdx, idCol, nameCol = i, id, name
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrMissingRosterColumn
	}

	var roster []visiontypes.RosterPlayer
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}

		idText, name := cell(row, idCol), cell(row, nameCol)
		id, err := strconv.Atoi(idText)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid player id %q", i+1, idText)
		}
		if name == "" {
			return nil, fmt.Errorf("row %d: player %d has no name", i+1, id)
		}
		roster = append(roster, visiontypes.RosterPlayer{PlayerID: id, PlayerName: name})
	}

	return validateRoster(roster)
}

// validateRoster rejects empty rosters, non-positive ids and repeated ids.
func validateRoster(roster []visiontypes.RosterPlayer) ([]visiontypes.RosterPlayer, error) {
	if len(roster) == 0 {
		return nil, ErrEmptyRoster
	}

	seen := make(map[int]string, len(roster))
	for i := range roster {
		roster[i].PlayerName = strings.TrimSpace(roster[i].PlayerName)
		p := roster[i]
		if p.PlayerID <= 0 {
			return nil, fmt.Errorf("player %q: id must be positive, got %d", p.PlayerName, p.PlayerID)
		}
		if p.PlayerName == "" {
			return nil, fmt.Errorf("player %d has no name", p.PlayerID)
		}
		if other, dup := seen[p.PlayerID]; dup {
			return nil, fmt.Errorf("%w: %d (%q and %q)", ErrDuplicatePlayerID, p.PlayerID, other, p.PlayerName)
		}
		seen[p.PlayerID] = p.PlayerName
	}
	return roster, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
