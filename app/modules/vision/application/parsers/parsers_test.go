package parsers

import (
	"bytes"
	"testing"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFactory_GetParser(t *testing.T) {
	factory := NewFactory()
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "csv file", filename: "roster.csv", want: "csv"},
		{name: "upper-case extension", filename: "ROSTER.CSV", want: "csv"},
		{name: "xlsx file", filename: "roster.xlsx", want: "xlsx"},
		{name: "xls file", filename: "roster.xls", want: "xlsx"},
		{name: "yaml file", filename: "dir.v2/roster.yml", want: "yaml"},
		{name: "unsupported file", filename: "roster.txt", wantErr: true},
		{name: "no extension", filename: "roster", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := factory.GetParser(tt.filename)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFileType)
				return
			}
			require.NoError(t, err)
			switch tt.want {
			case "csv":
				_, ok := parser.(*CSVRosterParser)
				require.True(t, ok)
			case "xlsx":
				_, ok := parser.(*XLSXRosterParser)
				require.True(t, ok)
			case "yaml":
				_, ok := parser.(*YAMLRosterParser)
				require.True(t, ok)
			default:
				t.Fatalf("unexpected parser type %q", tt.want)
			}
		})
	}
}

func TestCSVRosterParser_Parse(t *testing.T) {
	parser := NewCSVRosterParser()
	tests := []struct {
		name    string
		data    string
		want    []visiontypes.RosterPlayer
		wantErr error
	}{
		{
			name: "plain header",
			data: "id,name\n1,Ghost\n2,Soap\n",
			want: []visiontypes.RosterPlayer{{PlayerID: 1, PlayerName: "Ghost"}, {PlayerID: 2, PlayerName: "Soap"}},
		},
		{
			name: "bom, crlf, extra columns and title row",
			data: "\xEF\xBB\xBFSquad roster\r\nPlayer Name,Team,Player-ID\r\n Price ,Task Force,3\r\n,,\r\nGaz,Task Force,4\r\n",
			want: []visiontypes.RosterPlayer{{PlayerID: 3, PlayerName: "Price"}, {PlayerID: 4, PlayerName: "Gaz"}},
		},
		{
			name: "tab separated",
			data: "username\tplayerid\nNikolai\t9\n",
			want: []visiontypes.RosterPlayer{{PlayerID: 9, PlayerName: "Nikolai"}},
		},
		{
			name:    "duplicate id",
			data:    "id,name\n1,Ghost\n1,Soap\n",
			wantErr: ErrDuplicatePlayerID,
		},
		{
			name:    "missing id column",
			data:    "name,team\nGhost,A\n",
			wantErr: ErrMissingRosterColumn,
		},
		{
			name:    "header only",
			data:    "id,name\n",
			wantErr: ErrEmptyRoster,
		},
		{
			name:    "empty file",
			data:    "  \n",
			wantErr: ErrEmptyRoster,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse([]byte(tt.data))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := parser.Parse([]byte("id,name\nabc,Ghost\n"))
	require.ErrorContains(t, err, "invalid player id")
}

func TestXLSXRosterParser_Parse(t *testing.T) {
	parser := NewXLSXRosterParser()
	tests := []struct {
		name    string
		rows    [][]string
		want    []visiontypes.RosterPlayer
		wantErr bool
	}{
		{
			name: "normal sheet",
			rows: [][]string{
				{"Player_ID", "Player Name"},
				{"1", "Ghost"},
				{"2", "Soap"},
			},
			want: []visiontypes.RosterPlayer{{PlayerID: 1, PlayerName: "Ghost"}, {PlayerID: 2, PlayerName: "Soap"}},
		},
		{
			name: "header below a title",
			rows: [][]string{
				{"Friday night lobby"},
				{"Username", "Wins", "ID"},
				{"Price", "4", "3"},
			},
			want: []visiontypes.RosterPlayer{{PlayerID: 3, PlayerName: "Price"}},
		},
		{
			name: "missing name",
			rows: [][]string{
				{"id", "name"},
				{"1", ""},
				{"2", "Soap"},
			},
			wantErr: true,
		},
		{
			name:    "empty sheet",
			rows:    [][]string{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(buildXLSX(t, tt.rows))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := parser.Parse([]byte("id,name\n1,Ghost\n"))
	require.ErrorContains(t, err, "failed to open XLSX file")
}

func TestYAMLRosterParser_Parse(t *testing.T) {
	parser := NewYAMLRosterParser()

	got, err := parser.Parse([]byte("players:\n  - player_id: 1\n    player_name: Ghost\n  - player_id: 2\n    player_name: ' Soap '\n"))
	require.NoError(t, err)
	require.Equal(t, []visiontypes.RosterPlayer{{PlayerID: 1, PlayerName: "Ghost"}, {PlayerID: 2, PlayerName: "Soap"}}, got)

	_, err = parser.Parse([]byte("players:\n  - player_id: 0\n    player_name: Ghost\n"))
	require.ErrorContains(t, err, "id must be positive")

	_, err = parser.Parse([]byte("players: []\n"))
	require.ErrorIs(t, err, ErrEmptyRoster)

	_, err = parser.Parse([]byte("players: [\n"))
	require.Error(t, err)
}

func TestFactory_LoadRoster(t *testing.T) {
	roster, err := NewFactory().LoadRoster("lobby.csv", []byte("id,name\n7,Gaz\n"))
	require.NoError(t, err)
	require.Equal(t, []visiontypes.RosterPlayer{{PlayerID: 7, PlayerName: "Gaz"}}, roster)

	_, err = NewFactory().LoadRoster("lobby.csv", []byte("id,name\n7,Gaz\n7,Gaz\n"))
	require.ErrorIs(t, err, ErrDuplicatePlayerID)
	require.ErrorContains(t, err, "lobby.csv")
}

func buildXLSX(t *testing.T, rows [][]string) []byte {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		require.NoError(t, err)
		cells := make([]interface{}, len(row))
		for i, val := range row {
			cells[i] = val
		}
		require.NoError(t, f.SetSheetRow(sheet, axis, &cells))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())
	return buf.Bytes()
}
