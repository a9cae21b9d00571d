package stats_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softballsistem/SoftballStads-Ochoa/stats"
)

const csvHeader = "player_name,game_date,home_team,away_team,at_bats,hits,runs,rbi,doubles,triples,home_runs,walks,strikeouts,stolen_bases,errors\n"

func TestParseImportValidFile(t *testing.T) {
	input := csvHeader +
		"Maria Lopez,2024-06-01,Tigres,Aguilas,4,2,1,2,1,0,0,1,1,0,0\n" +
		"Jose Ramirez,2024-06-01,Tigres,Aguilas,3,1,0,0,0,0,1,0,2,0,1\n"

	rows, err := stats.ParseImport(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, "Maria Lopez", first.PlayerName)
	assert.Equal(t, "Tigres", first.HomeTeam)
	assert.Equal(t, "Aguilas", first.AwayTeam)
	assert.Equal(t, 2024, first.GameDate.Year())
	assert.Equal(t, 4, first.AtBats)
	assert.Equal(t, 2, first.Hits)

	second := rows[1]
	assert.Equal(t, 3, second.Line)
	assert.Equal(t, 1, second.HomeRuns)
	assert.Equal(t, 1, second.Errors)
}

func TestParseImportRejectsBadHeader(t *testing.T) {
	input := "name,date,home,away\n" +
		"Maria Lopez,2024-06-01,Tigres,Aguilas\n"

	_, err := stats.ParseImport(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid csv header")
}

func TestParseImportEmptyFile(t *testing.T) {
	_, err := stats.ParseImport(strings.NewReader(""))
	assert.ErrorIs(t, err, stats.ErrEmptyImport)

	_, err = stats.ParseImport(strings.NewReader(csvHeader))
	assert.ErrorIs(t, err, stats.ErrEmptyImport)
}

// Любая невалидная строка отменяет весь батч, ошибки собираются
// по всем строкам сразу с номерами строк файла.
func TestParseImportCollectsRowErrors(t *testing.T) {
	input := csvHeader +
		"Maria Lopez,2024-06-01,Tigres,Aguilas,4,2,1,0,0,0,0,0,0,0,0\n" +
		",2024-06-01,Tigres,Aguilas,4,2,1,0,0,0,0,0,0,0,0\n" +
		"Jose Ramirez,not-a-date,Tigres,Aguilas,4,2,1,0,0,0,0,0,0,0,0\n" +
		"Pedro Gil,2024-06-01,Tigres,Aguilas,4,-2,1,0,0,0,0,0,0,0,0\n" +
		"Ana Cruz,2024-06-01,Tigres,Aguilas,3,5,1,0,0,0,0,0,0,0,0\n"

	_, err := stats.ParseImport(strings.NewReader(input))
	require.Error(t, err)

	var importErr *stats.ImportError
	require.ErrorAs(t, err, &importErr)
	require.Len(t, importErr.Rows, 4)

	lines := make([]int, 0, len(importErr.Rows))
	for _, rowErr := range importErr.Rows {
		lines = append(lines, rowErr.Line)
	}
	assert.Equal(t, []int{3, 4, 5, 6}, lines)

	assert.Contains(t, importErr.Rows[0].Message, "player_name is required")
	assert.Contains(t, importErr.Rows[1].Message, "invalid game_date")
	assert.Contains(t, importErr.Rows[2].Message, "cannot be negative")
	assert.Contains(t, importErr.Rows[3].Message, "hits cannot exceed at-bats")
}

func TestParseImportRejectsShortRecord(t *testing.T) {
	input := csvHeader +
		"Maria Lopez,2024-06-01,Tigres\n"

	_, err := stats.ParseImport(strings.NewReader(input))
	require.Error(t, err)

	var importErr *stats.ImportError
	require.ErrorAs(t, err, &importErr)
	require.Len(t, importErr.Rows, 1)
	assert.Equal(t, 2, importErr.Rows[0].Line)
}
