package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/stats"
)

func TestCalculateEmpty(t *testing.T) {
	agg := stats.Calculate(nil)

	assert.Equal(t, 0, agg.Games)
	assert.Equal(t, 0, agg.AtBats)
	assert.Equal(t, 0.0, agg.AVG)
	assert.Equal(t, 0.0, agg.OBP)
	assert.Equal(t, 0.0, agg.SLG)
	assert.Equal(t, 0.0, agg.OPS)
}

func TestCalculateSumsCountingStats(t *testing.T) {
	records := []models.PlayerStat{
		{AtBats: 4, Hits: 2, Runs: 1, RBI: 2, Doubles: 1, Walks: 1, Strikeouts: 1, StolenBases: 1, Errors: 1},
		{AtBats: 3, Hits: 1, Runs: 0, RBI: 0, Triples: 1, Walks: 0, Strikeouts: 2},
		{AtBats: 5, Hits: 3, Runs: 2, RBI: 4, HomeRuns: 1, Walks: 2},
	}

	agg := stats.Calculate(records)

	assert.Equal(t, 3, agg.Games)
	assert.Equal(t, 12, agg.AtBats)
	assert.Equal(t, 6, agg.Hits)
	assert.Equal(t, 3, agg.Runs)
	assert.Equal(t, 6, agg.RBI)
	assert.Equal(t, 1, agg.Doubles)
	assert.Equal(t, 1, agg.Triples)
	assert.Equal(t, 1, agg.HomeRuns)
	assert.Equal(t, 3, agg.Walks)
	assert.Equal(t, 3, agg.Strikeouts)
	assert.Equal(t, 1, agg.StolenBases)
	assert.Equal(t, 1, agg.Errors)

	// 6/12 = .500; синглов 3, total bases 3+2+3+4 = 12, slg = 1.000
	assert.Equal(t, 0.5, agg.AVG)
	assert.Equal(t, 1.0, agg.SLG)
	// obp = (6+3)/(12+3) = .600
	assert.Equal(t, 0.6, agg.OBP)
	assert.Equal(t, 1.6, agg.OPS)
}

func TestCalculateBattingAverageRounding(t *testing.T) {
	// 3 хита на 10 выходов — классические .300.
	agg := stats.Calculate([]models.PlayerStat{
		{AtBats: 6, Hits: 2},
		{AtBats: 4, Hits: 1},
	})

	assert.Equal(t, 0.3, agg.AVG)
	assert.Equal(t, ".300", stats.FormatAverage(agg.AVG))

	// 1 хит на 3 выхода округляется до тысячных: .333.
	agg = stats.Calculate([]models.PlayerStat{{AtBats: 3, Hits: 1}})
	assert.Equal(t, 0.333, agg.AVG)
}

func TestCalculateZeroAtBatsWithWalks(t *testing.T) {
	// Игрок без выходов на биту, но с уоками: AVG и SLG нулевые,
	// OBP считается по знаменателю AB+BB.
	agg := stats.Calculate([]models.PlayerStat{{AtBats: 0, Hits: 0, Walks: 2}})

	assert.Equal(t, 0.0, agg.AVG)
	assert.Equal(t, 0.0, agg.SLG)
	assert.Equal(t, 1.0, agg.OBP)
	assert.Equal(t, 1.0, agg.OPS)
}

func TestFormatAverage(t *testing.T) {
	assert.Equal(t, ".000", stats.FormatAverage(0))
	assert.Equal(t, ".275", stats.FormatAverage(0.275))
	assert.Equal(t, "1.000", stats.FormatAverage(1))
}
