// Package stats содержит чистые вычисления по статистике игроков:
// агрегацию сезонных итогов и разбор CSV-файлов с результатами игр.
package stats

import (
	"math"
	"strconv"
	"strings"

	"github.com/softballsistem/SoftballStads-Ochoa/models"
)

// Aggregate — суммарные показатели по набору записей статистики плюс
// производные коэффициенты (AVG, OBP, SLG, OPS), округлённые до тысячных.
type Aggregate struct {
	Games       int `json:"games"`
	AtBats      int `json:"at_bats"`
	Hits        int `json:"hits"`
	Runs        int `json:"runs"`
	RBI         int `json:"rbi"`
	Doubles     int `json:"doubles"`
	Triples     int `json:"triples"`
	HomeRuns    int `json:"home_runs"`
	Walks       int `json:"walks"`
	Strikeouts  int `json:"strikeouts"`
	StolenBases int `json:"stolen_bases"`
	Errors      int `json:"errors"`

	AVG float64 `json:"avg"`
	OBP float64 `json:"obp"`
	SLG float64 `json:"slg"`
	OPS float64 `json:"ops"`
}

// Calculate сводит записи статистики в итог за сезон. Функция чистая и
// детерминированная; порядок записей не важен. Отрицательные значения
// здесь не проверяются — валидация выполняется на пути записи.
func Calculate(records []models.PlayerStat) Aggregate {
	agg := Aggregate{Games: len(records)}
	for _, s := range records {
		agg.AtBats += s.AtBats
		agg.Hits += s.Hits
		agg.Runs += s.Runs
		agg.RBI += s.RBI
		agg.Doubles += s.Doubles
		agg.Triples += s.Triples
		agg.HomeRuns += s.HomeRuns
		agg.Walks += s.Walks
		agg.Strikeouts += s.Strikeouts
		agg.StolenBases += s.StolenBases
		agg.Errors += s.Errors
	}

	var avg, obp, slg float64
	if agg.AtBats > 0 {
		avg = float64(agg.Hits) / float64(agg.AtBats)
		singles := agg.Hits - agg.Doubles - agg.Triples - agg.HomeRuns
		slg = float64(singles+agg.Doubles*2+agg.Triples*3+agg.HomeRuns*4) / float64(agg.AtBats)
	}
	if agg.AtBats+agg.Walks > 0 {
		obp = float64(agg.Hits+agg.Walks) / float64(agg.AtBats+agg.Walks)
	}

	agg.AVG = round3(avg)
	agg.OBP = round3(obp)
	agg.SLG = round3(slg)
	agg.OPS = round3(obp + slg)

	return agg
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// FormatAverage выводит коэффициент в бейсбольной записи: ".300", "1.000".
func FormatAverage(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	if strings.HasPrefix(s, "0.") {
		return s[1:]
	}
	return s
}
