package stats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ImportHeader — обязательная первая строка CSV-файла со статистикой.
var ImportHeader = []string{
	"player_name", "game_date", "home_team", "away_team",
	"at_bats", "hits", "runs", "rbi", "doubles", "triples",
	"home_runs", "walks", "strikeouts", "stolen_bases", "errors",
}

const importDateLayout = "2006-01-02"

// ImportRow — одна разобранная строка CSV. Игрок и игра ещё не
// сопоставлены с записями БД, это делает сервисный слой.
type ImportRow struct {
	Line        int
	PlayerName  string
	GameDate    time.Time
	HomeTeam    string
	AwayTeam    string
	AtBats      int
	Hits        int
	Runs        int
	RBI         int
	Doubles     int
	Triples     int
	HomeRuns    int
	Walks       int
	Strikeouts  int
	StolenBases int
	Errors      int
}

// RowError — ошибка конкретной строки файла (нумерация с единицы,
// включая строку заголовка).
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ImportError агрегирует ошибки всех строк. Любая ошибка строки
// отменяет весь батч.
type ImportError struct {
	Rows []RowError
}

func (e *ImportError) Error() string {
	msgs := make([]string, len(e.Rows))
	for i, r := range e.Rows {
		msgs[i] = r.Error()
	}
	return "csv import failed: " + strings.Join(msgs, "; ")
}

var ErrEmptyImport = errors.New("csv file contains no data rows")

// ParseImport читает CSV со статистикой. Возвращает разобранные строки
// либо *ImportError со всеми построчными ошибками.
func ParseImport(r io.Reader) ([]ImportRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyImport
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var (
		rows      []ImportRow
		rowErrors []RowError
		line      = 1
	)
	for {
		line++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, RowError{Line: line, Message: err.Error()})
			continue
		}
		row, errs := parseRecord(line, record)
		if len(errs) > 0 {
			rowErrors = append(rowErrors, errs...)
			continue
		}
		rows = append(rows, row)
	}

	if len(rowErrors) > 0 {
		return nil, &ImportError{Rows: rowErrors}
	}
	if len(rows) == 0 {
		return nil, ErrEmptyImport
	}
	return rows, nil
}

func validateHeader(header []string) error {
	if len(header) != len(ImportHeader) {
		return fmt.Errorf("invalid csv header: expected %d columns, got %d", len(ImportHeader), len(header))
	}
	for i, want := range ImportHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("invalid csv header: column %d must be %q", i+1, want)
		}
	}
	return nil
}

func parseRecord(line int, record []string) (ImportRow, []RowError) {
	var errs []RowError

	if len(record) != len(ImportHeader) {
		return ImportRow{}, []RowError{{Line: line, Message: fmt.Sprintf("expected %d columns, got %d", len(ImportHeader), len(record))}}
	}

	row := ImportRow{
		Line:       line,
		PlayerName: strings.TrimSpace(record[0]),
		HomeTeam:   strings.TrimSpace(record[2]),
		AwayTeam:   strings.TrimSpace(record[3]),
	}

	if row.PlayerName == "" {
		errs = append(errs, RowError{Line: line, Message: "player_name is required"})
	}
	if row.HomeTeam == "" || row.AwayTeam == "" {
		errs = append(errs, RowError{Line: line, Message: "home_team and away_team are required"})
	}

	date, err := time.Parse(importDateLayout, strings.TrimSpace(record[1]))
	if err != nil {
		errs = append(errs, RowError{Line: line, Message: fmt.Sprintf("invalid game_date %q, expected YYYY-MM-DD", record[1])})
	} else {
		row.GameDate = date
	}

	counts := []*int{
		&row.AtBats, &row.Hits, &row.Runs, &row.RBI, &row.Doubles,
		&row.Triples, &row.HomeRuns, &row.Walks, &row.Strikeouts,
		&row.StolenBases, &row.Errors,
	}
	for i, dst := range counts {
		col := i + 4
		value, err := strconv.Atoi(strings.TrimSpace(record[col]))
		if err != nil {
			errs = append(errs, RowError{Line: line, Message: fmt.Sprintf("invalid %s value %q", ImportHeader[col], record[col])})
			continue
		}
		if value < 0 {
			errs = append(errs, RowError{Line: line, Message: fmt.Sprintf("%s cannot be negative", ImportHeader[col])})
			continue
		}
		*dst = value
	}

	if len(errs) == 0 && row.Hits > row.AtBats {
		errs = append(errs, RowError{Line: line, Message: "hits cannot exceed at-bats"})
	}

	return row, errs
}
