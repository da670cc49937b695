package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/sakif/roster-lookup/internal/model"
)

// Column names expected in the header row of the export.
const (
	ColumnNationalID         = "CPF"
	ColumnRegistrationNumber = "NUMEROINSCRICAO"
	ColumnFullName           = "NOME_CANDIDATO"
	ColumnExamLocation       = "LOCAL"
	ColumnRoom               = "SALA"
	ColumnCourse             = "CURSO"
)

// RequiredColumns lists every column Parse needs. Other columns are ignored.
var RequiredColumns = []string{
	ColumnNationalID,
	ColumnRegistrationNumber,
	ColumnFullName,
	ColumnExamLocation,
	ColumnRoom,
	ColumnCourse,
}

// ErrEmptyInput is returned when the source has no header row at all.
var ErrEmptyInput = errors.New("roster: empty input, expected a header row")

// MissingColumnsError reports the required columns absent from the header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("roster: missing required columns: %s", strings.Join(e.Columns, ", "))
}

// Parse reads a comma-separated roster with a header row.
//
// HEADER MATCHING:
// Headers are compared after trimming spaces, dropping a UTF-8 BOM and
// upper-casing, so " cpf" still resolves to CPF. Column order in the file
// does not matter.
//
// ROW RULES:
//   - every row must have as many fields as the header (encoding/csv enforces it)
//   - blank lines are skipped
//   - NUMEROINSCRICAO must be an integral number; spreadsheet exports often
//     write it as "1234.0", which is accepted
func Parse(r io.Reader) (Roster, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Roster{}, ErrEmptyInput
		}
		return Roster{}, fmt.Errorf("roster: reading header: %w", err)
	}

	idx, err := columnIndexes(header)
	if err != nil {
		return Roster{}, err
	}

	var candidates []model.Candidate
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Roster{}, fmt.Errorf("roster: reading row: %w", err)
		}

		regField := idx[ColumnRegistrationNumber]
		reg, err := parseRegistrationNumber(record[regField])
		if err != nil {
			line, _ := reader.FieldPos(regField)
			return Roster{}, fmt.Errorf("roster: line %d, column %s: %w", line, ColumnRegistrationNumber, err)
		}

		candidates = append(candidates, model.Candidate{
			RegistrationNumber: reg,
			NationalID:         record[idx[ColumnNationalID]],
			FullName:           strings.TrimSpace(record[idx[ColumnFullName]]),
			ExamLocation:       strings.TrimSpace(record[idx[ColumnExamLocation]]),
			Room:               strings.TrimSpace(record[idx[ColumnRoom]]),
			Course:             strings.TrimSpace(record[idx[ColumnCourse]]),
		})
	}

	return Roster{candidates: candidates}, nil
}

func columnIndexes(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	idx := make(map[string]int, len(RequiredColumns))
	var missing []string
	for _, col := range RequiredColumns {
		i, ok := positions[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return idx, nil
}

func parseRegistrationNumber(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.New("empty value")
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) ||
		f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("invalid value %q", raw)
	}
	return int64(f), nil
}
