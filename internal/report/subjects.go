package report

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Spok95/attendance-bot/internal/domain/subjects"
	"github.com/xuri/excelize/v2"
)

var ErrBadHeader = errors.New("report: unexpected header")

// Колонки, которые читаются обратно при импорте. Остальные только для чтения человеком.
var importHeader = []string{
	"code",
	"name",
	"lab_present",
	"lab_total",
	"theory_present",
	"theory_total",
}

// BuildSubjectsXLSX выгружает предметы с посещаемостью и советом для minimum.
func BuildSubjectsXLSX(list []subjects.Subject, minimum, termClasses int) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := make([]interface{}, 0, len(importHeader)+2)
	for _, h := range importHeader {
		header = append(header, h)
	}
	header = append(header, "attendance", "advice")
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	row := 2
	for _, s := range list {
		excelRow := []interface{}{
			s.Code(),
			s.Name(),
			s.LabPresent(),
			s.LabTotal(),
			s.TheoryPresent(),
			s.TheoryTotal(),
			fmt.Sprintf("%.2f", s.Attendance()),
			s.BunkStatsForTerm(minimum, true, termClasses),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseSubjectsXLSX читает файл в формате BuildSubjectsXLSX.
// Строки без кода пропускаются; формы проверяет вызывающий.
func ParseSubjectsXLSX(data []byte) ([]subjects.Form, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if len(rows) == 0 || len(rows[0]) < len(importHeader) {
		return nil, ErrBadHeader
	}
	for i, h := range importHeader {
		if !strings.EqualFold(strings.TrimSpace(rows[0][i]), h) {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i+1, rows[0][i], h)
		}
	}

	out := make([]subjects.Form, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) < len(importHeader) {
			return nil, fmt.Errorf("строка %d: ожидается %d колонок", i+1, len(importHeader))
		}

		nums := make([]int, 4)
		for j := range nums {
			v := strings.TrimSpace(row[2+j])
			if v == "" {
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("строка %d: некорректное число %q в колонке %s", i+1, v, importHeader[2+j])
			}
			nums[j] = n
		}

		out = append(out, subjects.Form{
			Code:          strings.TrimSpace(row[0]),
			Name:          strings.TrimSpace(row[1]),
			LabPresent:    nums[0],
			LabTotal:      nums[1],
			TheoryPresent: nums[2],
			TheoryTotal:   nums[3],
		})
	}
	return out, nil
}
