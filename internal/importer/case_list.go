// Package importer parses a hospital's exported case-list spreadsheet into
// pending surgeries, the way internal/service used to walk an ODS coverage
// grid — generalized to this domain's tabular surgery export and switched
// from raw ODS/zip/XML to excelize.
package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/validation"
)

// expected column headers, case-insensitive, in any order. "id" is optional;
// when absent a UUID is generated per row.
const (
	colID         = "id"
	colType       = "type"
	colDuration   = "duration_minutes"
	colSurgeon    = "surgeon_email"
	colEquipment  = "equipment"
	colUrgency    = "urgency"
	colEarliest   = "earliest_start"
	colLatest     = "latest_finish"
	colDeadline   = "urgency_deadline"
)

const timeLayout = "2006-01-02T15:04"

// CaseListParser parses a hospital's case-list spreadsheet export.
type CaseListParser struct {
	sheet string // empty means "use the first sheet"
}

// NewCaseListParser creates a parser that reads the given sheet name, or the
// workbook's first sheet if sheet is empty.
func NewCaseListParser(sheet string) *CaseListParser {
	return &CaseListParser{sheet: sheet}
}

// ParseResult is the outcome of parsing a case-list spreadsheet: the
// surgeries that parsed cleanly, and a validation.Result collecting every
// row-level problem encountered along the way (parsing never fails fast on
// a single bad row).
type ParseResult struct {
	Surgeries []*entity.Surgery
	Result    *validation.Result
}

// ParseFile opens a case-list workbook at path and extracts pending
// surgeries for the given hospital and scheduling date. surgeonsByEmail maps
// a hospital's active staff emails (lower-cased) to their person ID, used to
// resolve the sheet's surgeon_email column.
func (p *CaseListParser) ParseFile(path string, hospitalID uuid.UUID, schedulingDate time.Time, surgeonsByEmail map[string]uuid.UUID) (*ParseResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open case list: %w", err)
	}
	defer f.Close()

	sheet := p.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("case list workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	result := validation.NewResult()
	if len(rows) == 0 {
		result.AddError(validation.CodeEmptyCaseList, "case list sheet has no rows")
		return &ParseResult{Result: result}, nil
	}

	cols := indexHeader(rows[0])
	if _, ok := cols[colType]; !ok {
		result.AddError(validation.CodeMissingTypeColumn, fmt.Sprintf("case list sheet %q has no %q column", sheet, colType))
		return &ParseResult{Result: result}, nil
	}
	if _, ok := cols[colDuration]; !ok {
		result.AddError(validation.CodeMissingDurationColumn, fmt.Sprintf("case list sheet %q has no %q column", sheet, colDuration))
		return &ParseResult{Result: result}, nil
	}

	var surgeries []*entity.Surgery
	for rowIdx, row := range rows[1:] {
		lineNum := rowIdx + 2 // 1-indexed, header is row 1
		surgery, err := p.parseRow(row, cols, hospitalID, schedulingDate, surgeonsByEmail)
		if err != nil {
			result.AddError(validation.CodeRowParseError, fmt.Sprintf("row %d: %v", lineNum, err))
			continue
		}
		if surgery == nil {
			continue // blank row, silently skipped
		}
		surgeries = append(surgeries, surgery)
	}

	if len(surgeries) == 0 {
		result.AddWarning(validation.CodeNoSurgeriesParsed, "no surgeries were extracted from the case list")
	}

	return &ParseResult{Surgeries: surgeries, Result: result}, nil
}

// indexHeader maps lower-cased, trimmed header names to their column index.
func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key != "" {
			cols[key] = i
		}
	}
	return cols
}

func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (p *CaseListParser) parseRow(row []string, cols map[string]int, hospitalID uuid.UUID, schedulingDate time.Time, surgeonsByEmail map[string]uuid.UUID) (*entity.Surgery, error) {
	typeID := cell(row, cols, colType)
	if typeID == "" {
		return nil, nil // blank row
	}

	durationStr := cell(row, cols, colDuration)
	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", colDuration, durationStr, err)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %d", colDuration, duration)
	}

	surgery := &entity.Surgery{
		ID:              uuid.New(),
		HospitalID:      hospitalID,
		TypeID:          typeID,
		DurationMinutes: duration,
		Urgency:         strings.ToUpper(cell(row, cols, colUrgency)),
		SchedulingDate:  schedulingDate,
		CreatedAt:       entity.Now(),
		UpdatedAt:       entity.Now(),
	}

	if idStr := cell(row, cols, colID); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			surgery.ID = id
		}
	}

	surgery.SurgeonID = ResolveSurgeon(row, cols, surgeonsByEmail)

	if equip := cell(row, cols, colEquipment); equip != "" {
		for _, e := range strings.Split(equip, ";") {
			if e = strings.TrimSpace(e); e != "" {
				surgery.RequiredEquipment = append(surgery.RequiredEquipment, e)
			}
		}
	}

	if t, err := parseOptionalTime(cell(row, cols, colEarliest)); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", colEarliest, err)
	} else {
		surgery.EarliestStart = t
	}
	if t, err := parseOptionalTime(cell(row, cols, colLatest)); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", colLatest, err)
	} else {
		surgery.LatestFinish = t
	}
	if t, err := parseOptionalTime(cell(row, cols, colDeadline)); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", colDeadline, err)
	} else {
		surgery.UrgencyDeadline = t
	}

	return surgery, nil
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ResolveSurgeon matches a case list row's surgeon_email column against the
// hospital's active staff, returning the matched person's ID or nil if
// unmatched (an unmatched surgeon does not fail the import; the surgery is
// imported unassigned and the optimizer treats it as schedulable in any
// qualifying room).
func ResolveSurgeon(row []string, cols map[string]int, byEmail map[string]uuid.UUID) *uuid.UUID {
	email := strings.ToLower(cell(row, cols, colSurgeon))
	if email == "" {
		return nil
	}
	if id, ok := byEmail[email]; ok {
		return &id
	}
	return nil
}
