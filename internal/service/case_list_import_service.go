package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/schedcu/orsched/internal/entity"
	"github.com/schedcu/orsched/internal/importer"
	"github.com/schedcu/orsched/internal/repository"
	"github.com/schedcu/orsched/internal/validation"
)

// caseListImportService wires internal/importer's spreadsheet parser to
// persistence, grounded on the same shape the deleted ODS import service
// used: parse, validate, batch-persist, audit.
type caseListImportService struct {
	db     repository.Database
	parser *importer.CaseListParser
}

// NewCaseListImportService creates a CaseListImportService reading the
// given workbook sheet name (empty for the first sheet).
func NewCaseListImportService(db repository.Database, sheet string) CaseListImportService {
	return &caseListImportService{db: db, parser: importer.NewCaseListParser(sheet)}
}

func (s *caseListImportService) ImportCaseList(ctx context.Context, hospitalID uuid.UUID, schedulingDate time.Time, path string, userID uuid.UUID) ([]*entity.Surgery, *validation.Result, error) {
	staff, err := s.db.PersonRepository().GetByHospital(ctx, hospitalID)
	if err != nil {
		return nil, nil, err
	}
	byEmail := make(map[string]uuid.UUID, len(staff))
	for _, person := range staff {
		byEmail[strings.ToLower(person.Email)] = person.ID
	}

	parsed, err := s.parser.ParseFile(path, hospitalID, schedulingDate, byEmail)
	if err != nil {
		return nil, nil, err
	}
	if len(parsed.Surgeries) == 0 {
		return nil, parsed.Result, nil
	}

	if err := s.db.SurgeryRepository().CreateBatch(ctx, parsed.Surgeries); err != nil {
		return nil, parsed.Result, err
	}

	log := &entity.AuditLog{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    "IMPORT_CASE_LIST",
		Resource:  "Hospital#" + hospitalID.String(),
		NewValues: parsed.Result.Summary(),
		Timestamp: time.Now().UTC(),
	}
	_ = s.db.AuditLogRepository().Create(ctx, log)

	return parsed.Surgeries, parsed.Result, nil
}
