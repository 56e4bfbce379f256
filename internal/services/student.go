package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ccomp-uerj/progress-backend/internal/curriculum"
	apperrors "github.com/ccomp-uerj/progress-backend/internal/pkg/errors"
	"github.com/ccomp-uerj/progress-backend/internal/pkg/logger"
	"github.com/ccomp-uerj/progress-backend/internal/repos"
	"github.com/ccomp-uerj/progress-backend/internal/types"
)

// Default profile for records auto-created on first login.
const (
	defaultStudentName     = "Novo"
	defaultStudentLastName = "Aluno"
)

// StudentService owns all writes to the student record. Status changes flow
// store mutation → full re-fetch → full resolver re-run; nothing here patches
// a status map.
type StudentService interface {
	// GetOrCreate returns the student record, creating a default-empty one
	// when the registration is unknown. The boolean reports creation.
	GetOrCreate(ctx context.Context, registration string) (*types.Student, bool, error)
	UpdateProfile(ctx context.Context, registration string, name, lastName *string) (*types.Student, error)
	SetCompleted(ctx context.Context, registration, disciplineID string) (*types.Student, error)
	UnsetCompleted(ctx context.Context, registration, disciplineID string) (*types.Student, error)
	// SetCurrent requires a positive class number; enrolling without one is a
	// caller contract violation and fails loudly.
	SetCurrent(ctx context.Context, registration, disciplineID string, classNumber int) (*types.Student, error)
	UnsetCurrent(ctx context.Context, registration, disciplineID string, classNumber int) (*types.Student, error)
	// ClearStatus sets a discipline back to not-taken: removed from both lists.
	ClearStatus(ctx context.Context, registration, disciplineID string) (*types.Student, error)
}

type studentService struct {
	db          *gorm.DB
	log         *logger.Logger
	studentRepo repos.StudentRepo
	catalog     CatalogService
}

func NewStudentService(db *gorm.DB, baseLog *logger.Logger, studentRepo repos.StudentRepo, catalog CatalogService) StudentService {
	return &studentService{
		db:          db,
		log:         baseLog.With("service", "StudentService"),
		studentRepo: studentRepo,
		catalog:     catalog,
	}
}

func (ss *studentService) GetOrCreate(ctx context.Context, registration string) (*types.Student, bool, error) {
	registration = strings.TrimSpace(registration)
	if registration == "" {
		return nil, false, fmt.Errorf("%w: registration required", apperrors.ErrInvalidArgument)
	}

	student, err := ss.studentRepo.GetByRegistration(ctx, nil, registration)
	if err == nil {
		return student, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, fmt.Errorf("load student: %w", err)
	}

	student, err = ss.studentRepo.Create(ctx, nil, &types.Student{
		Registration: registration,
		Name:         defaultStudentName,
		LastName:     defaultStudentLastName,
	})
	if err != nil {
		ss.log.Error("Student auto-create failed", "error", err, "registration", registration)
		return nil, false, fmt.Errorf("create student: %w", err)
	}
	ss.log.Info("Created student record", "registration", registration)
	return student, true, nil
}

func (ss *studentService) UpdateProfile(ctx context.Context, registration string, name, lastName *string) (*types.Student, error) {
	if name == nil && lastName == nil {
		return nil, fmt.Errorf("%w: name or lastName must be provided", apperrors.ErrInvalidArgument)
	}
	student, err := ss.studentRepo.PatchProfile(ctx, nil, registration, name, lastName)
	if err != nil {
		return nil, fmt.Errorf("patch profile: %w", err)
	}
	return student, nil
}

func (ss *studentService) SetCompleted(ctx context.Context, registration, disciplineID string) (*types.Student, error) {
	if _, err := ss.studentRepo.AddCompletedDiscipline(ctx, nil, registration, disciplineID); err != nil {
		return nil, fmt.Errorf("add completed discipline: %w", err)
	}
	return ss.syncCredits(ctx, registration)
}

func (ss *studentService) UnsetCompleted(ctx context.Context, registration, disciplineID string) (*types.Student, error) {
	if _, err := ss.studentRepo.RemoveCompletedDiscipline(ctx, nil, registration, disciplineID); err != nil {
		return nil, fmt.Errorf("remove completed discipline: %w", err)
	}
	return ss.syncCredits(ctx, registration)
}

func (ss *studentService) SetCurrent(ctx context.Context, registration, disciplineID string, classNumber int) (*types.Student, error) {
	if classNumber < 1 {
		// Silently picking a class would corrupt enrollment data.
		return nil, fmt.Errorf("%w: class number required to enroll in %s", apperrors.ErrInvalidArgument, disciplineID)
	}
	student, err := ss.studentRepo.AddCurrentDiscipline(ctx, nil, registration, disciplineID, classNumber)
	if err != nil {
		return nil, fmt.Errorf("add current discipline: %w", err)
	}
	return student, nil
}

func (ss *studentService) UnsetCurrent(ctx context.Context, registration, disciplineID string, classNumber int) (*types.Student, error) {
	if classNumber < 1 {
		return nil, fmt.Errorf("%w: class number required to drop %s", apperrors.ErrInvalidArgument, disciplineID)
	}
	student, err := ss.studentRepo.RemoveCurrentDiscipline(ctx, nil, registration, disciplineID, classNumber)
	if err != nil {
		return nil, fmt.Errorf("remove current discipline: %w", err)
	}
	return student, nil
}

func (ss *studentService) ClearStatus(ctx context.Context, registration, disciplineID string) (*types.Student, error) {
	if _, err := ss.studentRepo.RemoveCompletedDiscipline(ctx, nil, registration, disciplineID); err != nil {
		return nil, fmt.Errorf("remove completed discipline: %w", err)
	}
	if _, err := ss.studentRepo.RemoveCurrentDiscipline(ctx, nil, registration, disciplineID, 0); err != nil {
		return nil, fmt.Errorf("remove current discipline: %w", err)
	}
	return ss.syncCredits(ctx, registration)
}

// syncCredits recomputes the stored credit totals from the graph after a
// completion-list change. When the catalog is unavailable the stored totals
// are left as they are; they will be corrected on the next successful sync.
func (ss *studentService) syncCredits(ctx context.Context, registration string) (*types.Student, error) {
	student, err := ss.studentRepo.GetByRegistration(ctx, nil, registration)
	if err != nil {
		return nil, fmt.Errorf("reload student: %w", err)
	}

	graph, err := ss.catalog.Graph(ctx)
	if err != nil || graph.Empty() {
		ss.log.Warn("Skipping credit sync, catalog unavailable", "registration", registration, "error", err)
		return student, nil
	}

	mandatory, elective := 0, 0
	for _, externalID := range student.CompletedDisciplines {
		id, ok := graph.ExternalToID[externalID]
		if !ok {
			continue
		}
		node, ok := graph.NodeByID(id)
		if !ok || node.Regular == nil {
			continue
		}
		switch node.Regular.Category {
		case curriculum.CategoryMandatory:
			mandatory += node.Credits
		case curriculum.CategoryElective:
			elective += node.Credits
		}
	}

	if mandatory == student.MandatoryCredits && elective == student.ElectiveCredits {
		return student, nil
	}
	student, err = ss.studentRepo.UpdateCredits(ctx, nil, registration, mandatory, elective)
	if err != nil {
		return nil, fmt.Errorf("update credits: %w", err)
	}
	return student, nil
}
