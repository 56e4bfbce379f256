package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/ccomp-uerj/progress-backend/internal/pkg/errors"
	"github.com/ccomp-uerj/progress-backend/internal/pkg/logger"
	"github.com/ccomp-uerj/progress-backend/internal/types"
)

// StudentRepo owns the student record rows. List mutations are
// read-modify-write inside the supplied transaction so a record is never
// half-updated.
type StudentRepo interface {
	GetByRegistration(ctx context.Context, tx *gorm.DB, registration string) (*types.Student, error)
	Create(ctx context.Context, tx *gorm.DB, student *types.Student) (*types.Student, error)
	PatchProfile(ctx context.Context, tx *gorm.DB, registration string, name, lastName *string) (*types.Student, error)
	AddCompletedDiscipline(ctx context.Context, tx *gorm.DB, registration, disciplineID string) (*types.Student, error)
	RemoveCompletedDiscipline(ctx context.Context, tx *gorm.DB, registration, disciplineID string) (*types.Student, error)
	AddCurrentDiscipline(ctx context.Context, tx *gorm.DB, registration, disciplineID string, classNumber int) (*types.Student, error)
	RemoveCurrentDiscipline(ctx context.Context, tx *gorm.DB, registration, disciplineID string, classNumber int) (*types.Student, error)
	UpdateCredits(ctx context.Context, tx *gorm.DB, registration string, mandatory, elective int) (*types.Student, error)
}

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	return &studentRepo{db: db, log: baseLog.With("repo", "StudentRepo")}
}

func (sr *studentRepo) GetByRegistration(ctx context.Context, tx *gorm.DB, registration string) (*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var student types.Student
	err := transaction.WithContext(ctx).
		Where("registration = ?", registration).
		First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (sr *studentRepo) Create(ctx context.Context, tx *gorm.DB, student *types.Student) (*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if student.CompletedDisciplines == nil {
		student.CompletedDisciplines = []string{}
	}
	if student.CurrentDisciplines == nil {
		student.CurrentDisciplines = []types.CurrentDiscipline{}
	}
	if err := transaction.WithContext(ctx).Create(student).Error; err != nil {
		return nil, err
	}
	return student, nil
}

func (sr *studentRepo) PatchProfile(ctx context.Context, tx *gorm.DB, registration string, name, lastName *string) (*types.Student, error) {
	return sr.mutate(ctx, tx, registration, func(s *types.Student) {
		if name != nil {
			s.Name = *name
		}
		if lastName != nil {
			s.LastName = *lastName
		}
	})
}

func (sr *studentRepo) AddCompletedDiscipline(ctx context.Context, tx *gorm.DB, registration, disciplineID string) (*types.Student, error) {
	return sr.mutate(ctx, tx, registration, func(s *types.Student) {
		for _, id := range s.CompletedDisciplines {
			if id == disciplineID {
				return
			}
		}
		s.CompletedDisciplines = append(s.CompletedDisciplines, disciplineID)
		// Completing a discipline ends any enrollment in it.
		s.CurrentDisciplines = removeCurrent(s.CurrentDisciplines, disciplineID, 0)
	})
}

func (sr *studentRepo) RemoveCompletedDiscipline(ctx context.Context, tx *gorm.DB, registration, disciplineID string) (*types.Student, error) {
	return sr.mutate(ctx, tx, registration, func(s *types.Student) {
		kept := s.CompletedDisciplines[:0]
		for _, id := range s.CompletedDisciplines {
			if id != disciplineID {
				kept = append(kept, id)
			}
		}
		s.CompletedDisciplines = kept
	})
}

func (sr *studentRepo) AddCurrentDiscipline(ctx context.Context, tx *gorm.DB, registration, disciplineID string, classNumber int) (*types.Student, error) {
	return sr.mutate(ctx, tx, registration, func(s *types.Student) {
		for i, cur := range s.CurrentDisciplines {
			if cur.DisciplineID == disciplineID {
				s.CurrentDisciplines[i].ClassNumber = classNumber
				return
			}
		}
		s.CurrentDisciplines = append(s.CurrentDisciplines, types.CurrentDiscipline{
			DisciplineID: disciplineID,
			ClassNumber:  classNumber,
		})
	})
}

func (sr *studentRepo) RemoveCurrentDiscipline(ctx context.Context, tx *gorm.DB, registration, disciplineID string, classNumber int) (*types.Student, error) {
	return sr.mutate(ctx, tx, registration, func(s *types.Student) {
		s.CurrentDisciplines = removeCurrent(s.CurrentDisciplines, disciplineID, classNumber)
	})
}

func (sr *studentRepo) UpdateCredits(ctx context.Context, tx *gorm.DB, registration string, mandatory, elective int) (*types.Student, error) {
	return sr.mutate(ctx, tx, registration, func(s *types.Student) {
		s.MandatoryCredits = mandatory
		s.ElectiveCredits = elective
	})
}

func (sr *studentRepo) mutate(ctx context.Context, tx *gorm.DB, registration string, apply func(*types.Student)) (*types.Student, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var out *types.Student
	err := transaction.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		student, err := sr.GetByRegistration(ctx, inner, registration)
		if err != nil {
			return err
		}
		apply(student)
		if err := inner.Save(student).Error; err != nil {
			return err
		}
		out = student
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// removeCurrent drops entries for the discipline; classNumber 0 drops them
// regardless of class.
func removeCurrent(list []types.CurrentDiscipline, disciplineID string, classNumber int) []types.CurrentDiscipline {
	kept := list[:0]
	for _, cur := range list {
		if cur.DisciplineID == disciplineID && (classNumber == 0 || cur.ClassNumber == classNumber) {
			continue
		}
		kept = append(kept, cur)
	}
	return kept
}
