package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CurrentDiscipline marks an in-progress enrollment: the catalog's discipline
// identifier plus the class (turma) the student attends.
type CurrentDiscipline struct {
	DisciplineID string `json:"disciplineId"`
	ClassNumber  int    `json:"classNumber"`
}

// Student is the persisted student record. The discipline lists hold external
// catalog discipline ids, never internal graph ids.
type Student struct {
	ID                   uuid.UUID                               `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Registration         string                                  `gorm:"column:registration;not null;uniqueIndex" json:"studentId"`
	Name                 string                                  `gorm:"column:name" json:"name"`
	LastName             string                                  `gorm:"column:last_name" json:"lastName"`
	CompletedDisciplines datatypes.JSONSlice[string]             `gorm:"column:completed_disciplines" json:"completedDisciplines"`
	CurrentDisciplines   datatypes.JSONSlice[CurrentDiscipline]  `gorm:"column:current_disciplines" json:"currentDisciplines"`
	MandatoryCredits     int                                     `gorm:"column:mandatory_credits;not null;default:0" json:"mandatoryCredits"`
	ElectiveCredits      int                                     `gorm:"column:elective_credits;not null;default:0" json:"electiveCredits"`
	CreatedAt            time.Time                               `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time                               `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt            gorm.DeletedAt                          `gorm:"index" json:"deleted_at,omitempty"`
}

func (Student) TableName() string { return "student" }

// TotalCredits feeds the credit-lock check.
func (s *Student) TotalCredits() int {
	if s == nil {
		return 0
	}
	return s.MandatoryCredits + s.ElectiveCredits
}
