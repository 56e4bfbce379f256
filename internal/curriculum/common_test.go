package curriculum

import (
	"testing"

	"github.com/ccomp-uerj/progress-backend/internal/types"
)

// Shared fixture: a trimmed-down curriculum with three mandatory courses,
// one layout slot the catalog does not know, four departmental elective
// slots, and the basic elective slot.
func testLayout() []Slot {
	return []Slot{
		{ID: "IME0410817", Code: "IME04-10817", Semester: 1, Row: 1},
		{ID: "IME0410820", Code: "IME04-10820", Semester: 2, Row: 1},
		{ID: "IME0410821", Code: "IME04-10821", Semester: 2, Row: 2},
		{ID: "IME0499999", Code: "IME04-99999", Semester: 3, Row: 1},
		{ID: "ELETIVABASICA", Code: "Eletiva", Name: "Eletiva Básica", Semester: 5, Row: 1, ElectiveGroup: true, BasicGroup: true},
		{ID: "ELETIVAI", Code: "Eletiva", Name: "Eletiva I", Semester: 6, Row: 1, ElectiveGroup: true},
		{ID: "ELETIVAII", Code: "Eletiva", Name: "Eletiva II", Semester: 8, Row: 1, ElectiveGroup: true},
		{ID: "ELETIVAIII", Code: "Eletiva", Name: "Eletiva III", Semester: 8, Row: 2, ElectiveGroup: true},
		{ID: "ELETIVAIV", Code: "Eletiva", Name: "Eletiva IV", Semester: 8, Row: 3, ElectiveGroup: true},
	}
}

func testRecords() []types.RawCourseRecord {
	return []types.RawCourseRecord{
		{
			ID:           "api-817",
			Name:         "IME04-10817 Algoritmos e Estruturas de Dados I",
			Type:         "Obrigatória",
			Credits:      4,
			CreditLock:   "0",
			DisciplineID: "ext-817",
		},
		{
			ID:           "api-820",
			Name:         "IME04-10820 Estruturas de Dados II",
			Type:         "Obrigatória",
			Credits:      4,
			CreditLock:   "",
			DisciplineID: "ext-820",
			Requirements: []types.Requirement{
				{Type: RequirementTypePrerequisite, Description: "IME04-10817 Algoritmos e Estruturas de Dados I"},
			},
		},
		{
			ID:           "api-821",
			Name:         "IME04-10821 Projeto Final",
			Type:         "Obrigatória",
			Credits:      6,
			CreditLock:   "100",
			DisciplineID: "ext-821",
		},
		{
			ID:           "api-e1",
			Name:         "IME04-20001 Computação Gráfica",
			Type:         "E. Restrita",
			Credits:      4,
			CreditLock:   "0",
			DisciplineID: "ext-e1",
		},
		{
			ID:           "api-e2",
			Name:         "IME04-20002 Compiladores",
			Type:         "Optativa",
			Credits:      4,
			CreditLock:   "0",
			DisciplineID: "ext-e2",
		},
		{
			ID:           "api-e3",
			Name:         "IME04-20003 Redes Neurais",
			Type:         "E. Restrita",
			Credits:      4,
			CreditLock:   "0",
			DisciplineID: "ext-e3",
		},
		{
			ID:           "api-b1",
			Name:         "FIS01-30001 Física Moderna",
			Type:         "Optativa",
			Credits:      4,
			CreditLock:   "0",
			DisciplineID: "ext-b1",
		},
	}
}

func buildTestGraph(t *testing.T) Graph {
	t.Helper()
	g := BuildGraph(testRecords(), testLayout())
	if g.Empty() {
		t.Fatal("test graph unexpectedly empty")
	}
	return g
}

func testStudent(completed []string, current []types.CurrentDiscipline, mandatory, elective int) *types.Student {
	return &types.Student{
		Registration:         "201900000000",
		Name:                 "Ana",
		LastName:             "Silva",
		CompletedDisciplines: completed,
		CurrentDisciplines:   current,
		MandatoryCredits:     mandatory,
		ElectiveCredits:      elective,
	}
}
