package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ccomp-uerj/progress-backend/internal/curriculum"
	apperrors "github.com/ccomp-uerj/progress-backend/internal/pkg/errors"
	"github.com/ccomp-uerj/progress-backend/internal/pkg/logger"
	"github.com/ccomp-uerj/progress-backend/internal/types"
)

type fakeCatalog struct {
	graph curriculum.Graph
	err   error
}

func (f *fakeCatalog) Graph(ctx context.Context) (curriculum.Graph, error)   { return f.graph, f.err }
func (f *fakeCatalog) Refresh(ctx context.Context) (curriculum.Graph, error) { return f.graph, f.err }
func (f *fakeCatalog) DisciplineDetail(ctx context.Context, disciplineID string) (json.RawMessage, error) {
	return nil, nil
}
func (f *fakeCatalog) ClassDetail(ctx context.Context, disciplineID string, classNumber int) (json.RawMessage, error) {
	return nil, nil
}

type fakeStudents struct {
	student *types.Student
	err     error
}

func (f *fakeStudents) GetOrCreate(ctx context.Context, registration string) (*types.Student, bool, error) {
	return f.student, false, f.err
}
func (f *fakeStudents) UpdateProfile(ctx context.Context, registration string, name, lastName *string) (*types.Student, error) {
	return f.student, nil
}
func (f *fakeStudents) SetCompleted(ctx context.Context, registration, disciplineID string) (*types.Student, error) {
	return f.student, nil
}
func (f *fakeStudents) UnsetCompleted(ctx context.Context, registration, disciplineID string) (*types.Student, error) {
	return f.student, nil
}
func (f *fakeStudents) SetCurrent(ctx context.Context, registration, disciplineID string, classNumber int) (*types.Student, error) {
	return f.student, nil
}
func (f *fakeStudents) UnsetCurrent(ctx context.Context, registration, disciplineID string, classNumber int) (*types.Student, error) {
	return f.student, nil
}
func (f *fakeStudents) ClearStatus(ctx context.Context, registration, disciplineID string) (*types.Student, error) {
	return f.student, nil
}

func testGraph() curriculum.Graph {
	records := []types.RawCourseRecord{
		{
			ID:           "api-817",
			Name:         "IME04-10817 Algoritmos",
			Type:         "Obrigatória",
			Credits:      4,
			DisciplineID: "ext-817",
		},
		{
			ID:           "api-820",
			Name:         "IME04-10820 Estruturas",
			Type:         "Obrigatória",
			Credits:      4,
			DisciplineID: "ext-820",
			Requirements: []types.Requirement{
				{Type: curriculum.RequirementTypePrerequisite, Description: "IME04-10817 Algoritmos"},
			},
		},
	}
	layout := []curriculum.Slot{
		{ID: "IME0410817", Code: "IME04-10817", Semester: 1, Row: 1},
		{ID: "IME0410820", Code: "IME04-10820", Semester: 2, Row: 1},
	}
	return curriculum.BuildGraph(records, layout)
}

func TestProgressSnapshot(t *testing.T) {
	student := &types.Student{
		Registration:         "2019001",
		CompletedDisciplines: []string{"ext-817"},
		MandatoryCredits:     4,
	}
	svc := NewProgressService(logger.NewNop(), &fakeCatalog{graph: testGraph()}, &fakeStudents{student: student})

	snap, err := svc.Snapshot(context.Background(), "2019001")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Statuses.Get("IME0410817") != curriculum.StatusCompleted {
		t.Fatalf("status=%s, want %s", snap.Statuses.Get("IME0410817"), curriculum.StatusCompleted)
	}
	if snap.TotalCredits != 4 {
		t.Fatalf("totalCredits=%d, want 4", snap.TotalCredits)
	}
	for _, id := range snap.Locked {
		if id == "IME0410820" {
			t.Fatal("dependency satisfied, IME0410820 must not be locked")
		}
	}
}

func TestProgressSnapshotCatalogUnavailable(t *testing.T) {
	student := &types.Student{Registration: "2019001"}
	cat := &fakeCatalog{graph: curriculum.Graph{}, err: apperrors.ErrUnavailable}
	svc := NewProgressService(logger.NewNop(), cat, &fakeStudents{student: student})

	snap, err := svc.Snapshot(context.Background(), "2019001")
	if err != nil {
		t.Fatalf("Snapshot must degrade, got error: %v", err)
	}
	if !snap.Graph.Empty() {
		t.Fatal("graph should be empty when the catalog is unavailable")
	}
	if len(snap.Statuses) != 0 {
		t.Fatalf("statuses=%v, want none without catalog data", snap.Statuses)
	}
	if snap.Student == nil {
		t.Fatal("student record must still be present")
	}
}

func TestProgressSnapshotStudentError(t *testing.T) {
	svc := NewProgressService(logger.NewNop(), &fakeCatalog{graph: testGraph()}, &fakeStudents{err: apperrors.ErrNotFound})

	if _, err := svc.Snapshot(context.Background(), "2019001"); err == nil {
		t.Fatal("student store failure must surface as an error")
	}
}
