package curriculum

import (
	"testing"

	"github.com/ccomp-uerj/progress-backend/internal/types"
)

func TestResolveStatusesFreshStudent(t *testing.T) {
	g := buildTestGraph(t)
	student := testStudent(nil, nil, 0, 0)

	statuses := ResolveStatuses(g, student)

	for _, n := range g.Nodes {
		if got := statuses.Get(n.ID); got != StatusNotTaken {
			t.Fatalf("node %s status=%s, want %s", n.ID, got, StatusNotTaken)
		}
	}

	locked := ComputeLocked(g, statuses, student.TotalCredits())
	if !locked["IME0410820"] {
		t.Fatal("node with an uncompleted prerequisite must be locked")
	}
	if !locked["IME0410821"] {
		t.Fatal("node with a nonzero credit lock must be locked at zero credits")
	}
	if locked["IME0410817"] {
		t.Fatal("node with no prerequisites and no credit lock must not be locked")
	}
}

func TestResolveStatusesBaseMapping(t *testing.T) {
	g := buildTestGraph(t)
	student := testStudent(
		[]string{"ext-817"},
		[]types.CurrentDiscipline{{DisciplineID: "ext-820", ClassNumber: 1}},
		4, 0,
	)

	statuses := ResolveStatuses(g, student)

	if got := statuses.Get("IME0410817"); got != StatusCompleted {
		t.Fatalf("completed discipline status=%s, want %s", got, StatusCompleted)
	}
	if got := statuses.Get("IME0410820"); got != StatusCurrent {
		t.Fatalf("current discipline status=%s, want %s", got, StatusCurrent)
	}
	if got := statuses.Get("IME0410821"); got != StatusNotTaken {
		t.Fatalf("untouched discipline status=%s, want %s", got, StatusNotTaken)
	}
}

func TestResolveStatusesCurrentWinsTieBreak(t *testing.T) {
	g := buildTestGraph(t)
	// Same discipline in both lists: current is applied after completed.
	student := testStudent(
		[]string{"ext-817"},
		[]types.CurrentDiscipline{{DisciplineID: "ext-817", ClassNumber: 2}},
		0, 0,
	)

	statuses := ResolveStatuses(g, student)
	if got := statuses.Get("IME0410817"); got != StatusCurrent {
		t.Fatalf("status=%s, want %s when listed as completed and current", got, StatusCurrent)
	}
}

func TestResolveStatusesUnknownExternalIDsIgnored(t *testing.T) {
	g := buildTestGraph(t)
	student := testStudent(
		[]string{"ext-does-not-exist"},
		[]types.CurrentDiscipline{{DisciplineID: "also-unknown", ClassNumber: 1}},
		0, 0,
	)

	statuses := ResolveStatuses(g, student)
	for _, n := range g.Nodes {
		if n.Group != nil {
			continue
		}
		if got := statuses.Get(n.ID); got != StatusNotTaken {
			t.Fatalf("node %s status=%s, want %s", n.ID, got, StatusNotTaken)
		}
	}
}

func TestResolveStatusesCompletionIsMonotonic(t *testing.T) {
	g := buildTestGraph(t)

	before := ResolveStatuses(g, testStudent([]string{"ext-817"}, nil, 4, 0))
	after := ResolveStatuses(g, testStudent([]string{"ext-817", "ext-820"}, nil, 8, 0))

	for id, status := range before {
		if status != StatusCompleted {
			continue
		}
		if after.Get(id) != StatusCompleted {
			t.Fatalf("node %s regressed from Completed to %s", id, after.Get(id))
		}
	}
	if after.Get("IME0410820") != StatusCompleted {
		t.Fatal("newly completed discipline did not become Completed")
	}
}

func TestComputeLockedCreditThreshold(t *testing.T) {
	g := buildTestGraph(t)
	// IME0410821 has creditLock=100 and no prerequisites.
	statuses := StatusMap{}

	if locked := ComputeLocked(g, statuses, 80); !locked["IME0410821"] {
		t.Fatal("80 credits against a 100-credit lock must lock the node")
	}
	if locked := ComputeLocked(g, statuses, 100); locked["IME0410821"] {
		t.Fatal("100 credits against a 100-credit lock must unlock the node")
	}
}

func TestComputeLockedCompletedNodeNeverLocked(t *testing.T) {
	g := buildTestGraph(t)
	statuses := StatusMap{"IME0410821": StatusCompleted}

	locked := ComputeLocked(g, statuses, 0)
	if locked["IME0410821"] {
		t.Fatal("a completed node must not be reported locked")
	}
}

func TestComputeLockedDependencySatisfied(t *testing.T) {
	g := buildTestGraph(t)
	statuses := StatusMap{"IME0410817": StatusCompleted}

	locked := ComputeLocked(g, statuses, 0)
	if locked["IME0410820"] {
		t.Fatal("node with all prerequisites completed must not be locked")
	}
}

func TestComputeLockedCurrentPrerequisiteStillLocks(t *testing.T) {
	g := buildTestGraph(t)
	// Being enrolled in the prerequisite is not enough; it must be Completed.
	statuses := StatusMap{"IME0410817": StatusCurrent}

	locked := ComputeLocked(g, statuses, 0)
	if !locked["IME0410820"] {
		t.Fatal("prerequisite in Current must still lock the dependent node")
	}
}

func TestResolveStatusesPure(t *testing.T) {
	g := buildTestGraph(t)
	student := testStudent([]string{"ext-817", "ext-e1"}, []types.CurrentDiscipline{{DisciplineID: "ext-820", ClassNumber: 3}}, 8, 4)

	a := ResolveStatuses(g, student)
	b := ResolveStatuses(g, student)
	if len(a) != len(b) {
		t.Fatalf("resolutions differ in size: %d vs %d", len(a), len(b))
	}
	for id, status := range a {
		if b[id] != status {
			t.Fatalf("node %s resolved to %s then %s", id, status, b[id])
		}
	}
}
