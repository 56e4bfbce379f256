package curriculum

import (
	"github.com/ccomp-uerj/progress-backend/internal/types"
)

// ResolveStatuses derives the full per-node status map for one student
// snapshot. It is pure: identical inputs always produce the same map, and it
// is recomputed in full whenever student data changes, never patched.
//
// Completed disciplines are applied first and current disciplines after, so
// an id present in both lists resolves to Current. That ordering is the
// authoritative tie-break.
func ResolveStatuses(g Graph, student *types.Student) StatusMap {
	statuses := make(StatusMap)
	if g.Empty() || student == nil {
		return statuses
	}

	for _, externalID := range student.CompletedDisciplines {
		if id, ok := g.ExternalToID[externalID]; ok {
			statuses[id] = StatusCompleted
		}
	}
	for _, enrollment := range student.CurrentDisciplines {
		if id, ok := g.ExternalToID[enrollment.DisciplineID]; ok {
			statuses[id] = StatusCurrent
		}
	}

	return AssignElectiveSlots(g, statuses)
}

// ComputeLocked returns the set of node ids the student cannot currently
// enroll in: some prerequisite is not Completed, or the node's credit lock
// exceeds the student's total credits. A node that is itself Completed is
// never locked; locking gates future enrollment, not past completion.
func ComputeLocked(g Graph, statuses StatusMap, totalCredits int) map[string]bool {
	locked := make(map[string]bool)
	for _, node := range g.Nodes {
		if node.Regular == nil {
			// Group slots carry no prerequisites or credit lock.
			continue
		}
		if statuses.Get(node.ID) == StatusCompleted {
			continue
		}
		for _, dep := range node.Regular.Dependencies {
			if statuses.Get(dep) != StatusCompleted {
				locked[node.ID] = true
				break
			}
		}
		if node.Regular.CreditLock > 0 && totalCredits < node.Regular.CreditLock {
			locked[node.ID] = true
		}
	}
	return locked
}
