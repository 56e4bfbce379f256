package curriculum

import "sort"

// AssignElectiveSlots layers slot-level elective statuses onto the base map
// and returns the same map.
//
// The student record stores elective completions as a flat list, but the
// flowchart exposes fixed slots. Slots are fungible containers: a student who
// completed any two departmental electives has filled two departmental slots,
// regardless of which two. The departmental slots are walked in display-name
// order and each one absorbs the first remaining completed elective, then the
// first remaining current one; the name ordering is the deterministic
// tie-break, since flat completions carry no slot identity of their own.
//
// The basic-elective slot is an aggregate instead: Current if any of its
// members is Current, else Completed if any member is Completed.
func AssignElectiveSlots(g Graph, statuses StatusMap) StatusMap {
	var completedPool, currentPool []string
	seen := make(map[string]bool)
	for _, node := range g.Nodes {
		if node.Group == nil {
			continue
		}
		for _, member := range node.Group.Members {
			// Departmental pools are shared across slots; count each
			// elective once.
			if seen[member.ID] {
				continue
			}
			seen[member.ID] = true
			switch statuses.Get(member.ID) {
			case StatusCompleted:
				completedPool = append(completedPool, member.ID)
			case StatusCurrent:
				currentPool = append(currentPool, member.ID)
			}
		}
	}

	var basic *Node
	var slots []Node
	for i := range g.Nodes {
		node := g.Nodes[i]
		if node.Group == nil {
			continue
		}
		if node.Group.Basic {
			basic = &g.Nodes[i]
			continue
		}
		slots = append(slots, node)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Name < slots[j].Name })

	for _, slot := range slots {
		switch {
		case len(completedPool) > 0:
			statuses[slot.ID] = StatusCompleted
			completedPool = completedPool[1:]
		case len(currentPool) > 0:
			statuses[slot.ID] = StatusCurrent
			currentPool = currentPool[1:]
		default:
			statuses[slot.ID] = StatusNotTaken
		}
	}

	if basic != nil {
		hasCurrent, hasCompleted := false, false
		for _, member := range basic.Group.Members {
			switch statuses.Get(member.ID) {
			case StatusCurrent:
				hasCurrent = true
			case StatusCompleted:
				hasCompleted = true
			}
		}
		if hasCurrent {
			statuses[basic.ID] = StatusCurrent
		} else if hasCompleted {
			statuses[basic.ID] = StatusCompleted
		}
	}

	return statuses
}
