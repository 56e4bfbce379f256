package curriculum

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ccomp-uerj/progress-backend/internal/types"
)

// Catalog type labels.
const (
	typeMandatory          = "Obrigatória"
	typeRestrictedElective = "E. Restrita"
	typeOptionalElective   = "Optativa"
)

// departmentPrefix separates departmental electives (fillable into the
// numbered elective slots) from basic electives.
const departmentPrefix = "IME"

// electiveGroupCredits is the display credit value shown on group slots.
const electiveGroupCredits = 4

func categoryOf(typeLabel string) Category {
	switch typeLabel {
	case typeMandatory:
		return CategoryMandatory
	case typeRestrictedElective, typeOptionalElective:
		return CategoryElective
	default:
		return CategoryUnknown
	}
}

func parseCreditLock(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// BuildGraph normalizes raw catalog records over the fixed layout. The graph
// is always complete over the layout: a slot with no matching record becomes
// an Unknown placeholder, never a hole, so id-based lookups downstream cannot
// miss. One malformed record degrades to safe defaults instead of aborting
// the build.
func BuildGraph(records []types.RawCourseRecord, layout []Slot) Graph {
	codeToID := make(map[string]string, len(records))
	recordByID := make(map[string]types.RawCourseRecord, len(records))
	idMapping := make(map[string]string, len(records))

	for _, rec := range records {
		code := ExtractCode(rec.Name)
		id := NodeID(code)
		if id == "" {
			continue
		}
		codeToID[code] = id
		recordByID[id] = rec
		idMapping[id] = rec.DisciplineID
	}

	// Non-mandatory records feed the elective pools; the code prefix decides
	// which slot kind each one can fill.
	var basicPool, departmentPool []Node
	for _, rec := range records {
		if categoryOf(rec.Type) != CategoryElective {
			continue
		}
		member := electiveMember(rec)
		if member.ID == "" {
			continue
		}
		if strings.HasPrefix(member.Code, departmentPrefix) {
			departmentPool = append(departmentPool, member)
		} else {
			basicPool = append(basicPool, member)
		}
	}

	nodes := make([]Node, 0, len(layout))
	for _, slot := range layout {
		if slot.ElectiveGroup {
			nodes = append(nodes, groupNode(slot, basicPool, departmentPool))
			continue
		}
		rec, ok := recordByID[slot.ID]
		if !ok {
			nodes = append(nodes, placeholderNode(slot))
			continue
		}
		nodes = append(nodes, regularNode(slot, rec, codeToID))
	}

	return newGraph(nodes, idMapping)
}

func electiveMember(rec types.RawCourseRecord) Node {
	code := ExtractCode(rec.Name)
	return Node{
		ID:         NodeID(code),
		Code:       code,
		Name:       strings.TrimSpace(strings.Replace(rec.Name, code, "", 1)),
		ExternalID: rec.DisciplineID,
		CatalogID:  rec.ID,
		Credits:    rec.Credits,
		Regular: &RegularNode{
			Category:   CategoryElective,
			CreditLock: parseCreditLock(rec.CreditLock),
		},
	}
}

func groupNode(slot Slot, basicPool, departmentPool []Node) Node {
	pool := departmentPool
	if slot.BasicGroup {
		pool = basicPool
	}
	name := slot.Name
	if name == "" {
		name = slot.Code
	}
	return Node{
		ID:         slot.ID,
		Code:       slot.Code,
		Name:       name,
		ExternalID: slot.ID,
		CatalogID:  slot.ID,
		Credits:    electiveGroupCredits,
		Semester:   slot.Semester,
		Row:        slot.Row,
		Group: &ElectiveGroup{
			Basic:   slot.BasicGroup,
			Members: pool,
		},
	}
}

func placeholderNode(slot Slot) Node {
	return Node{
		ID:       slot.ID,
		Code:     slot.Code,
		Name:     "N/A: " + slot.Code,
		Semester: slot.Semester,
		Row:      slot.Row,
		Regular:  &RegularNode{Category: CategoryUnknown},
	}
}

func regularNode(slot Slot, rec types.RawCourseRecord, codeToID map[string]string) Node {
	// Requirement descriptions reference course codes, not ids; resolve each
	// extracted code through the lookup and drop the ones the catalog does
	// not know about.
	var deps []string
	seen := make(map[string]bool)
	for _, code := range ExtractDependencyCodes(rec.Requirements) {
		id, ok := codeToID[code]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		deps = append(deps, id)
	}

	return Node{
		ID:         slot.ID,
		Code:       slot.Code,
		Name:       strings.TrimSpace(strings.Replace(rec.Name, slot.Code, "", 1)),
		ExternalID: rec.DisciplineID,
		CatalogID:  rec.ID,
		Credits:    rec.Credits,
		Semester:   slot.Semester,
		Row:        slot.Row,
		Regular: &RegularNode{
			Category:     categoryOf(rec.Type),
			CreditLock:   parseCreditLock(rec.CreditLock),
			Dependencies: deps,
		},
	}
}

func newGraph(nodes []Node, idMapping map[string]string) Graph {
	semesterSet := make(map[int]bool)
	byID := make(map[string]int, len(nodes))
	for i, n := range nodes {
		semesterSet[n.Semester] = true
		byID[n.ID] = i
	}
	// Elective members are not layout nodes but still need id-based lookup
	// (credit accounting, detail views). Layout slots win on collision.
	members := make(map[string]Node)
	for _, n := range nodes {
		if n.Group == nil {
			continue
		}
		for _, m := range n.Group.Members {
			if _, taken := byID[m.ID]; taken {
				continue
			}
			if _, dup := members[m.ID]; !dup {
				members[m.ID] = m
			}
		}
	}
	semesters := make([]int, 0, len(semesterSet))
	for s := range semesterSet {
		semesters = append(semesters, s)
	}
	sort.Ints(semesters)

	externalToID := make(map[string]string, len(idMapping))
	for id, ext := range idMapping {
		externalToID[ext] = id
	}

	return Graph{
		Nodes:        nodes,
		Semesters:    semesters,
		IDMapping:    idMapping,
		ExternalToID: externalToID,
		byID:         byID,
		memberByID:   members,
	}
}
