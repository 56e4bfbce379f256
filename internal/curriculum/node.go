package curriculum

// Category classifies a catalog course inside the curriculum.
type Category string

const (
	CategoryMandatory Category = "MANDATORY"
	CategoryElective  Category = "ELECTIVE"
	CategoryUnknown   Category = "UNKNOWN"
)

// Status is the per-student standing of one node. A node with no entry in a
// StatusMap is NotTaken.
type Status string

const (
	StatusCompleted Status = "COMPLETED"
	StatusCurrent   Status = "CURRENT"
	StatusNotTaken  Status = "NOT_TAKEN"
)

// Node is one position in the curriculum flowchart. Exactly one of Regular or
// Group is non-nil: a regular node carries prerequisites and a credit lock, an
// elective-group node carries only the pool of courses that can fill it.
type Node struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	ExternalID string `json:"disciplineId"`
	CatalogID  string `json:"apiId,omitempty"`
	Credits    int    `json:"credits"`
	Semester   int    `json:"semester"`
	Row        int    `json:"row"`

	Regular *RegularNode   `json:"regular,omitempty"`
	Group   *ElectiveGroup `json:"electiveGroup,omitempty"`
}

// RegularNode holds the parts that only make sense for a concrete course.
type RegularNode struct {
	Category     Category `json:"category"`
	CreditLock   int      `json:"creditLock"`
	Dependencies []string `json:"dependencies"`
}

// ElectiveGroup holds the parts that only make sense for a slot placeholder.
// Basic marks the single basic-elective slot; all other groups draw from the
// departmental pool.
type ElectiveGroup struct {
	Basic   bool   `json:"basic,omitempty"`
	Members []Node `json:"members"`
}

func (n Node) IsGroup() bool { return n.Group != nil }

// DependencyIDs returns the prerequisite node ids; groups have none.
func (n Node) DependencyIDs() []string {
	if n.Regular == nil {
		return nil
	}
	return n.Regular.Dependencies
}

// StatusMap maps node id to status. Absent ids read as NotTaken.
type StatusMap map[string]Status

func (m StatusMap) Get(id string) Status {
	if s, ok := m[id]; ok {
		return s
	}
	return StatusNotTaken
}

// Graph is the normalized curriculum: every layout slot materialized as a
// node, the distinct semester axis, and the id translation tables. Both maps
// are built once per construction and never mutated afterwards.
type Graph struct {
	Nodes     []Node   `json:"courses"`
	Semesters []int    `json:"semesters"`
	// IDMapping translates internal node ids to catalog discipline ids.
	IDMapping map[string]string `json:"idMapping"`
	// ExternalToID is the inverse of IDMapping.
	ExternalToID map[string]string `json:"-"`

	byID       map[string]int
	memberByID map[string]Node
}

// Empty reports whether the graph carries no data. Callers treat an empty
// graph as "catalog unavailable", not as an empty curriculum.
func (g Graph) Empty() bool { return len(g.Nodes) == 0 }

// NodeByID looks a node up by its internal id. Layout nodes are checked
// first, then elective-pool members.
func (g Graph) NodeByID(id string) (Node, bool) {
	if i, ok := g.byID[id]; ok {
		return g.Nodes[i], true
	}
	n, ok := g.memberByID[id]
	return n, ok
}
