package curriculum

import (
	"regexp"
	"strings"

	"github.com/ccomp-uerj/progress-backend/internal/types"
)

// RequirementTypePrerequisite is the catalog's label for hard prerequisites.
// Other requirement types (co-requisites, credit rules) do not create edges.
const RequirementTypePrerequisite = "Pré-Requisito"

// Alternatives inside one requirement line are joined with "ou".
var requirementORPattern = regexp.MustCompile(`\s+ou\s+`)

// ExtractDependencyCodes turns free-text requirement lines into the set of
// course codes they reference. "A ou B" contributes both codes: the graph
// stores the union of alternatives as plain edges, not an OR constraint.
// The result preserves first-appearance order and carries no duplicates.
func ExtractDependencyCodes(requirements []types.Requirement) []string {
	var codes []string
	seen := make(map[string]bool)
	for _, req := range requirements {
		if req.Type != RequirementTypePrerequisite {
			continue
		}
		for _, fragment := range requirementORPattern.Split(req.Description, -1) {
			fragment = strings.TrimSpace(fragment)
			if fragment == "" {
				continue
			}
			code := ExtractCode(fragment)
			if code == "" || seen[code] {
				continue
			}
			seen[code] = true
			codes = append(codes, code)
		}
	}
	return codes
}
