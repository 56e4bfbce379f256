package curriculum

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ccomp-uerj/progress-backend/internal/pkg/logger"
)

// LayoutEnv optionally points at a YAML file overriding the built-in
// flowchart layout, so a new curriculum version can be tried without a
// rebuild.
const LayoutEnv = "CURRICULUM_LAYOUT_YAML"

// Slot is one fixed position in the curriculum flowchart. The layout is
// static per curriculum version and independent of any catalog snapshot;
// semester and row are visual coordinates, not derived data.
type Slot struct {
	ID            string `yaml:"id"`
	Code          string `yaml:"code"`
	Name          string `yaml:"name,omitempty"`
	Semester      int    `yaml:"semester"`
	Row           int    `yaml:"row"`
	ElectiveGroup bool   `yaml:"electiveGroup,omitempty"`
	BasicGroup    bool   `yaml:"basicGroup,omitempty"`
}

// The UERJ computer science flowchart ships with the binary.
//
//go:embed layout.yaml
var defaultLayoutYAML []byte

var (
	defaultLayoutOnce sync.Once
	defaultLayout     []Slot
)

// DefaultLayout returns a copy of the built-in flowchart layout.
func DefaultLayout() []Slot {
	defaultLayoutOnce.Do(func() {
		var doc struct {
			Slots []Slot `yaml:"slots"`
		}
		if err := yaml.Unmarshal(defaultLayoutYAML, &doc); err != nil {
			panic(fmt.Sprintf("embedded layout: %v", err))
		}
		defaultLayout = doc.Slots
	})
	out := make([]Slot, len(defaultLayout))
	copy(out, defaultLayout)
	return out
}

// LoadLayout returns the layout to build graphs over: the YAML file named by
// CURRICULUM_LAYOUT_YAML when set and valid, otherwise the built-in table.
// An invalid override is logged and ignored rather than breaking startup.
func LoadLayout(log *logger.Logger) []Slot {
	path := os.Getenv(LayoutEnv)
	if path == "" {
		return DefaultLayout()
	}
	slots, err := loadLayoutFile(path)
	if err != nil {
		if log != nil {
			log.Warn("Layout override unusable, falling back to built-in layout", "path", path, "error", err)
		}
		return DefaultLayout()
	}
	if log != nil {
		log.Info("Loaded layout override", "path", path, "slots", len(slots))
	}
	return slots
}

func loadLayoutFile(path string) ([]Slot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	var doc struct {
		Slots []Slot `yaml:"slots"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return doc.Slots, ValidateLayout(doc.Slots)
}

// ValidateLayout rejects layouts the graph builder cannot honor: duplicate or
// missing ids, more than one basic-elective slot, or group flags on a slot
// that is not a group.
func ValidateLayout(slots []Slot) error {
	if len(slots) == 0 {
		return fmt.Errorf("layout has no slots")
	}
	seen := make(map[string]bool, len(slots))
	basics := 0
	for _, s := range slots {
		if s.ID == "" {
			return fmt.Errorf("layout slot with empty id (code %q)", s.Code)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate layout slot id %q", s.ID)
		}
		seen[s.ID] = true
		if s.BasicGroup {
			if !s.ElectiveGroup {
				return fmt.Errorf("slot %q marked basic but not an elective group", s.ID)
			}
			basics++
		}
	}
	if basics > 1 {
		return fmt.Errorf("layout declares %d basic elective slots, want at most 1", basics)
	}
	return nil
}
