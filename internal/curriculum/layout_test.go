package curriculum

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLayoutIsValid(t *testing.T) {
	layout := DefaultLayout()
	if err := ValidateLayout(layout); err != nil {
		t.Fatalf("built-in layout invalid: %v", err)
	}

	groups, basics := 0, 0
	for _, s := range layout {
		if s.ElectiveGroup {
			groups++
		}
		if s.BasicGroup {
			basics++
		}
	}
	if groups != 5 {
		t.Fatalf("elective groups=%d, want 5", groups)
	}
	if basics != 1 {
		t.Fatalf("basic groups=%d, want 1", basics)
	}
}

func TestValidateLayout(t *testing.T) {
	cases := []struct {
		name    string
		slots   []Slot
		wantErr bool
	}{
		{
			name:    "empty",
			slots:   nil,
			wantErr: true,
		},
		{
			name: "duplicate_id",
			slots: []Slot{
				{ID: "A", Code: "A-1", Semester: 1, Row: 1},
				{ID: "A", Code: "A-2", Semester: 1, Row: 2},
			},
			wantErr: true,
		},
		{
			name: "basic_flag_on_non_group",
			slots: []Slot{
				{ID: "A", Code: "A-1", Semester: 1, Row: 1, BasicGroup: true},
			},
			wantErr: true,
		},
		{
			name: "ok",
			slots: []Slot{
				{ID: "A", Code: "A-1", Semester: 1, Row: 1},
				{ID: "B", Code: "Eletiva", Semester: 2, Row: 1, ElectiveGroup: true, BasicGroup: true},
			},
			wantErr: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateLayout(tc.slots)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateLayout err=%v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestLoadLayoutOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	doc := `slots:
  - id: IME0410817
    code: IME04-10817
    semester: 1
    row: 1
  - id: ELETIVABASICA
    code: Eletiva
    name: Eletiva Básica
    semester: 2
    row: 1
    electiveGroup: true
    basicGroup: true
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(LayoutEnv, path)

	layout := LoadLayout(nil)
	if len(layout) != 2 {
		t.Fatalf("slots=%d, want 2", len(layout))
	}
	if layout[0].ID != "IME0410817" || layout[1].BasicGroup != true {
		t.Fatalf("unexpected layout: %+v", layout)
	}
}

func TestLoadLayoutBadOverrideFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	if err := os.WriteFile(path, []byte("slots: [not a slot"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(LayoutEnv, path)

	layout := LoadLayout(nil)
	if len(layout) != len(DefaultLayout()) {
		t.Fatalf("slots=%d, want built-in fallback of %d", len(layout), len(DefaultLayout()))
	}
}
