package types

// Requirement is one free-text requirement line attached to a catalog course.
// Type distinguishes prerequisites from co-requisites and credit rules.
type Requirement struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// RawCourseRecord is a course exactly as the upstream catalog returns it.
// Name embeds the course code as a prefix ("IME04-10817 Algoritmos...").
// CreditLock is a numeric string or empty; records may arrive partially
// filled and must never abort graph construction.
type RawCourseRecord struct {
	ID           string        `json:"_id"`
	Name         string        `json:"name"`
	Period       string        `json:"period"`
	Type         string        `json:"type"`
	Credits      int           `json:"credits"`
	CreditLock   string        `json:"creditLock"`
	DisciplineID string        `json:"disciplineId"`
	Requirements []Requirement `json:"requirements"`
}
