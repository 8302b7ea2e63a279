package shopprobe

import "strings"

// Snapshot is the set of tables and columns captured from a live database
// at inspection time. It is built once per query-build invocation and never
// mutated afterwards.
type Snapshot struct {
	Tables []Table
}

// Table holds a table name exactly as the database reports it, plus its
// column names in reported order. The original case of Name must be kept
// because it is spliced into generated query text.
type Table struct {
	Name    string
	Columns []string
}

// Lookup finds a table by name, case-insensitively, and returns it with its
// original case intact.
func (s *Snapshot) Lookup(name string) (Table, bool) {
	for _, t := range s.Tables {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Table{}, false
}

// Has reports whether a table with the given name exists (case-insensitive).
func (s *Snapshot) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// TableNames returns the table names in snapshot order.
func (s *Snapshot) TableNames() []string {
	names := make([]string, 0, len(s.Tables))
	for _, t := range s.Tables {
		names = append(names, t.Name)
	}
	return names
}
