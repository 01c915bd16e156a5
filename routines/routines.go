package routines

import "fmt"

// Routine describes one engine-provided function callable via ACTION
// (§4.6 Routine Table). The core only ever reads Name and ID; everything
// else (Return, Args) is carried through for a definitions-file consumer
// or a future symbolic renderer, but is opaque to the disassembler and
// assembler.
type Routine struct {
	ID     uint16
	Name   string
	Return string
	Args   []Arg
}

// Arg is one formal parameter of a routine, as declared in a definitions
// file. Default is the raw text of a default value expression, if any.
type Arg struct {
	Type    string
	Name    string
	Default string
}

// Table is the resolved routine_id -> Routine mapping the core consumes
// (§4.6). It is built once and is immutable for the life of a translation
// run.
type Table struct {
	byID   map[uint16]Routine
	byName map[string]uint16
}

// NewTable builds a Table from a flat list of routines. A duplicate ID or
// name is a TableError-class programmer/input error; NewTable reports it
// rather than silently keeping the first or last entry.
func NewTable(rs []Routine) (*Table, error) {
	t := &Table{
		byID:   make(map[uint16]Routine, len(rs)),
		byName: make(map[string]uint16, len(rs)),
	}
	for _, r := range rs {
		if _, dup := t.byID[r.ID]; dup {
			return nil, &DuplicateError{Kind: "routine id", Key: formatID(r.ID)}
		}
		if _, dup := t.byName[r.Name]; dup {
			return nil, &DuplicateError{Kind: "routine name", Key: r.Name}
		}
		t.byID[r.ID] = r
		t.byName[r.Name] = r.ID
	}
	return t, nil
}

// ByID looks up a routine by its numeric identifier (used when rendering
// ACTION's Routine operand).
func (t *Table) ByID(id uint16) (Routine, bool) {
	if t == nil {
		return Routine{}, false
	}
	r, ok := t.byID[id]
	return r, ok
}

// ByName looks up a routine's ID by name (used when assembling a symbolic
// ACTION reference).
func (t *Table) ByName(name string) (uint16, bool) {
	if t == nil {
		return 0, false
	}
	id, ok := t.byName[name]
	return id, ok
}

// DuplicateError reports a table-construction conflict: two routines
// claiming the same ID or name.
type DuplicateError struct {
	Kind string
	Key  string
}

func (e *DuplicateError) Error() string {
	return "duplicate " + e.Kind + ": " + e.Key
}

func formatID(id uint16) string {
	return fmt.Sprintf("0x%04X", id)
}
