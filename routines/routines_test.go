package routines_test

import (
	"strings"
	"testing"

	"github.com/nwscript-tools/ncs/routines"
)

func TestNewTableDuplicateID(t *testing.T) {
	_, err := routines.NewTable([]routines.Routine{
		{ID: 1, Name: "A"},
		{ID: 1, Name: "B"},
	})
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestNewTableDuplicateName(t *testing.T) {
	_, err := routines.NewTable([]routines.Routine{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "A"},
	})
	if err == nil {
		t.Fatal("expected duplicate name error")
	}
}

func TestTableLookup(t *testing.T) {
	table, err := routines.NewTable([]routines.Routine{
		{ID: 0, Name: "Random"},
		{ID: 1, Name: "PrintString"},
	})
	if err != nil {
		t.Fatal(err)
	}
	r, ok := table.ByID(1)
	if !ok || r.Name != "PrintString" {
		t.Fatalf("ByID(1) = %v, %v", r, ok)
	}
	id, ok := table.ByName("Random")
	if !ok || id != 0 {
		t.Fatalf("ByName(Random) = %v, %v", id, ok)
	}
	if _, ok := table.ByID(99); ok {
		t.Fatal("expected ByID(99) to miss")
	}
}

func TestNilTableLookup(t *testing.T) {
	var table *routines.Table
	if _, ok := table.ByID(0); ok {
		t.Fatal("nil table should never find anything")
	}
	if _, ok := table.ByName("x"); ok {
		t.Fatal("nil table should never find anything")
	}
}

func TestLoadDefinitionsPrototypesAndConstants(t *testing.T) {
	src := `
// comment line, ignored
void PrintString(string sValue);
int Random(int nMaxInteger, int nFlag=0);
const int TRUE = 1;
const float PI = 3.14; // trailing comment
`
	rs, consts, err := routines.LoadDefinitions(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 2 {
		t.Fatalf("expected 2 routines, got %d: %+v", len(rs), rs)
	}
	if rs[0].Name != "PrintString" || rs[0].ID != 0 {
		t.Fatalf("unexpected first routine: %+v", rs[0])
	}
	if rs[1].Name != "Random" || rs[1].ID != 1 {
		t.Fatalf("unexpected second routine: %+v", rs[1])
	}
	if len(rs[1].Args) != 2 || rs[1].Args[1].Default != "0" {
		t.Fatalf("unexpected args: %+v", rs[1].Args)
	}
	if consts["TRUE"] != "1" || consts["PI"] != "3.14" {
		t.Fatalf("unexpected constants: %+v", consts)
	}
}

func TestLoadDefinitionsSkipsUnrecognizedLines(t *testing.T) {
	src := `
struct Foo { int bar; };
#include "other.nss"
void Known(void);
`
	rs, _, err := routines.LoadDefinitions(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 1 || rs[0].Name != "Known" {
		t.Fatalf("expected only Known to parse, got %+v", rs)
	}
}
