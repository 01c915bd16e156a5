package disassembler_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nwscript-tools/ncs/disassembler"
	"github.com/nwscript-tools/ncs/routines"
)

func header() []byte {
	return []byte("NCS V1.0")
}

func TestEmptyRoutineRoundTrip(t *testing.T) {
	in := append(header(), 0x42, 0x00, 0x00, 0x00, 0x0D)
	var out bytes.Buffer
	d := disassembler.New(bytes.NewReader(in), &out, nil)
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	text := out.String()
	if !strings.Contains(text, ";;NCS V1.0") {
		t.Errorf("missing header comment: %q", text)
	}
	if !strings.Contains(text, "T") || !strings.Contains(text, "0x0000000D") {
		t.Errorf("missing T line: %q", text)
	}
}

func TestIntegerConstantPushAndReturn(t *testing.T) {
	in := append(header(),
		0x42, 0x00, 0x00, 0x00, 0x17,
		0x04, 0x03, 0x00, 0x00, 0x00, 0x2A,
		0x02, 0x03,
		0x20, 0x00,
	)
	var out bytes.Buffer
	d := disassembler.New(bytes.NewReader(in), &out, nil)
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	text := out.String()
	for _, want := range []string{"CONSTI", "42", "RSADDI", "RETN"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, text)
		}
	}
}

func TestStringConstantPush(t *testing.T) {
	in := append(header(),
		0x42, 0x00, 0x00, 0x00, 0x13,
		0x04, 0x05, 0x00, 0x02, 0x68, 0x69,
	)
	var out bytes.Buffer
	d := disassembler.New(bytes.NewReader(in), &out, nil)
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	text := out.String()
	if !strings.Contains(text, `CONSTS`) || !strings.Contains(text, `"hi"`) {
		t.Errorf("expected CONSTS \"hi\", got:\n%s", text)
	}
	if strings.Contains(text, "0x2") {
		t.Errorf("Size operand before String should be suppressed, got:\n%s", text)
	}
}

func TestActionCall(t *testing.T) {
	table, err := routines.NewTable([]routines.Routine{{ID: 0x0000, Name: "PrintString"}})
	if err != nil {
		t.Fatal(err)
	}
	in := append(header(),
		0x42, 0x00, 0x00, 0x00, 0x12,
		0x05, 0x00, 0x00, 0x00, 0x01,
	)
	var out bytes.Buffer
	d := disassembler.New(bytes.NewReader(in), &out, table)
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	text := out.String()
	if !strings.Contains(text, "ACTION") || !strings.Contains(text, "PrintString#0x0") {
		t.Errorf("expected ACTION PrintString#0x0 1, got:\n%s", text)
	}
}

func TestActionCallUnresolvedRoutine(t *testing.T) {
	in := append(header(),
		0x42, 0x00, 0x00, 0x00, 0x12,
		0x05, 0x00, 0x00, 0x00, 0x01,
	)
	var out bytes.Buffer
	d := disassembler.New(bytes.NewReader(in), &out, nil)
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "???#0x0") {
		t.Errorf("expected unresolved routine to render as ???#0x0, got:\n%s", out.String())
	}
}

func TestIllegalTypeRejection(t *testing.T) {
	in := append(header(),
		0x42, 0x00, 0x00, 0x00, 0x0F,
		0x14, 0xFF,
	)
	var out bytes.Buffer
	d := disassembler.New(bytes.NewReader(in), &out, nil)
	err := d.Run()
	if err == nil {
		t.Fatal("expected illegal-type error")
	}
	if !strings.Contains(err.Error(), "Type 0xFF not in list of legal types for opcode ADD") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestMissingHeader(t *testing.T) {
	in := []byte("NCS V1.") // 7 bytes
	var out bytes.Buffer
	d := disassembler.New(bytes.NewReader(in), &out, nil)
	if err := d.Run(); err == nil {
		t.Fatal("expected missing header error")
	}
}

func TestHeaderOnlyMissingT(t *testing.T) {
	in := header() // 8 bytes, nothing after
	var out bytes.Buffer
	d := disassembler.New(bytes.NewReader(in), &out, nil)
	err := d.Run()
	if err == nil {
		t.Fatal("expected missing T error")
	}
	if !strings.Contains(err.Error(), "missing T") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestSizeMismatch(t *testing.T) {
	in := append(header(), 0x42, 0x00, 0x00, 0x00, 0xFF)
	var out bytes.Buffer
	d := disassembler.New(bytes.NewReader(in), &out, nil)
	if err := d.Run(); err == nil {
		t.Fatal("expected size mismatch / unexpected EOF error")
	}
}
