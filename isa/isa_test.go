package isa_test

import (
	"testing"

	"github.com/nwscript-tools/ncs/isa"
)

// Invariant: every operand width in the table is 1, 2, or 4 bytes, except
// String which is variable (width 0, driven by a preceding Size).
func TestOperandWidthsAreSupported(t *testing.T) {
	for _, op := range isa.Opcodes {
		if op == nil {
			continue
		}
		for typeByte, operands := range op.Operands {
			for idx, o := range operands {
				if o.Kind == isa.KindString {
					continue
				}
				switch o.Width {
				case 1, 2, 4:
					// ok
				default:
					t.Errorf("opcode %s type 0x%02X operand %d: unsupported width %d", op.Mnemonic, typeByte, idx, o.Width)
				}
			}
		}
	}
}

// Invariant: every String operand is immediately preceded by a Size operand.
func TestStringIsPrecededBySize(t *testing.T) {
	for _, op := range isa.Opcodes {
		if op == nil {
			continue
		}
		for typeByte, operands := range op.Operands {
			for idx, o := range operands {
				if o.Kind != isa.KindString {
					continue
				}
				if idx == 0 || operands[idx-1].Kind != isa.KindSize {
					t.Errorf("opcode %s type 0x%02X: String at %d not preceded by Size", op.Mnemonic, typeByte, idx)
				}
			}
		}
	}
}

// Invariant: T is 0x42, has no type byte, and carries exactly one Size(4).
func TestTOpcodeShape(t *testing.T) {
	tOp := isa.Opcodes[isa.TOpcode]
	if tOp == nil {
		t.Fatal("T opcode missing from table")
	}
	if tOp.Mnemonic != "T" {
		t.Fatalf("expected mnemonic T, got %s", tOp.Mnemonic)
	}
	if tOp.Types != nil {
		t.Fatalf("T must have no legal-types set, got %v", tOp.Types)
	}
	operands := tOp.OperandsFor(0x00)
	if len(operands) != 1 || operands[0].Kind != isa.KindSize || operands[0].Width != 4 {
		t.Fatalf("T must carry exactly one Size(4) operand, got %v", operands)
	}
}

func TestHasType(t *testing.T) {
	add := isa.Opcodes[0x14]
	if add == nil {
		t.Fatal("ADD opcode missing")
	}
	if !add.HasType(0x20) {
		t.Error("ADD should accept type 0x20 (II)")
	}
	if add.HasType(0xFF) {
		t.Error("ADD should not accept type 0xFF")
	}
}

func TestMnemonicFieldSingleType(t *testing.T) {
	action := isa.Opcodes[0x05]
	if got := isa.MnemonicField(action, 0x00); got != "ACTION" {
		t.Errorf("single-type opcode should render bare mnemonic, got %q", got)
	}
}

func TestMnemonicFieldMultiTypeAbbreviated(t *testing.T) {
	rsadd := isa.Opcodes[0x02]
	if got := isa.MnemonicField(rsadd, 0x03); got != "RSADDI" {
		t.Errorf("expected RSADDI, got %q", got)
	}
}

func TestMnemonicFieldMultiTypeNoAbbreviation(t *testing.T) {
	rsadd := isa.Opcodes[0x02]
	if got := isa.MnemonicField(rsadd, 0x13); got != "RSADD0x13" {
		t.Errorf("expected RSADD0x13, got %q", got)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	for _, width := range []int{1, 2, 4} {
		want := uint64(0xABCD & ((1 << (uint(width) * 8)) - 1))
		b, err := isa.EncodeUint(want, width)
		if err != nil {
			t.Fatalf("width %d: %v", width, err)
		}
		if len(b) != width {
			t.Fatalf("width %d: got %d bytes", width, len(b))
		}
		v, err := isa.DecodeUint(b)
		if err != nil {
			t.Fatalf("width %d decode: %v", width, err)
		}
		if v != want {
			t.Fatalf("width %d: decoded 0x%X, want 0x%X", width, v, want)
		}
	}
	if _, err := isa.DecodeUint(make([]byte, 3)); err == nil {
		t.Error("expected DataError for unsupported width 3")
	}
}

func TestFloatCodecRoundTrip(t *testing.T) {
	raw := isa.EncodeFloat32(3.5)
	v, err := isa.DecodeFloat32(raw)
	if err != nil {
		t.Fatal(err)
	}
	if v != 3.5 {
		t.Fatalf("expected 3.5, got %v", v)
	}
}
