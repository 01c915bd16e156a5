package disassembler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nwscript-tools/ncs/isa"
	"github.com/nwscript-tools/ncs/routines"
)

const gutter = "     "

// render writes one rendered instruction line per §4.4 Rendering. A Size
// operand immediately preceding a String is suppressed; the string literal
// implies its own length.
func (d *Disassembler) render(inst *isa.Instruction) {
	mnemonic := isa.MnemonicField(inst.Opcode, inst.TypeByteOrZero())
	fmt.Fprintf(d.w, "%-*s", d.longest, mnemonic)

	operands := inst.Operands
	for i := 0; i < len(operands); i++ {
		ov := operands[i]
		if ov.Descriptor.Kind == isa.KindSize && i+1 < len(operands) && operands[i+1].Descriptor.Kind == isa.KindString {
			continue
		}
		fmt.Fprint(d.w, gutter)
		fmt.Fprint(d.w, renderOperand(ov, d.routs))
	}
	fmt.Fprint(d.w, "\n")
}

// renderOperand converts one decoded operand to its textual form per the
// table in spec §3.
func renderOperand(ov isa.OperandValue, routs *routines.Table) string {
	switch ov.Descriptor.Kind {
	case isa.KindRoutine:
		v, _ := isa.DecodeUint(ov.Raw)
		id := uint16(v)
		if r, ok := routs.ByID(id); ok {
			return fmt.Sprintf("%s#0x%X", r.Name, id)
		}
		return fmt.Sprintf("???#0x%X", id)
	case isa.KindObject, isa.KindSize:
		v, _ := isa.DecodeUint(ov.Raw)
		return fmt.Sprintf("0x%0*X", len(ov.Raw)*2, v)
	case isa.KindOffset:
		v, _ := isa.DecodeInt(ov.Raw)
		return "@" + strconv.FormatInt(v, 10)
	case isa.KindInteger, isa.KindArgCount:
		if ov.Descriptor.Kind == isa.KindArgCount {
			v, _ := isa.DecodeUint(ov.Raw)
			return strconv.FormatUint(v, 10)
		}
		v, _ := isa.DecodeInt(ov.Raw)
		return strconv.FormatInt(v, 10)
	case isa.KindFloat:
		v, _ := isa.DecodeFloat32(ov.Raw)
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case isa.KindString:
		return `"` + escapeString(string(ov.Raw)) + `"`
	default:
		return ""
	}
}

func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
