package insts

import (
	"fmt"
	"strconv"
	"strings"
)

// Decoder decodes textual trace records into instructions.
type Decoder struct{}

// NewDecoder creates a new trace record decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// ParseClass maps a trace mnemonic to its operation class.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(s) {
	case "icomp":
		return ClassICOMP, nil
	case "fcomp":
		return ClassFCOMP, nil
	case "load":
		return ClassLOAD, nil
	case "store":
		return ClassSTORE, nil
	case "cbranch":
		return ClassCBRANCH, nil
	case "ubranch":
		return ClassUBRANCH, nil
	case "trap":
		return ClassTRAP, nil
	default:
		return ClassUnknown, fmt.Errorf("unknown operation class %q", s)
	}
}

// Decode decodes one record of the form
//
//	<class> <pc> [in=<r>[,<r>[,<r>]]] [out=<r>[,<r>]]
//
// The program-order index is left at zero; the caller assigns it.
func (d *Decoder) Decode(line string) (*Instruction, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, fmt.Errorf("expected class and pc, got %q", line)
	}

	class, err := ParseClass(fields[0])
	if err != nil {
		return nil, err
	}

	pc, err := strconv.ParseUint(fields[1], 0, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid pc %q: %w", fields[1], err)
	}

	inst := &Instruction{Class: class, PC: pc}

	for _, f := range fields[2:] {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("malformed operand list %q", f)
		}

		switch key {
		case "in":
			err = d.decodeRegs(value, inst.In[:])
		case "out":
			err = d.decodeRegs(value, inst.Out[:])
		default:
			err = fmt.Errorf("unknown operand list %q", key)
		}

		if err != nil {
			return nil, err
		}
	}

	return inst, nil
}

func (d *Decoder) decodeRegs(list string, dst []uint8) error {
	if list == "" {
		return nil
	}

	regs := strings.Split(list, ",")
	if len(regs) > len(dst) {
		return fmt.Errorf("too many registers in %q (max %d)", list, len(dst))
	}

	for i, r := range regs {
		v, err := strconv.ParseUint(r, 10, 8)
		if err != nil {
			return fmt.Errorf("invalid register %q: %w", r, err)
		}
		if v >= NumRegs {
			return fmt.Errorf("register %d out of range (max %d)", v, NumRegs-1)
		}
		dst[i] = uint8(v)
	}

	return nil
}
