// Package loader provides loading of instruction traces for the Tomasulo
// core.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sarchlab/tomasim/insts"
)

// DefaultBasePC is the program counter assigned to the first record added
// through Add.
const DefaultBasePC = 0x400000

// Trace is an in-memory instruction trace. Records are indexed in program
// order starting at 0.
type Trace struct {
	records []*insts.Instruction
}

// NewTrace creates an empty trace.
func NewTrace() *Trace {
	return &Trace{}
}

// Len returns the number of records in the trace.
func (t *Trace) Len() int {
	return len(t.records)
}

// Instruction returns the record at index i, or nil past the end of the
// trace.
func (t *Trace) Instruction(i int) *insts.Instruction {
	if i < 0 || i >= len(t.records) {
		return nil
	}
	return t.records[i]
}

// Instructions returns all records in program order.
func (t *Trace) Instructions() []*insts.Instruction {
	return t.records
}

// Append adds a record to the end of the trace and assigns its
// program-order index.
func (t *Trace) Append(inst *insts.Instruction) *insts.Instruction {
	inst.Index = uint64(len(t.records))
	t.records = append(t.records, inst)
	return inst
}

// Add appends a record of the given class. The PC advances by 4 per record.
func (t *Trace) Add(class insts.Class, in []uint8, out []uint8) *insts.Instruction {
	inst := &insts.Instruction{
		Class: class,
		PC:    DefaultBasePC + 4*uint64(len(t.records)),
	}
	copy(inst.In[:], in)
	copy(inst.Out[:], out)
	return t.Append(inst)
}

// CountClass returns the number of records of the given class.
func (t *Trace) CountClass(class insts.Class) int {
	n := 0
	for _, r := range t.records {
		if r.Class == class {
			n++
		}
	}
	return n
}

// Parse reads a textual trace. Blank lines and lines starting with '#' are
// ignored; trailing '#' comments are stripped.
func Parse(r io.Reader) (*Trace, error) {
	decoder := insts.NewDecoder()
	t := NewTrace()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		inst, err := decoder.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		t.Append(inst)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	return t, nil
}

// Load reads a textual trace from a file.
func Load(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return t, nil
}
