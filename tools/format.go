package tools

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lbrn/x64asm/parser"
	"github.com/lbrn/x64asm/register"
)

// FormatStyle defines formatting options.
type FormatStyle int

const (
	FormatDefault  FormatStyle = iota // Standard formatting
	FormatCompact                     // Minimal whitespace
	FormatExpanded                    // Extra whitespace for readability
)

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	Style             FormatStyle
	InstructionColumn int  // Column for the mnemonic
	OperandColumn     int  // Column for the operand list
	AlignOperands     bool // Align operands in columns
	TabWidth          int  // Tab width used when rendering error-context lines elsewhere; formatter uses spaces regardless
}

// DefaultFormatOptions returns default formatter options.
func DefaultFormatOptions() *FormatOptions {
	return &FormatOptions{
		Style:             FormatDefault,
		InstructionColumn: 8,
		OperandColumn:     16,
		AlignOperands:     true,
		TabWidth:          4,
	}
}

// CompactFormatOptions returns options for compact formatting.
func CompactFormatOptions() *FormatOptions {
	opts := DefaultFormatOptions()
	opts.Style = FormatCompact
	opts.InstructionColumn = 0
	opts.OperandColumn = 0
	opts.AlignOperands = false
	return opts
}

// ExpandedFormatOptions returns options for expanded formatting.
func ExpandedFormatOptions() *FormatOptions {
	opts := DefaultFormatOptions()
	opts.Style = FormatExpanded
	opts.InstructionColumn = 12
	opts.OperandColumn = 28
	return opts
}

// Formatter renders a parsed Program's instruction stream back to
// canonical AT&T-syntax assembly text: one mnemonic+suffix per line,
// operands comma-separated, columns aligned per FormatOptions. It works
// from the parsed Instruction model, not from the original source text,
// so comments and directive layout are not round-tripped -- only the
// code a Program actually carries.
type Formatter struct {
	options *FormatOptions
	output  strings.Builder
}

// NewFormatter creates a new formatter.
func NewFormatter(options *FormatOptions) *Formatter {
	if options == nil {
		options = DefaultFormatOptions()
	}
	return &Formatter{options: options}
}

// Format parses input and renders its .text code stream and any
// .driver/.handler blocks as canonical assembly text.
func (f *Formatter) Format(input, filename string) (string, error) {
	p := parser.NewParser(input, filename)
	prog, errs := p.Parse()
	if errs.HasErrors() {
		return "", fmt.Errorf("refusing to format source with parse errors: %s", errs.Errors[0].Message)
	}

	f.output.Reset()
	f.output.WriteString(".text\n")
	for _, insn := range prog.Code {
		f.formatInstruction(&insn)
	}

	for _, key := range parser.SortedDriverKeys(prog.Drivers) {
		if _, err := strconv.Atoi(key); err == nil {
			f.output.WriteString(fmt.Sprintf(".driver %s\n", key))
		} else {
			f.output.WriteString(fmt.Sprintf(".handler %s\n", key))
		}
		for _, insn := range prog.Drivers[key] {
			f.formatInstruction(&insn)
		}
	}

	f.output.WriteString(".end\n")
	return f.output.String(), nil
}

// formatInstruction renders one Instruction as a single assembly line.
func (f *Formatter) formatInstruction(insn *parser.Instruction) {
	line := strings.Builder{}
	f.padToColumn(&line, f.options.InstructionColumn)
	line.WriteString(f.mnemonicText(insn))

	operands := f.operandsText(insn)
	if operands != "" {
		if f.options.Style != FormatCompact && f.options.AlignOperands {
			f.padToColumn(&line, f.options.OperandColumn)
		} else {
			line.WriteString(" ")
		}
		line.WriteString(operands)
	}

	f.output.WriteString(line.String())
	f.output.WriteString("\n")
}

// mnemonicText reconstructs the mnemonic with its size suffix from the
// operand widths a bare mnemonic alone cannot carry.
func (f *Formatter) mnemonicText(insn *parser.Instruction) string {
	suffix := ""
	switch insn.Class {
	case 1, 2:
		w := insn.Dst.SizeBytes()
		if w == 0 {
			w = insn.Src.SizeBytes()
		}
		if w == 0 {
			w = insn.SizeHint
		}
		suffix = suffixForSize(w)
	case 3:
		suffix = suffixForSize(insn.Dst.SizeBytes())
	case 5:
		if insn.Target != nil {
			suffix = suffixForSize(insn.Target.SizeBytes())
		}
	case 6:
		suffix = suffixForSize(insn.SizeHint)
	case 7:
		suffix = suffixForSize(insn.Size)
	}
	return insn.Mnemonic + suffix
}

func suffixForSize(bytes int) string {
	switch bytes {
	case 1:
		return "b"
	case 2:
		return "w"
	case 4:
		return "l"
	case 8:
		return "q"
	default:
		return ""
	}
}

func (f *Formatter) operandsText(insn *parser.Instruction) string {
	var parts []string
	switch insn.Class {
	case 0:
		if insn.InterruptNumber >= 0 {
			parts = append(parts, strconv.Itoa(insn.InterruptNumber))
		}
	case 1, 2:
		if insn.Mnemonic == "push" || insn.Mnemonic == "pop" || insn.Mnemonic == "neg" || insn.Mnemonic == "not" {
			parts = append(parts, f.operandText(insn.Dst))
		} else if insn.SizeHint <= 0 {
			parts = append(parts, f.operandText(insn.Src), f.operandText(insn.Dst))
		}
	case 3:
		if insn.Count >= 0 {
			parts = append(parts, "$"+strconv.Itoa(insn.Count))
		}
		parts = append(parts, f.operandText(insn.Dst))
	case 5, 6:
		if insn.Target != nil {
			text := f.operandText(*insn.Target)
			if insn.Target.Kind == parser.OperandRegister {
				text = "*" + text
			}
			parts = append(parts, text)
		}
	case 7:
		if insn.Src.Kind == parser.OperandRegister {
			parts = append(parts, f.operandText(insn.Src), f.operandText(insn.Dst))
		}
	}
	return strings.Join(parts, ", ")
}

func (f *Formatter) operandText(op parser.Operand) string {
	switch op.Kind {
	case parser.OperandImmediate:
		return "$" + strconv.FormatInt(op.Immediate, 10)
	case parser.OperandRegister:
		return "%" + register.Name(op.RegID, op.RegSize)
	case parser.OperandMemory:
		return f.memoryText(op.Mem)
	default:
		return ""
	}
}

func (f *Formatter) memoryText(m parser.Memory) string {
	var sb strings.Builder
	if m.HasDisplacement {
		sb.WriteString(strconv.FormatInt(int64(m.Displacement), 10))
	}
	if m.HasBase || m.HasIndex {
		sb.WriteString("(")
		if m.HasBase {
			sb.WriteString("%" + register.Name(m.BaseID, m.BaseSize))
		}
		if m.HasIndex {
			sb.WriteString(",%" + register.Name(m.IndexID, m.IndexSize))
			if m.HasScale {
				sb.WriteString("," + strconv.Itoa(m.Scale))
			}
		}
		sb.WriteString(")")
	}
	return sb.String()
}

// padToColumn pads the string builder to the specified column.
func (f *Formatter) padToColumn(sb *strings.Builder, column int) {
	current := sb.Len()
	if current < column {
		sb.WriteString(strings.Repeat(" ", column-current))
	} else if current > column {
		sb.WriteString(" ")
	}
}

// FormatString is a convenience function to format a string with default options.
func FormatString(input, filename string) (string, error) {
	formatter := NewFormatter(DefaultFormatOptions())
	return formatter.Format(input, filename)
}

// FormatStringWithStyle formats a string with the specified style.
func FormatStringWithStyle(input, filename string, style FormatStyle) (string, error) {
	var options *FormatOptions
	switch style {
	case FormatCompact:
		options = CompactFormatOptions()
	case FormatExpanded:
		options = ExpandedFormatOptions()
	default:
		options = DefaultFormatOptions()
	}
	formatter := NewFormatter(options)
	return formatter.Format(input, filename)
}
