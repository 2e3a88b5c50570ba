package maincmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"
	"gopkg.in/yaml.v3"

	"github.com/mna/unacs/lang/loader"
	"github.com/mna/unacs/lang/object"
	"github.com/mna/unacs/lang/opcode"
)

// instRecord is one disassembled instruction, in the shape the -a dump
// prints as text or (with --format=yaml) marshals with yaml.v3.
type instRecord struct {
	Pos  int     `yaml:"pos"`
	Op   string  `yaml:"op"`
	Args []int32 `yaml:"args,omitempty"`
}

type bodyRecord struct {
	Name  string       `yaml:"name"`
	Insts []instRecord `yaml:"instructions"`
}

type dumpDoc struct {
	Variant   string       `yaml:"variant"`
	Scripts   []bodyRecord `yaml:"scripts"`
	Functions []bodyRecord `yaml:"functions"`
}

func disassembleBody(head *object.Instruction) []instRecord {
	var out []instRecord
	for i := head; i != nil && !i.IsSentinel(); i = i.Next {
		name := fmt.Sprintf("opcode(%d)", int(i.Op))
		if info, ok := opcode.Get(i.Op); ok {
			name = info.Name
		}
		out = append(out, instRecord{Pos: i.Pos, Op: name, Args: i.Args})
	}
	return out
}

func scriptName(sc *object.Script) string {
	if sc.Name != "" {
		return sc.Name
	}
	return fmt.Sprintf("%d", sc.Number)
}

// DisassembleFile loads inFile and dumps its decoded instruction stream to
// outFile (or stdio.Stdout), in plain text or as a YAML document.
func DisassembleFile(ctx context.Context, stdio mainer.Stdio, inFile, outFile, format string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(inFile)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	c, diags, fatal := loader.Load(inFile, data)
	if fatal != nil {
		fmt.Fprintln(stdio.Stderr, fatal.Error())
		return fatal
	}
	printDiags(stdio, diags)

	doc := dumpDoc{Variant: c.Variant.String()}
	for _, sc := range c.Scripts.Items() {
		doc.Scripts = append(doc.Scripts, bodyRecord{Name: scriptName(sc), Insts: disassembleBody(sc.BodyStart)})
	}
	for _, fn := range c.Functions.Items() {
		if fn.Kind != object.FuncUser {
			continue
		}
		doc.Functions = append(doc.Functions, bodyRecord{Name: fmt.Sprintf("func%d", fn.Index), Insts: disassembleBody(fn.BodyStart)})
	}

	out := stdio.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
		defer f.Close()
		out = f
	}

	if format == "yaml" {
		err = writeYAML(out, doc)
	} else {
		writeText(out, doc)
	}
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	c.Release()
	return nil
}

func writeYAML(w io.Writer, doc dumpDoc) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}

func writeText(w io.Writer, doc dumpDoc) {
	fmt.Fprintf(w, "; variant: %s\n", doc.Variant)
	for _, b := range doc.Scripts {
		fmt.Fprintf(w, "script %s:\n", b.Name)
		writeTextBody(w, b.Insts)
	}
	for _, b := range doc.Functions {
		fmt.Fprintf(w, "function %s:\n", b.Name)
		writeTextBody(w, b.Insts)
	}
}

func writeTextBody(w io.Writer, insts []instRecord) {
	for _, i := range insts {
		fmt.Fprintf(w, "  0x%06x: %s", i.Pos, i.Op)
		for _, a := range i.Args {
			fmt.Fprintf(w, " %d", a)
		}
		fmt.Fprintln(w)
	}
}
