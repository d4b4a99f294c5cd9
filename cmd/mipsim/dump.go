package main

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/sarchlab/mipsim/emu"
	"github.com/sarchlab/mipsim/insts"
)

const (
	colorReset = "\033[0m"
	colorName  = "\033[1;34m"
	colorValue = "\033[1;32m"
)

// registerTree renders the architectural state as a tree: control registers
// first, then the accumulator, then the general-purpose registers. Zero
// general-purpose registers are omitted.
func registerTree(rf *emu.RegFile, color bool) string {
	paint := func(c, s string) string {
		if !color {
			return s
		}
		return c + s + colorReset
	}
	entry := func(name string, value uint32) string {
		return fmt.Sprintf("%s = %s", paint(colorName, name), paint(colorValue, fmt.Sprintf("0x%08X", value)))
	}

	tree := treeprint.New()
	tree.SetValue("registers")

	tree.AddNode(entry("pc", rf.PC))
	tree.AddNode(entry("pb", rf.PB))

	acc := tree.AddBranch("acc")
	acc.AddNode(entry("hi", rf.AccHi))
	acc.AddNode(entry("lo", rf.AccLo))

	gpr := tree.AddBranch("gpr")
	for i := uint8(0); i < insts.RegisterCount; i++ {
		if v := rf.ReadReg(i); v != 0 {
			gpr.AddNode(entry(fmt.Sprintf("r%d", i), v))
		}
	}

	return tree.String()
}
