package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/sarchlab/mipsim/config"
	"github.com/sarchlab/mipsim/emu"
)

const debugHelp = `Commands:
  step [n]     execute n instructions (default 1)
  run          run until the program break or a fatal error
  regs         show all registers
  acc          show the accumulator
  pc           show the program counter
  mem <addr>   read the word at a byte address
  reset        clear state and rewind to the entry point
  help         show this help
  quit         leave the debugger
`

func newDebugCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "debug <image>",
		Short: "Step through a program image interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := prepare(cmd, opts, args[0])
			if err != nil {
				return err
			}
			return runREPL(cfg, newDebugger(s, cmd.OutOrStdout()))
		},
	}
}

// runREPL reads debugger commands from the terminal until quit or EOF.
func runREPL(cfg *config.Config, d *debugger) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "(mipsim) ",
		HistoryFile: cfg.HistoryFile,
		Stdout:      d.out,
	})
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(d.out, "Loaded %s (%d words). Type 'help' for commands.\n",
		d.s.path, d.s.program.Size())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := d.exec(line)
		if err != nil {
			fmt.Fprintf(d.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// debugger executes REPL commands against a session.
type debugger struct {
	s   *session
	out io.Writer
}

func newDebugger(s *session, out io.Writer) *debugger {
	return &debugger{s: s, out: out}
}

// exec runs one command line. It reports whether the debugger should exit.
func (d *debugger) exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "step", "s":
		return false, d.step(args)
	case "run", "r":
		return false, d.run()
	case "regs":
		fmt.Fprint(d.out, registerTree(d.s.emulator.RegFile(), colorEnabled(d.out)))
	case "acc":
		rf := d.s.emulator.RegFile()
		fmt.Fprintf(d.out, "hi=0x%08X lo=0x%08X (0x%016X)\n", rf.AccHi, rf.AccLo, rf.Acc())
	case "pc":
		fmt.Fprintf(d.out, "pc=0x%08X pb=%d\n", d.s.emulator.PC(), d.s.emulator.ProgramBreak())
	case "mem", "x":
		return false, d.mem(args)
	case "reset":
		d.s.reset()
		fmt.Fprintf(d.out, "reset, pc=0x%08X\n", d.s.emulator.PC())
	case "help", "h", "?":
		fmt.Fprint(d.out, debugHelp)
	case "quit", "q", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q", cmd)
	}

	return false, nil
}

func (d *debugger) step(args []string) error {
	n := uint64(1)
	if len(args) > 0 {
		v, err := strconv.ParseUint(args[0], 0, 64)
		if err != nil || v == 0 {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		n = v
	}

	for ; n > 0; n-- {
		result := d.s.emulator.Step()
		d.printStep(result)
		if result.Fatal() {
			return result.Err
		}
	}

	return nil
}

func (d *debugger) printStep(result emu.StepResult) {
	switch {
	case result.Mnemonic != "":
		fmt.Fprintf(d.out, "0x%08X  %08X  %s\n", result.PC, result.Word, result.Mnemonic)
	case errors.Is(result.Err, emu.ErrInvalidOpcode):
		fmt.Fprintf(d.out, "0x%08X  %08X  <invalid>\n", result.PC, result.Word)
	}
}

func (d *debugger) run() error {
	e := d.s.emulator
	before := e.InstructionCount()
	err := e.Run()
	fmt.Fprintf(d.out, "executed %d instructions, pc=0x%08X\n", e.InstructionCount()-before, e.PC())
	return err
}

func (d *debugger) mem(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: mem <addr>")
	}

	addr, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		return fmt.Errorf("invalid address %q", args[0])
	}

	word, err := d.s.emulator.Bus().Read(uint32(addr))
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "[0x%08X] = 0x%08X\n", addr, word)

	return nil
}
