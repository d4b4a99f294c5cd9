package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sarchlab/mipsim/translate"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <image>",
		Short: "Run a program image to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := prepare(cmd, opts, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			runErr := s.emulator.Run()

			printer := translate.New(out)
			writeSummary(printer, s, runErr)
			_, _ = io.WriteString(out, registerTree(s.emulator.RegFile(), colorEnabled(out)))

			return runErr
		},
	}
}

// colorEnabled reports whether w is an interactive terminal.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeSummary prints the outcome of a run with locale-aware counts.
func writeSummary(p *translate.Printer, s *session, runErr error) {
	e := s.emulator

	p.Printf("Program: %s\n", s.path)
	p.Printf("Format: %s\n", s.program.Format)
	p.Printf("Instructions executed: %d\n", e.InstructionCount())
	p.Printf("Invalid opcodes: %d\n", e.InvalidCount())
	p.Printf("Final PC: 0x%08X\n", e.PC())
	if runErr != nil {
		p.Printf("Stopped: %v\n", runErr)
	}
}
