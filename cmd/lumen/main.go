// Copyright 2024 The lumen authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lumen runs the lumen interpreter: either a single -e
// expression, a list of source files, or a REPL-less pipe from stdin.
// It is a thin external collaborator over the public Machine API
// (spec.md §6.1) and contains no interpreter logic of its own.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/brjones/lumen"
	"github.com/spf13/cobra"
)

func main() {
	var (
		evalExpr   string
		noPrelude  bool
	)

	rootCmd := &cobra.Command{
		Use:   "lumen [file ...]",
		Short: "lumen evaluates Lisp-family source files",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetFlags(0)
			log.SetPrefix("lumen: ")

			var m *lumen.Machine
			if noPrelude {
				m = lumen.NewWithoutPrelude()
			} else {
				m = lumen.New()
			}

			if evalExpr != "" {
				return runAndReport(m, func() (lumen.Value, error) {
					return m.EvalString(evalExpr)
				})
			}

			if len(args) == 0 {
				src, err := io.ReadAll(bufio.NewReader(os.Stdin))
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				return runAndReport(m, func() (lumen.Value, error) {
					return m.EvalString(string(src))
				})
			}

			for _, path := range args {
				if err := runAndReport(m, func() (lumen.Value, error) {
					return m.EvalFile(path)
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate a source string instead of reading files")
	rootCmd.Flags().BoolVar(&noPrelude, "no-prelude", false, "skip loading the standard prelude")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// runAndReport runs eval and, on an unhandled raised error, reports it
// and exits non-zero per spec.md §6.1 instead of returning the error
// up through cobra (which would print it a second time with usage
// text attached).
func runAndReport(m *lumen.Machine, eval func() (lumen.Value, error)) error {
	_, err := eval()
	if err != nil {
		lumen.ReportFatal(err)
	}
	return nil
}
