/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"

	"dirpx.dev/callid/callable"
)

type canonResult struct {
	input string
	id    callable.Identity
	err   error
}

func newCanonCmd(opts *options) *cobra.Command {
	var (
		format string
		jobs   int
	)
	cmd := &cobra.Command{
		Use:   "canon [spec...]",
		Short: "Print the canonical identity of each callable",
		Long: `Canonicalize each argument, or each non-empty line of standard input
when no arguments are given. Results are printed in input order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "msgpack" {
				return fmt.Errorf("invalid --format %q (want text or msgpack)", format)
			}
			inputs := args
			if len(inputs) == 0 {
				var err error
				if inputs, err = readSpecs(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			can, err := opts.canonicalizer(cmd.Context())
			if err != nil {
				return err
			}
			results := canonAll(can, inputs, jobs)

			pal, err := newPalette(opts.color, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			failed := 0
			enc := msgpack.NewEncoder(cmd.OutOrStdout())
			for _, r := range results {
				if r.err != nil {
					failed++
					pal.fail.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.input, r.err)
					continue
				}
				if format == "msgpack" {
					if err := enc.Encode(r.id); err != nil {
						return err
					}
					continue
				}
				pal.ok.Fprintln(cmd.OutOrStdout(), r.id.String())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d callables failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (text|msgpack)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "maximum concurrent canonicalizations")
	return cmd
}

// canonAll canonicalizes inputs with at most jobs goroutines. Results keep
// input order.
func canonAll(can *callable.Canonicalizer, inputs []string, jobs int) []canonResult {
	results := make([]canonResult, len(inputs))
	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, in := range inputs {
		g.Go(func() error {
			id, err := can.Canonicalize(in)
			results[i] = canonResult{input: in, id: id, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// readSpecs returns the trimmed non-empty lines of r. Lines have no length
// limit.
func readSpecs(r io.Reader) ([]string, error) {
	var out []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
