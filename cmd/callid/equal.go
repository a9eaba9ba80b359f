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
	"errors"

	"github.com/spf13/cobra"
)

var errDifferent = errors.New("identities differ")

func newEqualCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "equal A B",
		Short: "Report whether two callables share one identity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			can, err := opts.canonicalizer(cmd.Context())
			if err != nil {
				return err
			}
			same, err := can.Equal(args[0], args[1])
			if err != nil {
				return err
			}
			pal, err := newPalette(opts.color, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if !same {
				pal.warn.Fprintln(cmd.OutOrStdout(), "different")
				return errDifferent
			}
			pal.ok.Fprintln(cmd.OutOrStdout(), "equal")
			return nil
		},
	}
}
