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
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"dirpx.dev/callid"
	"dirpx.dev/callid/callable"
	"dirpx.dev/callid/config"
	"dirpx.dev/callid/internal/ctxlog"
	"dirpx.dev/callid/internal/manifest"
	"dirpx.dev/callid/registry"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	symbols      string
	color        string
	logLevel     string
	invokeMethod string
	unicode      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "callid",
		Short:         "Canonicalize callable identities",
		Long:          `callid turns function names, method references and closure signatures into one canonical textual identity.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel)
			if err != nil {
				return err
			}
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.symbols, "symbols", "", "TOML manifest of loaded classes")
	flags.StringVar(&opts.color, "color", "auto", "colorize output (auto|on|off)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	flags.StringVar(&opts.invokeMethod, "invoke-method", config.DefaultInvokeMethod, "method that makes an object invokable")
	flags.BoolVar(&opts.unicode, "unicode", config.DefaultAllowUnicode, "allow Unicode letters in names")

	root.AddCommand(newCanonCmd(opts))
	root.AddCommand(newEqualCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// canonicalizer configures the global canonicalizer from opts and returns it.
func (o *options) canonicalizer(ctx context.Context) (*callable.Canonicalizer, error) {
	cfg := config.NewConfig(
		config.WithInvokeMethod(o.invokeMethod),
		config.WithAllowUnicode(o.unicode),
	)
	reg := registry.New(cfg)
	if o.symbols != "" {
		classes, err := manifest.Load(o.symbols)
		if err != nil {
			return nil, err
		}
		if err := manifest.Apply(reg, classes); err != nil {
			return nil, err
		}
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("symbols loaded", "path", o.symbols, "classes", reg.Count())

	callid.SetConfig(cfg)
	callid.SetRegistry(reg)
	callid.SetLogger(logger)
	return callid.Canonicalizer(), nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
