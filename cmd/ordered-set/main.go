// Command ordered-set answers ordered-set query batches read from stdin.
//
// Usage:
//
//	ordered-set < queries.txt
//	ordered-set --input queries.txt --output answers.txt --log-level debug
//
// See package internal/judge for the input format.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caio/go-ordstat/internal/judge"
	"github.com/spf13/cobra"
)

type options struct {
	input    string
	output   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ordered-set",
		Short: "Answer ordered-set insert/erase/rank/select queries",
		Long: `ordered-set reads "N Q", N initial values and Q queries "t x" and
prints one line per k-th, count, floor and ceiling query.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Read queries from this file instead of stdin.")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write answers to this file instead of stdout.")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error.")

	return cmd
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

func run(ctx context.Context, opts *options, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	logger, err := newLogger(opts.logLevel, stderr)
	if err != nil {
		return err
	}

	in := stdin
	if opts.input != "" {
		f, err := os.Open(opts.input)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	out := stdout
	if opts.output != "" {
		f, createErr := os.Create(opts.output)
		if createErr != nil {
			return fmt.Errorf("creating output: %w", createErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output: %w", cerr)
			}
		}()
		out = f
	}

	logger.Debug("starting", "input", opts.input, "output", opts.output)
	return judge.Run(ctx, in, out, logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ordered-set: %v\n", err)
		stop()
		os.Exit(1)
	}
}
