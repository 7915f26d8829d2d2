package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/roach88/bondgen/pkg/compactbinary"
)

// DumpResult is the JSON payload of the dump command.
type DumpResult struct {
	Input string `json:"input"`
	Bytes int    `json:"bytes"`
	Text  string `json:"text"`
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <payload|->",
		Short: "Print a Compact Binary payload without its schema",
		Long: `Decode a Compact Binary v1 payload holding one struct and print its
fields by id and wire type. Use - to read the payload from stdin.

On malformed input everything decoded up to the failure is printed before
the error.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runDump(opts *RootOptions, input string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	var (
		data []byte
		err  error
	)
	if input == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return formatter.fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("reading payload: %v", err))
	}

	var text bytes.Buffer
	dumpErr := compactbinary.Dump(&text, data)

	if formatter.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: DumpResult{Input: input, Bytes: len(data), Text: text.String()}}
		if dumpErr != nil {
			resp.Status = "error"
			resp.Error = &CLIError{Code: ErrCodePayload, Message: dumpErr.Error()}
		}
		if err := formatter.encode(resp); err != nil {
			return err
		}
	} else {
		if _, err := formatter.Writer.Write(text.Bytes()); err != nil {
			return err
		}
		if dumpErr != nil {
			if err := formatter.Error(ErrCodePayload, dumpErr.Error(), nil); err != nil {
				dumpErr = multierr.Append(dumpErr, err)
			}
		}
	}

	if dumpErr != nil {
		return WrapExitError(ExitFailure, ErrCodePayload+": malformed payload", dumpErr)
	}
	return nil
}
