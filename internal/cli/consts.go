package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/bondgen/internal/codegen"
	"github.com/roach88/bondgen/internal/schema"
)

// ConstsOptions holds flags for the consts command.
type ConstsOptions struct {
	*RootOptions
	targetFlags
}

// ConstsResult is the payload of the consts command.
type ConstsResult struct {
	Target   string `json:"target"`
	Source   string `json:"source"`
	Artifact string `json:"artifact"`
	Tags     int    `json:"tags"`
}

// NewConstsCommand creates the consts command.
func NewConstsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConstsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "consts",
		Short: "Write only the shared wire constants artifact",
		Long: `Render the wire constants document into the shared artifact every
generated writer and reader refers to (BondConstTypes.hpp for cpp,
bond_const.go for go).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsts(opts, cmd)
		},
	}

	opts.register(cmd)

	return cmd
}

func runConsts(opts *ConstsOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := opts.resolve(cmd, opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	consts, err := schema.LoadConstants(cfg.Constants)
	if err != nil {
		return formatter.fail(ExitCommandError, errorCode(err), err.Error())
	}

	target := newTarget(cfg)
	art, err := target.Constants(consts)
	if err != nil {
		return formatter.fail(ExitCommandError, errorCode(err), err.Error())
	}
	if err := codegen.WriteArtifacts(cfg.Output, []codegen.Artifact{art}); err != nil {
		return formatter.fail(ExitCommandError, ErrCodeWriteFailed, err.Error())
	}

	tags := 0
	for _, en := range consts.Enums {
		tags += len(en.Constants)
	}
	opts.logger().Info("constants written",
		zap.String("target", target.Name()),
		zap.String("artifact", art.Name),
		zap.String("digest", consts.Digest))

	result := ConstsResult{
		Target:   target.Name(),
		Source:   consts.Path,
		Artifact: filepath.Join(cfg.Output, art.Name),
		Tags:     tags,
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %s → %s (%d constants)\n", result.Source, result.Artifact, result.Tags)
	return nil
}
