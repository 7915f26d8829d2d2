package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/roach88/bondgen/internal/cache"
	"github.com/roach88/bondgen/internal/codegen"
	"github.com/roach88/bondgen/internal/schema"
)

// File statuses reported by generate.
const (
	StatusGenerated = "generated"
	StatusUnchanged = "unchanged"
	StatusFailed    = "failed"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	targetFlags

	Cache string
	Force bool
}

// FileResult reports one schema document of a generate run.
type FileResult struct {
	Input     string    `json:"input"`
	Status    string    `json:"status"`
	Artifacts []string  `json:"artifacts,omitempty"`
	Error     *CLIError `json:"error,omitempty"`
}

// GenerateResult is the payload of a generate run.
type GenerateResult struct {
	RunID     string       `json:"run_id"`
	Target    string       `json:"target"`
	Output    string       `json:"output"`
	Constants string       `json:"constants"`
	Files     []FileResult `json:"files"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate [schema...]",
		Short: "Generate types, writers and readers from schema documents",
		Long: `Generate value types, Compact Binary writers and readers for every schema
document, plus the shared wire constants artifact.

Each document is processed independently: a defective document is reported
and the remaining documents are still generated. Artifacts are replaced
atomically, so a failed document never leaves partial files behind.

With --cache, documents whose input, constants and options are unchanged and
whose artifacts are still intact on disk are skipped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args, cmd)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.Cache, "cache", "", "generation manifest (sqlite); enables skipping unchanged inputs")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "regenerate even when the manifest says the output is current")

	return cmd
}

func runGenerate(opts *GenerateOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := opts.resolve(cmd, opts.RootOptions, formatter)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("cache") {
		cfg.Cache = opts.Cache
	}
	if len(args) > 0 {
		cfg.Inputs = args
	}
	inputs, err := ExpandInputs(cfg.Inputs)
	if err != nil {
		return failInput(formatter, err)
	}

	// The constants document is shared by every input; failing to load it
	// ends the run before any file is touched.
	consts, err := schema.LoadConstants(cfg.Constants)
	if err != nil {
		return formatter.fail(ExitCommandError, errorCode(err), err.Error())
	}

	target := newTarget(cfg)
	constArt, err := target.Constants(consts)
	if err != nil {
		return formatter.fail(ExitCommandError, errorCode(err), err.Error())
	}
	if err := codegen.WriteArtifacts(cfg.Output, []codegen.Artifact{constArt}); err != nil {
		return formatter.fail(ExitCommandError, ErrCodeWriteFailed, err.Error())
	}

	g := &generator{
		target:  target,
		consts:  consts,
		output:  cfg.Output,
		options: targetOptions(cfg),
		force:   opts.Force,
	}
	if cfg.Cache != "" {
		g.manifest, err = cache.Open(cfg.Cache)
		if err != nil {
			return formatter.fail(ExitCommandError, ErrCodeCache, err.Error())
		}
		defer g.manifest.Close()
		g.runID = g.manifest.NewRunID()
	} else {
		g.runID = cache.UUIDv7RunIDs{}.NewRunID()
	}
	g.log = opts.logger().With(zap.String("run_id", g.runID), zap.String("target", target.Name()))
	g.log.Debug("constants written", zap.String("artifact", constArt.Name), zap.String("source", consts.Path))

	result := GenerateResult{
		RunID:     g.runID,
		Target:    target.Name(),
		Output:    cfg.Output,
		Constants: constArt.Name,
	}

	ctx := cmd.Context()
	var errs error
	for _, input := range inputs {
		// Cancellation stops before the next document; finished documents
		// keep their artifacts.
		if ctx.Err() != nil {
			errs = multierr.Append(errs, ctx.Err())
			break
		}
		fr, err := g.file(ctx, input)
		result.Files = append(result.Files, fr)
		errs = multierr.Append(errs, err)
	}

	return outputGenerate(formatter, result, errs)
}

// generator renders documents for one run.
type generator struct {
	target   codegen.Target
	consts   *schema.Constants
	output   string
	options  string
	force    bool
	manifest *cache.Cache
	runID    string
	log      *zap.Logger
}

func (g *generator) file(ctx context.Context, input string) (FileResult, error) {
	fr := FileResult{Input: input}
	log := g.log.With(zap.String("input", input))

	fail := func(err error) (FileResult, error) {
		fr.Status = StatusFailed
		fr.Error = newCLIError(err)
		log.Error("generation failed", zap.String("code", fr.Error.Code), zap.Error(err))
		return fr, fmt.Errorf("%s: %w", input, err)
	}

	s, err := schema.Load(input)
	if err != nil {
		return fail(err)
	}

	key, err := g.key(input)
	if err != nil {
		return fail(err)
	}
	fp := cache.Fingerprint{
		InputDigest:     s.Digest,
		ConstantsDigest: g.consts.Digest,
		Options:         g.options,
		ToolVersion:     codegen.Version,
	}

	if g.manifest != nil && !g.force {
		fresh, err := g.manifest.Fresh(ctx, key, fp)
		if err != nil {
			return fail(err)
		}
		if fresh {
			fr.Status = StatusUnchanged
			log.Debug("output is current, skipping")
			return fr, nil
		}
	}

	arts, err := codegen.Generate(s, g.target)
	if err != nil {
		return fail(err)
	}
	if err := codegen.WriteArtifacts(g.output, arts); err != nil {
		return fail(err)
	}

	gen := cache.Generation{Key: key, Fingerprint: fp, RunID: g.runID}
	for _, a := range arts {
		fr.Artifacts = append(fr.Artifacts, a.Name)
		gen.Artifacts = append(gen.Artifacts, cache.Artifact{Name: a.Name, Digest: cache.Digest(a.Content)})
	}
	if g.manifest != nil {
		if err := g.manifest.Record(ctx, gen); err != nil {
			return fail(err)
		}
	}

	fr.Status = StatusGenerated
	log.Info("generated",
		zap.Strings("artifacts", fr.Artifacts),
		zap.Int("declarations", len(s.Declarations)))
	return fr, nil
}

// key uses absolute paths so the manifest does not depend on the working
// directory of the run that recorded it.
func (g *generator) key(input string) (cache.Key, error) {
	in, err := filepath.Abs(input)
	if err != nil {
		return cache.Key{}, err
	}
	out, err := filepath.Abs(g.output)
	if err != nil {
		return cache.Key{}, err
	}
	return cache.Key{Input: in, Target: g.target.Name(), OutputDir: out}, nil
}

func outputGenerate(formatter *OutputFormatter, result GenerateResult, errs error) error {
	failed := len(multierr.Errors(errs))

	if formatter.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: result, RunID: result.RunID}
		if errs != nil {
			resp.Status = "error"
			resp.Error = newCLIError(multierr.Errors(errs)[0])
		}
		if err := formatter.encode(resp); err != nil {
			return err
		}
	} else {
		writeGenerateText(formatter, result)
	}

	if errs != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("%d of %d schema document(s) failed", failed, len(result.Files)), errs)
	}
	return nil
}

func writeGenerateText(formatter *OutputFormatter, result GenerateResult) {
	w := formatter.Writer
	counts := map[string]int{}
	for _, fr := range result.Files {
		counts[fr.Status]++
		switch fr.Status {
		case StatusGenerated:
			fmt.Fprintf(w, "✓ %s → %s\n", fr.Input, strings.Join(fr.Artifacts, ", "))
		case StatusUnchanged:
			fmt.Fprintf(w, "- %s (unchanged)\n", fr.Input)
		case StatusFailed:
			fmt.Fprintf(w, "✗ %s\n  %s: %s\n", fr.Input, fr.Error.Code, fr.Error.Message)
		}
	}

	fmt.Fprintf(w, "\n%d generated, %d unchanged, %d failed (%s → %s, constants %s)\n",
		counts[StatusGenerated], counts[StatusUnchanged], counts[StatusFailed],
		result.Target, result.Output, result.Constants)
}

func failInput(formatter *OutputFormatter, err error) error {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return formatter.fail(ExitCommandError, inputErr.Code, inputErr.Message)
	}
	return formatter.fail(ExitCommandError, ErrCodeGeneric, err.Error())
}
