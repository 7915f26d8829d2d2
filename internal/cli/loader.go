package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/bondgen/internal/codegen"
	"github.com/roach88/bondgen/internal/codegen/cpp"
	"github.com/roach88/bondgen/internal/codegen/golang"
	"github.com/roach88/bondgen/internal/config"
)

// InputError reports an input path that cannot be used at all.
type InputError struct {
	Code    string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// schemaExts are the document syntaxes the schema loader accepts.
var schemaExts = []string{".json", ".cue", ".yaml", ".yml"}

// ExpandInputs resolves the command-line inputs to schema documents.
// Directories contribute their schema files (not recursively) in name order.
func ExpandInputs(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if os.IsNotExist(err) {
			return nil, &InputError{Code: ErrCodeNotFound, Message: fmt.Sprintf("input not found: %s", p)}
		}
		if err != nil {
			return nil, &InputError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing input: %v", err)}
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, &InputError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error scanning directory: %v", err)}
		}
		var found []string
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if e.IsDir() || !slices.Contains(schemaExts, ext) || e.Name() == config.FileName {
				continue
			}
			found = append(found, filepath.Join(p, e.Name()))
		}
		if len(found) == 0 {
			return nil, &InputError{Code: ErrCodeNoInputs, Message: fmt.Sprintf("no schema documents found in %s", p)}
		}
		out = append(out, found...)
	}
	if len(out) == 0 {
		return nil, &InputError{Code: ErrCodeNoInputs, Message: "no schema documents given"}
	}
	return out, nil
}

// loadConfig reads the project file named by --config, or bondgen.yaml in
// the working directory when there is one.
func loadConfig(root *RootOptions) (*config.Config, error) {
	path := root.Config
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		found, ok := config.Find(wd)
		if !ok {
			return config.Default(), nil
		}
		path = found
	}
	return config.Load(path)
}

// targetFlags are the flags shared by every command that renders artifacts.
type targetFlags struct {
	Target    string
	Output    string
	Constants string
	GoPackage string
	GoRuntime string
}

func (f *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Target, "target", "t", "cpp", "output language (cpp|go)")
	cmd.Flags().StringVarP(&f.Output, "output", "o", ".", "output directory")
	cmd.Flags().StringVar(&f.Constants, "const", "", "wire constants document (default built-in bond_const.json)")
	cmd.Flags().StringVar(&f.GoPackage, "go-package", "", "package clause of generated Go files")
	cmd.Flags().StringVar(&f.GoRuntime, "go-runtime", "", "import path of the Compact Binary runtime for generated Go files")
}

// apply overrides cfg with every flag given on the command line.
func (f *targetFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("target") {
		cfg.Target = f.Target
	}
	if flags.Changed("output") {
		cfg.Output = f.Output
	}
	if flags.Changed("const") {
		cfg.Constants = f.Constants
	}
	if flags.Changed("go-package") {
		cfg.Go.Package = f.GoPackage
	}
	if flags.Changed("go-runtime") {
		cfg.Go.Runtime = f.GoRuntime
	}
}

// resolve merges the project file with the flags. Without a configured Go
// package, every Go file of the run takes its package from the output
// directory. The returned error is already reported through formatter.
func (f *targetFlags) resolve(cmd *cobra.Command, root *RootOptions, formatter *OutputFormatter) (*config.Config, error) {
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, formatter.fail(ExitCommandError, ErrCodeConfig, err.Error())
	}
	f.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, formatter.fail(ExitCommandError, ErrCodeUsage, err.Error())
	}
	if cfg.Target == "go" && cfg.Go.Package == "" {
		dir, err := filepath.Abs(cfg.Output)
		if err != nil {
			return nil, formatter.fail(ExitCommandError, ErrCodeUsage, err.Error())
		}
		cfg.Go.Package = golang.PackageFor(dir)
	}
	return cfg, nil
}

func newTarget(cfg *config.Config) codegen.Target {
	if cfg.Target == "go" {
		return golang.New(golang.Options{Package: cfg.Go.Package, Runtime: cfg.Go.Runtime})
	}
	return cpp.New()
}

// targetOptions is the part of the configuration that changes generated
// bytes beyond the input and constants documents.
func targetOptions(cfg *config.Config) string {
	if cfg.Target == "go" {
		return fmt.Sprintf("package=%s runtime=%s", cfg.Go.Package, cfg.Go.Runtime)
	}
	return ""
}
