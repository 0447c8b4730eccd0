// cmd/buildergen/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// This binary is a code-generation tool.
//
// It reads builder interfaces from a Go package and emits, for each one, a
// small forwarding type registered with the builder runtime, so that
// builder.Make[Iface] can hand out values of the interface type.
//
// Key behaviors:
// - Parses every non-test, non-generated .go file of the source package
// - Flattens embedded interfaces of the same package and builder.Builder[R]
// - Renders the output with jennifer (imports resolved from the source files)
// - Writes output atomically (temp file + rename) to avoid partial writes

const usage = "usage: buildergen -type <Iface>[,<Iface>...] -out <file.gen.go> [-src <dir>] [-strategy shape|getter] [-prefix Get]\n" +
	"       buildergen -config <targets.yaml>"

// logLevelEnv overrides the log level (debug, info, warn, error).
const logLevelEnv = "BUILDERGEN_LOG"

// run executes the generator logic and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("buildergen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	srcDir := flags.String("src", ".", "package directory holding the builder interfaces")
	typeList := flags.String("type", "", "comma-separated builder interface names")
	outPath := flags.String("out", "", "output .gen.go file path")
	strategy := flags.String("strategy", strategyShape, "naming strategy: shape or getter")
	prefix := flags.String("prefix", "", "reader prefix for -strategy getter (default Get)")
	configPath := flags.String("config", "", "YAML file listing several targets")
	verbose := flags.Bool("v", false, "debug logging")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	log := newLogger(stderr, *verbose)

	var targets []Target
	if strings.TrimSpace(*configPath) != "" {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			log.WithError(err).Error("buildergen: cannot load config")
			return 2
		}
		targets = cfg.Targets
	} else {
		if strings.TrimSpace(*typeList) == "" || strings.TrimSpace(*outPath) == "" {
			_, _ = fmt.Fprintln(stderr, usage)
			return 2
		}
		targets = []Target{{
			Src:      *srcDir,
			Out:      *outPath,
			Types:    splitList(*typeList),
			Strategy: *strategy,
			Prefix:   *prefix,
		}}
	}

	for i := range targets {
		if err := validateTarget(&targets[i]); err != nil {
			log.WithError(err).WithField("out", targets[i].Out).Error("buildergen: bad target")
			return 2
		}
	}

	for _, target := range targets {
		if err := generate(target, log); err != nil {
			log.WithError(err).WithField("out", target.Out).Error("buildergen: generation failed")
			return 1
		}
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// newLogger writes plain text logs to w. The level is info, debug with -v, or
// whatever BUILDERGEN_LOG says.
func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	} else if raw, ok := os.LookupEnv(logLevelEnv); ok {
		if parsed, err := logrus.ParseLevel(raw); err == nil {
			level = parsed
		} else {
			log.WithError(err).Warnf("buildergen: ignoring %s", logLevelEnv)
		}
	}
	log.SetLevel(level)
	return log
}

// generate renders one target and writes it to disk.
func generate(target Target, log logrus.FieldLogger) error {
	log.WithFields(logrus.Fields{"src": target.Src, "types": target.Types}).Debug("buildergen: loading package")

	pkg, err := loadPackage(target.Src)
	if err != nil {
		return err
	}

	src, err := render(pkg, target)
	if err != nil {
		return err
	}

	generatedFilePath := filepath.Clean(target.Out)
	if err := writeFileAtomic(generatedFilePath, src, 0o644); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"out":      generatedFilePath,
		"package":  pkg.name,
		"types":    strings.Join(target.Types, ","),
		"strategy": target.Strategy,
	}).Info("buildergen: generated")
	return nil
}

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes to a temporary file in the target directory and then
// renames it over targetPath, so readers never observe partial writes.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	tmpFile, err := createTempFile(filepath.Dir(targetPath), filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	return renameFile(tmpPath, targetPath)
}
