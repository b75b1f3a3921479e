// Package main provides the CLI entrypoint for standin-generator.
//
// standin-generator writes, for every selected interface of a package, an
// adapter recording the calls made on it through capture.Proxy, so that
// capture can hand out placeholders of that interface:
//
//	standin-generator -pkg ./model -type Person,Address
//	standin-generator -config standin.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"invocation-capture/internal/analyze"
	"invocation-capture/internal/diagnostic"
	"invocation-capture/internal/gen"
	"invocation-capture/internal/manifest"
	"invocation-capture/internal/suggest"
)

const maxSuggestions = 3

func main() {
	var (
		pkgpath  = flag.String("pkg", "", "package pattern to generate stand-ins for (e.g. ./model)")
		typeList = flag.String("type", "", "comma-separated interface names (default: every interface of the package)")
		output   = flag.String("out", manifest.DefaultOutput, "output file name, relative to the package directory")
		config   = flag.String("config", "", "YAML manifest listing packages and interfaces")
		workdir  = flag.String("cwd", ".", "directory package patterns are resolved from")
		dryRun   = flag.Bool("dry-run", false, "don't write files, just print to stdout")
		logLevel = slog.LevelWarn
	)
	flag.TextVar(&logLevel, "log-level", &logLevel, "set log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: standin-generator (-pkg <pattern> [-type A,B] [-out <file>] | -config <manifest.yaml>)\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	opts := slog.HandlerOptions{Level: &logLevel}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &opts))
	slog.SetDefault(logger)

	m, dir, err := loadManifest(*config, *pkgpath, *typeList, *output, *workdir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	if err := run(ctx, m, dir, *dryRun, logger); err != nil {
		slog.ErrorContext(ctx, "Error", slog.Any("error", err))
		os.Exit(1)
	}
}

// loadManifest reads the manifest file, or builds a one-package manifest
// from the command line. It also returns the directory patterns are
// resolved from.
func loadManifest(config, pkgpath, typeList, output, workdir string) (*manifest.Manifest, string, error) {
	if config != "" {
		if pkgpath != "" {
			return nil, "", errors.New("-config and -pkg are mutually exclusive")
		}

		m, err := manifest.LoadFile(config)
		if err != nil {
			return nil, "", err
		}

		return m, filepath.Dir(config), nil
	}

	if pkgpath == "" {
		return nil, "", errors.New("one of -pkg or -config is required")
	}

	var names []string
	for name := range strings.SplitSeq(typeList, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	m := &manifest.Manifest{
		Version:       manifest.DefaultVersion,
		CaptureImport: manifest.DefaultCaptureImport,
		Packages:      []manifest.Package{{Path: pkgpath, Output: output, Interfaces: names}},
	}

	return m, workdir, manifest.Validate(m)
}

func run(ctx context.Context, m *manifest.Manifest, dir string, dryRun bool, logger *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	results := make([][]byte, len(m.Packages))

	for i, target := range m.Packages {
		g.Go(func() error {
			content, err := generatePackage(ctx, m, target, dir, dryRun, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", target.Path, err)
			}

			results[i] = content

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if dryRun {
		for _, content := range results {
			os.Stdout.Write(content)
		}
	}

	return nil
}

func generatePackage(
	ctx context.Context,
	m *manifest.Manifest,
	target manifest.Package,
	dir string,
	dryRun bool,
	logger *slog.Logger,
) ([]byte, error) {
	analyzer := analyze.NewAnalyzer()
	analyzer.Dir = dir

	logger.DebugContext(ctx, "Loading package", slog.String("pattern", target.Path))

	graph, err := analyzer.LoadPackages(target.Path)
	if err != nil {
		return nil, err
	}

	if len(graph.Packages) != 1 {
		return nil, fmt.Errorf("pattern matches %d packages, want exactly one", len(graph.Packages))
	}

	var pkg *analyze.PackageInfo
	for _, p := range graph.Packages {
		pkg = p
	}

	ifaces, diags := selectInterfaces(graph, pkg, target.Interfaces)
	diags.Log(logger)

	if err := diags.Err(); err != nil {
		return nil, err
	}

	cfg := gen.DefaultGeneratorConfig()
	cfg.CaptureImport = m.CaptureImport
	cfg.Filename = target.Output
	cfg.OutputDir = pkg.Dir
	cfg.GenerateComments = m.GenerateComments()

	file, err := gen.NewGenerator(cfg).Generate(pkg, ifaces)
	if err != nil {
		return nil, err
	}

	if dryRun {
		return file.Content, nil
	}

	if err := gen.WriteFiles([]gen.GeneratedFile{*file}, pkg.Dir); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Generated stand-ins",
		slog.String("package", pkg.Path),
		slog.String("file", filepath.Join(pkg.Dir, file.Filename)),
		slog.Int("interfaces", len(ifaces)))

	return nil, nil
}

// selectInterfaces returns the named interfaces, or every adaptable one
// when names is empty. Problems are reported as diagnostics.
func selectInterfaces(
	graph *analyze.TypeGraph,
	pkg *analyze.PackageInfo,
	names []string,
) ([]*analyze.InterfaceInfo, diagnostic.Diagnostics) {
	var (
		ifaces []*analyze.InterfaceInfo
		diags  diagnostic.Diagnostics
	)

	if len(names) == 0 {
		for _, id := range pkg.Interfaces {
			info := graph.GetInterface(id)
			if info.Skip {
				diags.AddWarning(diagnostic.CodeNotAdaptable, "skipping interface: "+info.Reason, pkg.Path, id.Name)
				continue
			}

			ifaces = append(ifaces, info)
		}

		if len(ifaces) == 0 {
			diags.AddError(diagnostic.CodeNothingToDo, "package declares no interface that can be adapted", pkg.Path, "")
		}

		return ifaces, diags
	}

	known := make([]string, 0, len(pkg.Interfaces))
	for _, id := range pkg.Interfaces {
		known = append(known, id.Name)
	}

	sorted := slices.Clone(names)
	slices.Sort(sorted)

	for _, name := range slices.Compact(sorted) {
		info := graph.GetInterface(analyze.TypeID{PkgPath: pkg.Path, Name: name})

		switch {
		case info == nil:
			diags.AddError(diagnostic.CodeNotFound, "interface "+name+" not found", pkg.Path, name,
				suggest.Names(name, known, maxSuggestions)...)
		case info.Skip:
			diags.AddError(diagnostic.CodeNotAdaptable, "interface "+name+" cannot be adapted: "+info.Reason, pkg.Path, name)
		default:
			ifaces = append(ifaces, info)
		}
	}

	return ifaces, diags
}
