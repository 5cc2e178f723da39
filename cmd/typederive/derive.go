package main

import (
	"fmt"
	"io"
	"os"

	"github.com/typederive/typederive/internal/buildcache"
	"github.com/typederive/typederive/internal/config"
	"github.com/typederive/typederive/internal/derive"
	"github.com/typederive/typederive/internal/diagnostic"
	"github.com/typederive/typederive/internal/openapi"
	"github.com/typederive/typederive/internal/typedesc"
)

// deriveFlags holds the parsed command-line flags for the derive command.
type deriveFlags struct {
	input      string
	output     string
	roots      []string
	configPath string
	strict     bool
	quiet      bool
}

func parseDeriveFlags(args []string) (*deriveFlags, error) {
	f := &deriveFlags{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		next := func() (string, error) {
			i++
			if i >= len(args) {
				return "", fmt.Errorf("flag %s requires a value", arg)
			}
			return args[i], nil
		}

		var err error
		switch arg {
		case "--input", "-i":
			f.input, err = next()
		case "--output", "-o":
			f.output, err = next()
		case "--root":
			var id string
			if id, err = next(); err == nil {
				f.roots = append(f.roots, id)
			}
		case "--config":
			f.configPath, err = next()
		case "--strict":
			f.strict = true
		case "--quiet":
			f.quiet = true
		default:
			return nil, fmt.Errorf("unknown flag: %s", arg)
		}
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

func runDerive(args []string) int {
	flags, err := parseDeriveFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	cfg, cfgPath, err := loadConfig(flags.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	mergeFlags(cfg, flags)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	// Cache only applies to file-to-file runs whose roots are fully captured
	// by the config file; ad-hoc --root selections always re-derive.
	var cachePath, graphHash, configHash string
	if isFile(cfg.Input) && isFile(cfg.Output) && len(flags.roots) == 0 {
		cachePath = buildcache.CachePath(cfg.Output)
		graphHash = buildcache.HashFile(cfg.Input)
		if cfgPath != "" {
			configHash = buildcache.HashFile(cfgPath)
		}
		if buildcache.Load(cachePath).IsValid(graphHash, configHash) {
			return 0
		}
	}

	graph, err := readGraph(cfg.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	diags := diagnostic.NewCollector(cfg.Strict, cfg.Quiet)
	reg := deriveRoots(graph, cfg.Roots, diags)

	doc := openapi.NewDocument(openapi.Info{
		Title:       cfg.Document.Title,
		Version:     cfg.Document.Version,
		Description: cfg.Document.Description,
	}, reg)

	if err := writeDocument(cfg.Output, doc); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	if out := diags.FormatAll(); out != "" {
		fmt.Fprint(os.Stderr, out)
	}
	if diags.HasErrors() {
		fmt.Fprintln(os.Stderr, diags.Summary())
		return 1
	}

	if cachePath != "" {
		if err := buildcache.Save(cachePath, buildcache.New(graphHash, configHash, cfg.Output)); err != nil {
			fmt.Fprintln(os.Stderr, "warning: could not save cache:", err)
		}
	}
	return 0
}

// isFile reports whether path names a real file rather than a stdio stream.
func isFile(path string) bool {
	return path != "" && path != "-"
}

// deriveRoots derives every requested root into one shared traversal context
// and returns the populated registry. Roots default to all nominal types in
// the graph, in stable ID order.
func deriveRoots(graph *typedesc.Graph, roots []string, diags *diagnostic.Collector) *openapi.Registry {
	walker := derive.NewWalker(graph, diags)
	ctx := derive.NewContext()

	ids := make([]typedesc.ID, 0, len(roots))
	if len(roots) > 0 {
		for _, r := range roots {
			id := typedesc.ID(r)
			if graph.Resolve(id) == nil {
				diags.Warn(diagnostic.CategoryGraphInvalid, r, "root not present in graph")
				continue
			}
			ids = append(ids, id)
		}
	} else {
		ids = graph.NominalIDs()
	}

	for _, id := range ids {
		walker.Derive(ctx, id)
	}
	return ctx.Registry
}

// loadConfig resolves the effective config and the file path it came from
// ("" when the built-in defaults were used).
func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := config.Load(path)
		return cfg, path, err
	}
	if _, err := os.Stat(config.DefaultPath); err == nil {
		cfg, err := config.Load(config.DefaultPath)
		return cfg, config.DefaultPath, err
	}
	return config.Default(), "", nil
}

// mergeFlags overlays non-empty flag values onto the config.
func mergeFlags(cfg *config.Config, f *deriveFlags) {
	if f.input != "" {
		cfg.Input = f.input
	}
	if f.output != "" {
		cfg.Output = f.output
	}
	if len(f.roots) > 0 {
		cfg.Roots = f.roots
	}
	if f.strict {
		cfg.Strict = true
	}
	if f.quiet {
		cfg.Quiet = true
	}
}

func readGraph(path string) (*typedesc.Graph, error) {
	var r io.Reader
	if path == "" || path == "-" {
		r = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r = file
	}
	return typedesc.DecodeGraph(r)
}

func writeDocument(path string, doc *openapi.Document) error {
	if path == "" || path == "-" {
		return doc.Encode(os.Stdout)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := doc.Encode(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
