package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/typederive/typederive/internal/buildcache"
	"github.com/typederive/typederive/internal/config"
	"github.com/typederive/typederive/internal/diagnostic"
	"github.com/typederive/typederive/internal/openapi"
	"github.com/typederive/typederive/internal/typedesc"
)

func TestParseDeriveFlags(t *testing.T) {
	f, err := parseDeriveFlags([]string{
		"--input", "graph.json",
		"-o", "out.json",
		"--root", "user",
		"--root", "order",
		"--strict",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.input != "graph.json" || f.output != "out.json" {
		t.Errorf("unexpected paths %q %q", f.input, f.output)
	}
	if len(f.roots) != 2 || f.roots[1] != "order" {
		t.Errorf("unexpected roots %v", f.roots)
	}
	if !f.strict {
		t.Error("expected strict")
	}
}

func TestParseDeriveFlags_Errors(t *testing.T) {
	if _, err := parseDeriveFlags([]string{"--bogus"}); err == nil {
		t.Error("expected error for unknown flag")
	}
	if _, err := parseDeriveFlags([]string{"--input"}); err == nil {
		t.Error("expected error for missing value")
	}
}

func TestMergeFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Input = "from-config.json"
	mergeFlags(cfg, &deriveFlags{output: "out.json", quiet: true})

	if cfg.Input != "from-config.json" {
		t.Errorf("empty flag must not clobber config, got %q", cfg.Input)
	}
	if cfg.Output != "out.json" || !cfg.Quiet {
		t.Errorf("flags not merged: %+v", cfg)
	}
}

func TestDeriveRoots_DefaultsToAllNominals(t *testing.T) {
	g := typedesc.NewGraph().
		Add(&typedesc.Descriptor{ID: "str", Kind: typedesc.KindPrimitive, Primitive: "string"}).
		Add(&typedesc.Descriptor{
			ID: "user", Kind: typedesc.KindNominal, Name: "User",
			Properties: []typedesc.Property{{Name: "id", Type: "str"}},
		})

	reg := deriveRoots(g, nil, nil)
	if !reg.Has("User") {
		t.Errorf("expected User registered, got %v", reg.Names())
	}
}

func TestDeriveRoots_UnknownRootWarns(t *testing.T) {
	g := typedesc.NewGraph()
	diags := diagnostic.NewCollector(false, false)

	reg := deriveRoots(g, []string{"ghost"}, diags)
	if reg.Len() != 0 {
		t.Errorf("expected empty registry, got %v", reg.Names())
	}
	if diags.WarningCount() != 1 {
		t.Errorf("expected 1 warning, got %d", diags.WarningCount())
	}
}

func TestRunDerive_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "graph.json")
	out := filepath.Join(dir, "openapi.json")

	graph := `{
		"types": {
			"str": {"kind": "primitive", "primitive": "string"},
			"user": {"kind": "nominal", "name": "User", "properties": [
				{"name": "id", "type": "str"}
			]}
		}
	}`
	if err := os.WriteFile(in, []byte(graph), 0o644); err != nil {
		t.Fatalf("write graph: %v", err)
	}

	if code := runDerive([]string{"--input", in, "--output", out}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	file, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	doc, err := openapi.DecodeDocument(file)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if !doc.Components.Schemas.Has("User") {
		t.Errorf("expected User in document, got %v", doc.Components.Schemas.Names())
	}

	// Second run with unchanged inputs hits the cache and still exits 0.
	if _, err := os.Stat(buildcache.CachePath(out)); err != nil {
		t.Fatalf("expected cache file after first run: %v", err)
	}
	if code := runDerive([]string{"--input", in, "--output", out}); code != 0 {
		t.Fatalf("expected exit 0 on cached run, got %d", code)
	}
}
