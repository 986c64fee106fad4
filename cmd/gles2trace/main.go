// Command gles2trace replays a scene script against a recording GL
// context and prints the GL calls the driver issued.
//
// The report shows how many state changes reached GL and how many the
// state cache filtered out, which makes it a quick check of material
// ordering in a scene.
//
// Usage:
//
//	gles2trace [-script scene.yaml] [-compiler naga|none] [-glsl auto] [-top N] [-v]
package main

import (
	"bytes"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/gogpu/gles2"
	"github.com/gogpu/naga/glsl"
)

//go:embed demo.yaml
var demoScript []byte

// echoCompiler skips shader translation. The recorder accepts any
// source, so replays do not depend on the WGSL front end.
type echoCompiler struct{}

func (echoCompiler) Compile(source, entryPoint string) (string, error) {
	return "#version 300 es\n// " + entryPoint + "\n", nil
}

func main() {
	var (
		scriptPath = flag.String("script", "", "scene script (YAML); the built-in demo when empty")
		compiler   = flag.String("compiler", "naga", "shader compiler: naga or none")
		version    = flag.String("glsl", "auto", "GLSL ES version for naga: auto (match the context), 300es, 310es or 320es")
		top        = flag.Int("top", 0, "print only the N most frequent calls")
		verbose    = flag.Bool("v", false, "log driver messages to stderr")
	)
	flag.Parse()

	if *verbose {
		gles2.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	src := demoScript
	if *scriptPath != "" {
		b, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("Failed to read script: %v", err)
		}
		src = b
	}
	script, err := ParseScript(bytes.NewReader(src))
	if err != nil {
		log.Fatalf("Failed to parse script: %v", err)
	}

	opts, err := compilerOptions(*compiler, *version)
	if err != nil {
		log.Fatal(err)
	}
	rep, err := Replay(script, opts...)
	if err != nil {
		log.Fatalf("Replay failed: %v", err)
	}
	if err := printReport(os.Stdout, rep, *top); err != nil {
		log.Fatal(err)
	}
}

func compilerOptions(name, version string) ([]gles2.DriverOption, error) {
	switch name {
	case "none":
		return []gles2.DriverOption{gles2.WithShaderCompiler(echoCompiler{})}, nil
	case "naga":
	default:
		return nil, fmt.Errorf("unknown compiler %q", name)
	}
	if version == "auto" {
		return nil, nil
	}
	v, err := parseGLSLVersion(version)
	if err != nil {
		return nil, err
	}
	return []gles2.DriverOption{gles2.WithGLSLVersion(v)}, nil
}

func parseGLSLVersion(s string) (glsl.Version, error) {
	switch s {
	case "300es":
		return glsl.VersionES300, nil
	case "310es":
		return glsl.VersionES310, nil
	case "320es":
		return glsl.VersionES320, nil
	}
	return glsl.Version{}, fmt.Errorf("unknown GLSL version %q", s)
}

func printReport(w io.Writer, rep *Report, top int) error {
	name := rep.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "script:   %s\n", name)
	fmt.Fprintf(w, "adapter:  %s (%s)\n", rep.Adapter.Name, rep.Adapter.Type)
	fmt.Fprintf(w, "frames:   %d\n", rep.Frames)
	fmt.Fprintf(w, "draws:    %d (%d primitives)\n", rep.Stats.DrawCalls, rep.Stats.Primitives)

	s := rep.Stats
	total := s.StateChanges + s.StateChangesElided
	ratio := 0.0
	if total > 0 {
		ratio = 100 * float64(s.StateChangesElided) / float64(total)
	}
	fmt.Fprintf(w, "state:    %d issued, %d elided (%.1f%%)\n", s.StateChanges, s.StateChangesElided, ratio)
	fmt.Fprintf(w, "gl calls: %d (+%d during setup)\n\n", rep.TotalCalls, rep.SetupCalls)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CALL\tCOUNT")
	for i, e := range rep.Calls {
		if top > 0 && i >= top {
			break
		}
		fmt.Fprintf(tw, "%s\t%d\n", e.Name, e.Count)
	}
	return tw.Flush()
}
