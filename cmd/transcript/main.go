// Command transcript writes the JSON schema of saved session transcripts and
// verifies transcript files offline.
//
//	transcript schema -out schema/transcript.json
//	transcript verify -in out/session_001.json [-in ...]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/pthm-cable/snake/telemetry"
)

type inputs []string

func (i *inputs) String() string     { return strings.Join(*i, ",") }
func (i *inputs) Set(v string) error { *i = append(*i, v); return nil }

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "schema":
		err = runSchema(os.Args[2:])
	case "verify":
		err = runVerify(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error(os.Args[1]+" failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: transcript schema -out FILE | verify -in FILE [-in FILE ...]")
}

func runSchema(args []string) error {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	outPath := fs.String("out", "", "path to write the JSON schema")
	fs.Parse(args)
	if *outPath == "" {
		return fmt.Errorf("-out is required")
	}
	return writeSchema(*outPath, buildSchema())
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{}
	schema := reflector.Reflect(new(telemetry.SessionTranscript))
	schema.Title = "Snake session transcript"
	schema.Description = "Event chain and eaten food spawn records of one finished session"
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create schema directory: %w", err)
		}
	}
	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	slog.Info("schema written", "path", outPath)
	return nil
}

func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var paths inputs
	fs.Var(&paths, "in", "transcript file to verify (repeatable)")
	fs.Parse(args)
	paths = append(paths, fs.Args()...)
	if len(paths) == 0 {
		return fmt.Errorf("-in is required")
	}

	failed := 0
	for _, p := range paths {
		if err := verifyFile(p); err != nil {
			slog.Error("transcript rejected", "path", p, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d transcripts rejected", failed, len(paths))
	}
	return nil
}

func verifyFile(path string) error {
	st, err := telemetry.LoadTranscript(path)
	if err != nil {
		return err
	}
	if err := st.Verify(); err != nil {
		return err
	}
	slog.Info("transcript ok",
		"path", path,
		"session", st.Session,
		"cause", st.Cause,
		"final_length", st.FinalLength,
		"blocks", len(st.Events),
		"eats", len(st.Foods),
	)
	return nil
}
