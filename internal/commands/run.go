// Package commands implements the three cmd/mage subcommands named by
// SPEC_FULL.md §6.1: run, environment, language-server. It is the layer
// between cmd/mage's flag parsing and the pipeline packages (internal/
// syntax/parse, internal/flatten, internal/codegen, internal/exec),
// grounded on the teacher's convention of keeping subcommand bodies in
// their own package (cmd/sentra/commands) separate from main's dispatch.
package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/kr/pretty"

	"mage/internal/codegen"
	"mage/internal/flatten"
	"mage/internal/ir"
	"mage/internal/merrors"
	"mage/internal/syntax"
	"mage/internal/syntax/parse"
	"mage/internal/telemetry"
)

// RunOptions configures one `mage run` invocation (SPEC_FULL.md §6.1).
type RunOptions struct {
	Path         string // empty means "read from Stdin"
	Output       string // "text" | "json"
	Stage        string // "flatten" | "compile"
	TelemetryDSN string // empty disables telemetry
	Verbose      bool
}

// runEnvelope is the --output json top-level shape: a FlatRoot plus the
// run's correlation id and, when --stage compile ran, the executed
// result (SPEC_FULL.md §6.1 "[ADDED]" run-id and execution behavior).
type runEnvelope struct {
	RunID  string          `json:"run_id"`
	Root   *ir.FlatRoot    `json:"flat_root"`
	Result *resultEnvelope `json:"result,omitempty"`
}

type resultEnvelope struct {
	Kind    string `json:"kind"`
	Payload int64  `json:"payload"`
}

// Run reads source text (from opts.Path, or line-by-line from stdin when
// Path is empty, matching original_source/src/main.rs's fallback),
// parses, flattens, and — for --stage compile — generates and executes
// code, then renders the result to stdout per opts.Output.
func Run(ctx context.Context, opts RunOptions, stdin io.Reader, stdout, stderr io.Writer) error {
	runID := uuid.New().String()
	started := time.Now()

	source, err := readSource(opts.Path, stdin)
	if err != nil {
		err = fmt.Errorf("reading input: %w", err)
		fmt.Fprintf(stderr, "mage: run %s: %v\n", runID, err)
		return err
	}
	if opts.Verbose {
		fmt.Fprintf(stderr, "mage: run %s: read %s of input\n", runID, humanize.Bytes(uint64(len(source))))
	}

	env, bytecodeBytes, runErr := process(opts, source)
	if env != nil {
		env.RunID = runID
	}

	if opts.TelemetryDSN != "" {
		rec := telemetry.RunRecord{
			RunID:         runID,
			Stage:         opts.Stage,
			StartedAt:     started,
			Duration:      time.Since(started),
			InputBytes:    len(source),
			BytecodeBytes: bytecodeBytes,
		}
		if runErr != nil {
			rec.Err = runErr.Error()
		}
		if tErr := telemetry.Record(ctx, opts.TelemetryDSN, rec); tErr != nil && opts.Verbose {
			fmt.Fprintf(stderr, "mage: telemetry: %v\n", tErr)
		}
	}

	if runErr != nil {
		if merr, ok := runErr.(*merrors.Error); ok {
			fmt.Fprintf(stderr, "mage: run %s: %s\n", runID, merr.Error())
		} else {
			fmt.Fprintf(stderr, "mage: run %s: %v\n", runID, runErr)
		}
		return runErr
	}

	return render(opts.Output, env, stdout)
}

func readSource(path string, stdin io.Reader) ([]byte, error) {
	if path != "" {
		return readFile(path)
	}
	var lines []byte
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		lines = append(lines, scanner.Bytes()...)
		lines = append(lines, '\n')
	}
	return lines, scanner.Err()
}

// process runs the pipeline up to the requested stage and builds the
// envelope Run renders, plus the bytecode byte count for telemetry (zero
// when the flatten stage never reaches code generation). It does not
// itself touch stdout/stderr so it can be unit tested directly.
func process(opts RunOptions, source []byte) (env *runEnvelope, bytecodeBytes int, err error) {
	lang := syntax.NewLanguage()
	tree, err := parse.Parse(lang, source)
	if err != nil {
		return nil, 0, err
	}

	root, err := flatten.New(lang, source).Flatten(tree)
	if err != nil {
		return nil, 0, err
	}

	env = &runEnvelope{Root: root}
	if opts.Stage == "flatten" {
		return env, 0, nil
	}

	bc, err := codegen.Generate(root)
	if err != nil {
		return nil, 0, err
	}
	result, err := executeBytecode(bc, source)
	if err != nil {
		return nil, len(bc.Code), err
	}
	env.Result = &resultEnvelope{Kind: result.Kind, Payload: result.Payload}
	return env, len(bc.Code), nil
}

func render(output string, env *runEnvelope, stdout io.Writer) error {
	if output == "json" {
		enc := json.NewEncoder(stdout)
		return enc.Encode(env)
	}
	_, err := fmt.Fprintf(stdout, "%# v\n", pretty.Formatter(env))
	return err
}
