package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"ocp/parser"
	"ocp/tables"
	"ocp/trace"
	"ocp/vm"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run compiles every expression line of the inputs into one program. A line
// that fails is reported and its partial code discarded; the remaining lines
// still compile. The exit status is 1 when any line failed.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ocpc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	tablePath := fs.String("tables", "", "YAML table definition file")
	expr := fs.String("expr", "", "Compile a single expression (e.g. \"\\\\1 + 1\")")
	mode := fs.String("mode", "right", "Output action: right, pushback or expr")
	format := fs.String("format", "listing", "Output format: listing, lines, hex or words")
	logLevel := fs.String("log-level", "info", "Log level (debug, info, warn, error)")

	// Trace flags
	traceEnabled := fs.Bool("trace", false, "Trace every emitted instruction")
	traceFilter := fs.String("trace-filter", "", "Trace filter pattern (glob over op-code names, e.g. 'PUSH_*')")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).
		With().Timestamp().Str("service", "ocpc").Logger().
		Level(level)

	if *traceEnabled {
		var filters []string
		if *traceFilter != "" {
			filters = strings.Split(*traceFilter, ",")
			for i := range filters {
				filters[i] = strings.TrimSpace(filters[i])
			}
		}
		trace.InitLogger(true, filters, logger.Level(zerolog.DebugLevel))
		logger.Debug().Strs("filters", filters).Msg("tracing enabled")
	} else {
		trace.Init(false, nil, nil)
	}

	registry := tables.NewRegistry()
	if *tablePath != "" {
		registry, err = tables.LoadFile(*tablePath)
		if err != nil {
			logger.Error().Err(err).Msg("failed to load tables")
			return 1
		}
		logger.Debug().Strs("tables", registry.Names()).Msg("tables loaded")
	}

	var sources []source
	if *expr != "" {
		sources = append(sources, source{name: "-expr", text: *expr})
	} else {
		sources, err = readSources(fs.Args(), stdin)
		if err != nil {
			logger.Error().Err(err).Msg("failed to read input")
			return 1
		}
	}

	c := vm.NewCompilerWithTables(registry)
	failed := 0
	for _, src := range sources {
		for i, line := range strings.Split(src.text, "\n") {
			text := strings.TrimSpace(line)
			if text == "" || strings.HasPrefix(text, "%") {
				continue
			}
			mark := c.Len()
			if err := compileLine(c, *mode, line, i+1); err != nil {
				c.Rollback(mark)
				failed++
				logger.Error().Str("file", src.name).Int("line", i+1).Err(err).Msg("compile failed")
			}
		}
	}

	if err := writeProgram(stdout, c.Program(), *format); err != nil {
		logger.Error().Err(err).Msg("failed to write output")
		return 1
	}
	logger.Info().Int("instructions", c.Len()).Int("failed", failed).Msg("done")

	if failed > 0 {
		return 1
	}
	return 0
}

type source struct {
	name string
	text string
}

// readSources reads the named files, or stdin when there are none
func readSources(paths []string, stdin io.Reader) ([]source, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(bufio.NewReader(stdin))
		if err != nil {
			return nil, err
		}
		return []source{{name: "stdin", text: string(data)}}, nil
	}

	sources := make([]source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{name: path, text: string(data)})
	}
	return sources, nil
}

// compileLine compiles one top-level expression found on the given line
func compileLine(c *vm.Compiler, mode, text string, line int) error {
	switch mode {
	case "expr":
		expr, err := parser.ParseAt(text, line)
		if err != nil {
			return err
		}
		return c.Compile(expr)
	case "right", "pushback":
		a, err := parser.ParseArithAt(text, line)
		if err != nil {
			return err
		}
		if mode == "right" {
			return c.OutRight(a)
		}
		return c.OutPushback(a)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// writeProgram prints the program in the requested format
func writeProgram(w io.Writer, prog *vm.Program, format string) error {
	switch format {
	case "listing":
		_, err := io.WriteString(w, prog.String())
		return err
	case "lines":
		for ip, inst := range prog.Code {
			if _, err := fmt.Fprintf(w, "%04d  %s ; line %d\n", ip, inst, prog.LineForIP(ip)); err != nil {
				return err
			}
		}
		return nil
	case "hex":
		_, err := fmt.Fprintf(w, "%x\n", prog.Bytes())
		return err
	case "words":
		for _, word := range prog.Words() {
			if _, err := fmt.Fprintf(w, "%08x\n", word); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
