// Command powerset compiles patterns into finite automata and runs them.
//
// Usage:
//
//	powerset [-log-level level] [-log-format text|json] <command> [flags] [args]
//
// Commands:
//
//	show    print the NFA and DFA of a pattern, optionally as Graphviz DOT
//	match   report whether whole words are in a pattern's language
//	find    print the leftmost-longest matches of a pattern in inputs
//	grep    print the lines of files that contain a match
//	gen     generate Go source for a pattern's DFA
//	check   verify .cases files against the engine
//	bench   run the kleene search or powerset construction benchmark
//
// Exit status is 0 on success, 1 when nothing matched or a check failed,
// and 2 on usage or runtime errors.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// errNoMatch makes run exit with status 1 without printing an error.
var errNoMatch = errors.New("no match")

// usageError is a command line error; run exits with status 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// env carries the streams and logger shared by all commands.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

type command struct {
	name    string
	summary string
	run     func(e *env, args []string) error
}

var commands = []command{
	{"show", "print the NFA and DFA of a pattern", runShow},
	{"match", "report whether whole words are in the language", runMatch},
	{"find", "print leftmost-longest matches", runFind},
	{"grep", "print lines of files that contain a match", runGrep},
	{"gen", "generate Go source for a pattern's DFA", runGen},
	{"check", "verify .cases files", runCheck},
	{"bench", "run a benchmark (kleene or powerset)", runBench},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("powerset", flag.ContinueOnError)
	fs.SetOutput(stderr)
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn or error")
	logFormat := fs.String("log-format", "text", "log format: text or json")
	version := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: powerset [flags] <command> [args]")
		fmt.Fprintln(stderr, "\ncommands:")
		for _, c := range commands {
			fmt.Fprintf(stderr, "  %-6s %s\n", c.name, c.summary)
		}
		fmt.Fprintln(stderr, "\nflags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *version {
		fmt.Fprintln(stdout, "powerset", Version)
		return 0
	}

	logger, err := newLogger(stderr, *logFormat, parseLogLevel(*logLevel))
	if err != nil {
		fmt.Fprintf(stderr, "powerset: %v\n", err)
		return 2
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	name := fs.Arg(0)
	for _, c := range commands {
		if c.name != name {
			continue
		}
		e := &env{stdin: stdin, stdout: stdout, stderr: stderr, logger: logger.With("command", name)}
		return exitCode(stderr, c.run(e, fs.Args()[1:]))
	}
	fmt.Fprintf(stderr, "powerset: unknown command %q\n", name)
	fs.Usage()
	return 2
}

func exitCode(stderr io.Writer, err error) int {
	var ue *usageError
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errNoMatch):
		return 1
	case errors.As(err, &ue):
		fmt.Fprintf(stderr, "powerset: %v (run with -h for usage)\n", err)
		return 2
	default:
		fmt.Fprintf(stderr, "powerset: %v\n", err)
		return 2
	}
}

func newLogger(w io.Writer, format string, level slog.Level) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, usagef("unknown log format %q", format)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
