package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(realMain(os.Args[1:], DefaultEnv()))
}

// realMain runs the tool and returns its exit code.
func realMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitGeneral
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "mht2pdf-lite %s\n", Version)
		return ExitSuccess
	}

	// Align GOMAXPROCS with the container CPU quota.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	// Ctrl-C or SIGTERM cancels the run mid-extraction.
	ctx, stop := interruptContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, newExtractor, env); err != nil {
		fmt.Fprintln(env.Stderr, err.Error()+hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}
