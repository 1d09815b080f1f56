// Command seqinput inspects and prepares input pipelines for
// sequence-to-sequence training.
//
//	seqinput inspect --definition pipeline.yml [--set key=value ...] [--limit N]
//	seqinput convert --source a.src --target a.tgt --out a.rec
//	seqinput classes
//	seqinput version
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"

	"github.com/kbukum/seqinput/version"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `usage: seqinput <command> [flags]

commands:
  inspect   build a pipeline from a definition and print examples as JSON lines
  convert   write a record file from parallel text files
  classes   list registered pipeline classes
  version   print the build version

run "seqinput <command> --help" for command flags.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}
	switch args[0] {
	case "inspect":
		return runInspect(ctx, args[1:], stdout, stderr)
	case "convert":
		return runConvert(ctx, args[1:], stdout, stderr)
	case "classes":
		return runClasses(ctx, args[1:], stdout, stderr)
	case "version":
		_ = json.NewEncoder(stdout).Encode(version.Get())
		return exitOK
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}
}
