package main

import (
	"context"
	"fmt"
	"io"
)

func runClasses(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var common commonFlags
	fs := newFlagSet("classes", stderr)
	common.register(fs)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	a, err := setup(ctx, common, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer a.close(ctx)

	for _, class := range a.registry.List() {
		fmt.Fprintln(stdout, class)
	}
	return exitOK
}
