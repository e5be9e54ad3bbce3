package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, &app{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}, os.Args[1:])
	stop()
	os.Exit(code)
}

// reportedError is a failure the notifier has already shown the user.
type reportedError struct{ err error }

func (e reportedError) Error() string { return domain.UserMessage(e.err) }

func (e reportedError) Unwrap() error { return e.err }

// execute runs the command tree and returns the process exit code. History
// and logger are released whether or not the command succeeded.
func execute(ctx context.Context, a *app, args []string) int {
	defer a.teardown()

	root := newRootCmd(a)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var reported reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintln(a.errOut, "Error:", err)
	}
	return 1
}
