package engine

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/seekerror/logw"
)

// ReadStdinLines reads stdin lines into a chan, closed on EOF. Async.
func ReadStdinLines(ctx context.Context) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			logw.Debugf(ctx, "<< %v", line)
			ret <- line
		}
		if err := scanner.Err(); err != nil {
			logw.Errorf(ctx, "Reading stdin failed: %v", err)
		}
	}()
	return ret
}

// WriteStdoutLines writes lines from the given chan to stdout until it closes.
func WriteStdoutLines(ctx context.Context, out <-chan string) {
	for line := range out {
		logw.Debugf(ctx, ">> %v", line)
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
}
