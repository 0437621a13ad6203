package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	cmd "github.com/idlab-discover/drivescore-cli/cmd/drivescore-cli"
	"github.com/idlab-discover/drivescore-cli/internal/apperr"
	"github.com/idlab-discover/drivescore-cli/internal/ui"
)

// Version is set at build time
var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	if err := fang.Execute(
		context.Background(),
		cmd.GetRootCmd(),
		fang.WithColorSchemeFunc(ui.FangColorScheme),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		// User deliberately cancelled an interactive flow – not a failure.
		if errors.Is(err, apperr.ErrCancelled) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// errorHandler skips errors whose message is already on screen.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	if errors.Is(err, apperr.ErrFailed) || errors.Is(err, apperr.ErrCancelled) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
