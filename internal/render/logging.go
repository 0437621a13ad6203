package render

import (
	"io"

	"github.com/idlab-discover/drivescore-cli/internal/logging"
	"github.com/idlab-discover/drivescore-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Render:", PrefixColor: ui.FgCyan, OmitFile: true}

// SetLogger sets an optional destination for render logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(fileName string, format string, args ...any) {
	logger.Logf(fileName, format, args...)
}
