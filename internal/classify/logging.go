package classify

import (
	"io"

	"github.com/idlab-discover/drivescore-cli/internal/logging"
	"github.com/idlab-discover/drivescore-cli/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Upload:", PrefixColor: ui.FgMagenta}

// SetLogger sets an optional destination for upload logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(fileName string, format string, args ...any) {
	logger.Logf(fileName, format, args...)
}
