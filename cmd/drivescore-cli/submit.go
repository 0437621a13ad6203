package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/drivescore-cli/internal/apperr"
	"github.com/idlab-discover/drivescore-cli/internal/classify"
	"github.com/idlab-discover/drivescore-cli/internal/controller"
	"github.com/idlab-discover/drivescore-cli/internal/display"
	summaryio "github.com/idlab-discover/drivescore-cli/internal/io"
	"github.com/idlab-discover/drivescore-cli/internal/render"
	"github.com/idlab-discover/drivescore-cli/internal/source"
	"github.com/idlab-discover/drivescore-cli/internal/ui"
)

var (
	submitFile          string
	submitURL           string
	submitTimeoutSec    int
	submitChartDir      string
	submitChartFormat   string
	submitNoChart       bool
	submitSummary       string
	submitSummaryFormat string
	submitInteractive   bool

	// Logging is controlled via submitLogLevel.
	submitLogLevel string
)

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Upload a telemetry file and show its driving behavior breakdown",
	Long: `Uploads one CSV or JSON telemetry export to the classification service
(POST <url>/upload, multipart field "file") and renders:

  - the first 5 classified intervals and the overall aggressive percentage
  - a pie chart splitting 100% into normal driving and the five causes of
    aggressive driving (speed, acceleration, deceleration, stop frequency,
    idle time)

Example:
  drivescore-cli submit -f trip.csv
  drivescore-cli submit -f trip.json --url http://classifier:5000 --chart-format svg
  drivescore-cli submit --interactive`,
	RunE: runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) error {
	// Resolve effective log level (from config, env, or flag).
	level := strings.ToLower(strings.TrimSpace(viper.GetString("submit.log-level")))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		// ok
	default:
		return apperr.Userf("invalid --log-level %q (expected quiet|standard|debug)", level)
	}
	quiet := level == "quiet"

	// Wire internal package logging based on log level.
	if level == "debug" {
		classify.SetLogger(cmd.ErrOrStderr())
		controller.SetLogger(cmd.ErrOrStderr())
		render.SetLogger(cmd.ErrOrStderr())
	}

	chartFormat, err := render.ParseImageFormat(viper.GetString("submit.chart-format"))
	if err != nil {
		return apperr.User(err.Error())
	}

	switch strings.ToLower(strings.TrimSpace(viper.GetString("submit.summary-format"))) {
	case "", "auto", "yaml", "yml", "json":
		// ok
	default:
		return apperr.Userf("invalid --summary-format %q (expected yaml|json|auto)", viper.GetString("submit.summary-format"))
	}

	timeoutSec := viper.GetInt("submit.timeout")
	if timeoutSec <= 0 {
		timeoutSec = 30
	}

	baseURL := strings.TrimSpace(viper.GetString("submit.url"))
	if baseURL == "" {
		baseURL = classify.DefaultBaseURL
	}

	chartDir := strings.TrimSpace(viper.GetString("submit.chart-dir"))
	if chartDir == "" {
		chartDir = "dist/charts"
	}

	var surface render.ChartSurface = &render.ImageSurface{Dir: chartDir, Format: chartFormat}
	if viper.GetBool("submit.no-chart") {
		surface = &render.MemorySurface{}
	}

	errOut := cmd.ErrOrStderr()
	terminal := isTerminal(errOut)
	interactive := viper.GetBool("submit.interactive")

	var files controller.FileSource = source.PathSource{Path: viper.GetString("submit.file")}
	if interactive && strings.TrimSpace(viper.GetString("submit.file")) == "" {
		files = source.NewPickerSource("")
	}

	regions := display.NewTerminalRegions(cmd.OutOrStdout(), errOut, terminal && !quiet)
	if quiet {
		regions.Loading = display.NewLoadingRegion(nil, false)
	}
	renderer := render.NewRenderer(regions, surface)

	uploader := &capturingUploader{next: &classify.Client{
		BaseURL:    baseURL,
		HTTPClient: classify.NewHTTPClient(time.Duration(timeoutSec) * time.Second),
	}}

	ctrl := controller.New(controller.Config{
		Files:     files,
		Uploader:  uploader,
		Regions:   regions,
		Presenter: renderer,
		Notifier: controller.NotifierFunc(func(msg string) {
			fmt.Fprintln(errOut, ui.FormatStatus("warning", ui.Warning.Render(msg)))
		}),
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	for {
		st := ctrl.Submit(ctx)

		if st == controller.Success {
			if err := writeSummary(cmd.OutOrStdout(), uploader.last(), quiet); err != nil {
				return err
			}
		}

		if !interactive || st == controller.Idle {
			return exitFor(st)
		}

		again, err := confirmAnother()
		if err != nil || !again {
			return exitFor(st)
		}
	}
}

func exitFor(st controller.State) error {
	if st == controller.Error {
		return apperr.ErrFailed
	}
	return nil
}

func writeSummary(w io.Writer, last capturedOutcome, quiet bool) error {
	path := strings.TrimSpace(viper.GetString("submit.summary"))
	if path == "" {
		return nil
	}
	sum := summaryio.NewSummary(last.file, last.success)
	if err := summaryio.WriteSummary(sum, path, viper.GetString("submit.summary-format")); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if !quiet {
		fmt.Fprintln(w, ui.FormatStatus("success", "Summary written to "+ui.Secondary.Render(path)))
	}
	return nil
}

func confirmAnother() (bool, error) {
	var again bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Submit another file?").
				Value(&again).
				Affirmative("Yes").
				Negative("No"),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return again, nil
}

type capturedOutcome struct {
	file    string
	success classify.Success
}

// capturingUploader remembers the latest successful outcome for the summary export.
type capturingUploader struct {
	next controller.Uploader

	mu      sync.Mutex
	outcome capturedOutcome
}

func (u *capturingUploader) Upload(ctx context.Context, f *classify.File) (classify.Outcome, error) {
	out, err := u.next.Upload(ctx, f)
	if s, ok := out.(classify.Success); ok && err == nil {
		u.mu.Lock()
		u.outcome = capturedOutcome{file: f.Name, success: s}
		u.mu.Unlock()
	}
	return out, err
}

func (u *capturingUploader) last() capturedOutcome {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.outcome
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func init() {
	submitCmd.Flags().StringVarP(&submitFile, "file", "f", "", "Telemetry file to upload (.csv or .json)")
	submitCmd.Flags().StringVar(&submitURL, "url", "", "Base URL of the classification service (default "+classify.DefaultBaseURL+")")
	submitCmd.Flags().IntVar(&submitTimeoutSec, "timeout", 0, "HTTP timeout in seconds for the upload request")
	submitCmd.Flags().StringVar(&submitChartDir, "chart-dir", "", "Directory for the rendered pie chart (default dist/charts)")
	submitCmd.Flags().StringVar(&submitChartFormat, "chart-format", "", "Pie chart image format: png|svg")
	submitCmd.Flags().BoolVar(&submitNoChart, "no-chart", false, "Only print the chart legend, do not write an image")
	submitCmd.Flags().StringVar(&submitSummary, "summary", "", "Write a summary of a successful result to this file")
	submitCmd.Flags().StringVar(&submitSummaryFormat, "summary-format", "", "Summary format: yaml|json|auto")
	submitCmd.Flags().BoolVarP(&submitInteractive, "interactive", "I", false, "Pick the file interactively and allow repeated submissions")
	submitCmd.Flags().StringVar(&submitLogLevel, "log-level", "", "Log level: quiet|standard|debug")

	// Bind all flags to viper for config file support
	viper.BindPFlag("submit.file", submitCmd.Flags().Lookup("file"))
	viper.BindPFlag("submit.url", submitCmd.Flags().Lookup("url"))
	viper.BindPFlag("submit.timeout", submitCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("submit.chart-dir", submitCmd.Flags().Lookup("chart-dir"))
	viper.BindPFlag("submit.chart-format", submitCmd.Flags().Lookup("chart-format"))
	viper.BindPFlag("submit.no-chart", submitCmd.Flags().Lookup("no-chart"))
	viper.BindPFlag("submit.summary", submitCmd.Flags().Lookup("summary"))
	viper.BindPFlag("submit.summary-format", submitCmd.Flags().Lookup("summary-format"))
	viper.BindPFlag("submit.interactive", submitCmd.Flags().Lookup("interactive"))
	viper.BindPFlag("submit.log-level", submitCmd.Flags().Lookup("log-level"))
}
