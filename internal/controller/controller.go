// Package controller owns the upload lifecycle: it validates that a file is
// selected, toggles the display regions around the single network attempt
// and routes the outcome to the renderer or the error region.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/idlab-discover/drivescore-cli/internal/classify"
	"github.com/idlab-discover/drivescore-cli/internal/display"
	"github.com/idlab-discover/drivescore-cli/internal/partition"
)

// User-facing messages.
const (
	NoFileMessage        = "Please select a file to upload."
	UploadFailedMessage  = "An error occurred while uploading the file."
	InvalidResultMessage = "The classification service returned an invalid result."
	RenderFailedMessage  = "An error occurred while displaying the result."
)

// FileSource yields the currently selected file. A nil file with a nil error
// means nothing is selected.
type FileSource interface {
	Selected() (*classify.File, error)
}

// Uploader performs the single network attempt of a submission.
type Uploader interface {
	Upload(ctx context.Context, f *classify.File) (classify.Outcome, error)
}

// Presenter renders outcomes into the result, chart and error regions.
type Presenter interface {
	RenderTable(rows []classify.Row, aggressivePercentage float64) error
	RenderPartition(aggressivePercentage float64, contributions map[partition.Factor]float64) error
	RenderError(message string)
}

// Notifier reports validation problems outside the error region.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Config wires a Controller. All fields are required except Notifier.
type Config struct {
	Files     FileSource
	Uploader  Uploader
	Regions   display.Regions
	Presenter Presenter
	Notifier  Notifier
}

// Controller runs submissions. Submit may be called concurrently; only the
// most recently started submission may write to the result, chart and error
// regions.
type Controller struct {
	files     FileSource
	uploader  Uploader
	regions   display.Regions
	presenter Presenter
	notifier  Notifier

	mu         sync.Mutex
	generation uint64
	leases     int
	state      State
	lastErr    error
}

// New creates a controller in the Idle state.
func New(cfg Config) *Controller {
	n := cfg.Notifier
	if n == nil {
		n = NotifierFunc(func(string) {})
	}
	return &Controller{
		files:     cfg.Files,
		uploader:  cfg.Uploader,
		regions:   cfg.Regions,
		presenter: cfg.Presenter,
		notifier:  n,
		state:     Idle,
	}
}

// State returns the state of the latest submission.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError returns the cause behind the latest Error state, or nil.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Submit uploads the selected file and renders the outcome. It returns Idle
// when no file is selected (no request is made), Stale when a newer
// submission started before this one settled, and otherwise the resulting
// Success or Error state. The loading region is released on every path that
// issued a request.
func (c *Controller) Submit(ctx context.Context) State {
	f, err := c.files.Selected()
	if err != nil {
		logf("", "file selection failed: %v", err)
		c.notifier.Notify(err.Error())
		return Idle
	}
	if f == nil {
		c.notifier.Notify(NoFileMessage)
		return Idle
	}

	gen := c.begin(f.Name)
	defer c.release()

	out, err := c.uploader.Upload(ctx, f)
	return c.finish(gen, f.Name, out, err)
}

// begin clears stale output and acquires the loading region.
func (c *Controller) begin(name string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.regions.Result.Hide()
	c.regions.Error.Hide()
	c.regions.Chart.Hide()
	if c.leases == 0 {
		c.regions.Loading.SetContent("Uploading " + name)
		c.regions.Loading.Show()
	}
	c.leases++

	c.generation++
	c.state = Loading
	c.lastErr = nil
	logf(name, "submission %d started", c.generation)
	return c.generation
}

// release returns a loading lease; the indicator hides with the last one.
func (c *Controller) release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.leases--
	if c.leases == 0 {
		c.regions.Loading.Hide()
	}
}

func (c *Controller) finish(gen uint64, name string, out classify.Outcome, uploadErr error) (st State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		logf(name, "discarding response of submission %d, latest is %d", gen, c.generation)
		return Stale
	}

	defer func() {
		if r := recover(); r != nil {
			c.fail(fmt.Errorf("render panic: %v", r), RenderFailedMessage)
			st = c.state
		}
	}()

	if uploadErr != nil {
		logf(name, "upload failed: %v", uploadErr)
		if classify.IsInvalidResult(uploadErr) {
			c.fail(uploadErr, InvalidResultMessage)
		} else {
			c.fail(uploadErr, UploadFailedMessage)
		}
		return c.state
	}

	switch o := out.(type) {
	case classify.Success:
		if err := c.presenter.RenderTable(o.Rows, o.AggressivePercentage); err != nil {
			c.fail(err, RenderFailedMessage)
			return c.state
		}
		if err := c.presenter.RenderPartition(o.AggressivePercentage, o.Contributions); err != nil {
			c.fail(err, RenderFailedMessage)
			return c.state
		}
		c.state = Success
		logf(name, "rendered %d row(s), aggressive %s", len(o.Rows), partition.FormatPercent(o.AggressivePercentage))
	case classify.Failure:
		logf(name, "service reported: %s", o.Message)
		c.presenter.RenderError(o.Message)
		c.state = Error
		c.lastErr = errors.New(o.Message)
	default:
		c.fail(fmt.Errorf("unexpected outcome %T", out), UploadFailedMessage)
	}
	return c.state
}

// fail routes to the error region. A partially rendered success is hidden
// so the error stays the only visible outcome.
func (c *Controller) fail(cause error, message string) {
	logf("", "%v", cause)
	c.regions.Result.Hide()
	c.regions.Chart.Hide()
	c.presenter.RenderError(message)
	c.state = Error
	c.lastErr = cause
}
