package convert

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sacsbrainz/betconverter/internal/catalog"
	"github.com/sacsbrainz/betconverter/internal/metrics"
	"github.com/sacsbrainz/betconverter/internal/models"
)

// Converter sends one conversion request.
type Converter interface {
	Convert(ctx context.Context, r models.ConversionRequest) (*models.ConversionResponse, error)
}

// State is the submission state of a Form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	// ErrSubmissionInFlight is returned while another submission is running.
	ErrSubmissionInFlight = errors.New("a conversion is already in progress")

	// ErrSourceDisabled is returned when a bookmaker cannot be a source.
	ErrSourceDisabled = errors.New("bookmaker cannot be used as a conversion source")

	// ErrDestinationDisabled is returned when a bookmaker cannot be a destination.
	ErrDestinationDisabled = errors.New("bookmaker cannot be used as a conversion destination")

	// ErrNoResult is returned when there is no converted code to copy.
	ErrNoResult = errors.New("no converted code yet")
)

// ValidationError is a local check that failed before any request was sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConversionError is a failed submission, already classified.
type ConversionError struct {
	// Message is the text shown to the user.
	Message string
	Kind    models.ErrorKind
	cause   error
}

func (e *ConversionError) Error() string {
	return e.Message
}

func (e *ConversionError) Unwrap() error {
	return e.cause
}

// Validation messages.
const (
	msgSameBookie  = "You can't convert to the same bookie"
	msgMissingCode = "kindly input the booking code"
	msgNoSource    = "kindly select code source"
)

// Form holds the state of one user's conversion form. It is safe for
// concurrent use; only one submission runs at a time.
type Form struct {
	api     Converter
	notify  Notifier
	logger  *zap.Logger
	metrics *metrics.Client

	loading atomic.Bool

	mu          sync.Mutex
	code        string
	input       catalog.Bookmaker
	output      catalog.Bookmaker
	forceRemove bool
	result      *models.ConversionResult
	state       State
	lastError   string
}

// FormOption customises a Form.
type FormOption func(*Form)

// WithMetrics records submissions on m.
func WithMetrics(m *metrics.Client) FormOption {
	return func(f *Form) {
		f.metrics = m
	}
}

func NewForm(api Converter, notify Notifier, logger *zap.Logger, opts ...FormOption) *Form {
	f := &Form{
		api:    api,
		notify: notify,
		logger: logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetCode sets the booking code, trimming surrounding whitespace.
func (f *Form) SetCode(code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.code = strings.TrimSpace(code)
}

// SelectInput chooses the source bookmaker. The stored copy has its
// disabled flags cleared, as they are not meaningful in a request.
func (f *Form) SelectInput(b catalog.Bookmaker) error {
	if b.InputDisabled {
		return ErrSourceDisabled
	}

	b.InputDisabled, b.OutputDisabled = false, false

	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = b
	return nil
}

// SelectOutput chooses the destination bookmaker.
func (f *Form) SelectOutput(b catalog.Bookmaker) error {
	if b.OutputDisabled {
		return ErrDestinationDisabled
	}

	b.InputDisabled, b.OutputDisabled = false, false

	f.mu.Lock()
	defer f.mu.Unlock()
	f.output = b
	return nil
}

// Input returns the selected source.
func (f *Form) Input() catalog.Bookmaker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// Output returns the selected destination.
func (f *Form) Output() catalog.Bookmaker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.output
}

// ForceRemove reports whether the next Submit will ask the engine to drop
// unavailable markets. It is set after a "markets not available" failure
// and cleared by a successful conversion.
func (f *Form) ForceRemove() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.forceRemove
}

// IsLoading reports whether a submission is in flight.
func (f *Form) IsLoading() bool {
	return f.loading.Load()
}

// State returns the current submission state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Result returns the last successful conversion, or nil.
func (f *Form) Result() *models.ConversionResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.result == nil {
		return nil
	}
	r := *f.result
	return &r
}

// LastError returns the message of the last failed submission.
func (f *Form) LastError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastError
}

// Validate runs the local checks in order and stops at the first failure.
// The returned advisory, if not empty, never blocks submission.
func (f *Form) Validate() (advisory string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() (string, error) {
	if f.input.Same(f.output) {
		return "", &ValidationError{Message: msgSameBookie}
	}
	if len(f.code) < 1 {
		return "", &ValidationError{Message: msgMissingCode}
	}
	if len(f.input.CountryShortCode) < 1 || len(f.output.CountryShortCode) < 1 {
		return "", &ValidationError{Message: msgNoSource}
	}
	if f.input.Name == "stake" {
		return fmt.Sprintf("Note: This may take a bit longer and a few games may not be converted because they are not available on %s", f.output.Name), nil
	}
	return "", nil
}

// Submit validates the form and sends it. The remove flag follows the
// pending force-remove state.
func (f *Form) Submit(ctx context.Context) (*models.ConversionResult, error) {
	return f.submit(ctx, false)
}

// SubmitWithRemove validates the form and sends it with remove set, asking
// the engine to drop the markets the destination lacks.
func (f *Form) SubmitWithRemove(ctx context.Context) (*models.ConversionResult, error) {
	return f.submit(ctx, true)
}

func (f *Form) submit(ctx context.Context, remove bool) (*models.ConversionResult, error) {
	if !f.loading.CompareAndSwap(false, true) {
		f.metrics.IncSubmission(metrics.OutcomeBusy)
		return nil, ErrSubmissionInFlight
	}
	defer f.loading.Store(false)

	f.mu.Lock()
	advisory, err := f.validateLocked()
	if err != nil {
		f.mu.Unlock()
		f.metrics.IncSubmission(metrics.OutcomeRejected)
		f.notify.Error(err.Error())
		return nil, err
	}

	req := models.ConversionRequest{
		Code:   f.code,
		Input:  f.input,
		Output: f.output,
		Remove: remove || f.forceRemove,
	}
	f.setStateLocked(StateSubmitting)
	f.mu.Unlock()

	if advisory != "" {
		f.notify.Info(advisory)
	}

	id := uuid.NewString()
	f.logger.Info("submitting conversion",
		zap.String("submission", id),
		zap.String("from", req.Input.Label()),
		zap.String("to", req.Output.Label()),
		zap.Bool("remove", req.Remove),
	)

	res, err := f.api.Convert(ctx, req)

	if err != nil {
		msg, kind := Classify(err)
		f.logger.Info("conversion failed", zap.String("submission", id), zap.String("kind", string(kind)), zap.Error(err))
		return nil, f.fail(&ConversionError{Message: msg, Kind: kind, cause: err})
	}

	if res.Message != models.MessageSuccess {
		return nil, f.fail(&ConversionError{Message: res.Message, Kind: models.KindUnknown})
	}

	result := res.Data

	f.mu.Lock()
	f.result = &result
	f.forceRemove = false
	f.lastError = ""
	f.setStateLocked(StateSuccess)
	f.mu.Unlock()

	f.metrics.IncSubmission(metrics.OutcomeSuccess)
	f.logger.Info("conversion succeeded", zap.String("submission", id), zap.String("shareCode", result.ShareCode))

	return &result, nil
}

// fail records the failure, returns the form to idle and then notifies the
// user. The notifier runs without f.mu held.
func (f *Form) fail(err *ConversionError) error {
	f.mu.Lock()
	if err.Kind == models.KindMarketsUnavailable {
		f.forceRemove = true
	}
	f.setStateLocked(StateFailed)
	f.lastError = err.Message
	f.setStateLocked(StateIdle)
	f.mu.Unlock()

	f.metrics.IncSubmission(metrics.OutcomeFailed)
	f.notify.Error(err.Message)
	return err
}

func (f *Form) setStateLocked(s State) {
	f.logger.Debug("form state", zap.Stringer("from", f.state), zap.Stringer("to", s))
	f.state = s
}

// CopyLink returns the share link of the last successful conversion.
func (f *Form) CopyLink() (string, error) {
	f.mu.Lock()
	if f.result == nil {
		f.mu.Unlock()
		return "", ErrNoResult
	}
	link := ShareLink(*f.result, f.output)
	f.mu.Unlock()

	f.notify.Success("Copied to clipboard")
	return link, nil
}
