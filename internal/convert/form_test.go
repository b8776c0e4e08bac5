package convert_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/sacsbrainz/betconverter/internal/catalog"
	"github.com/sacsbrainz/betconverter/internal/convert"
	"github.com/sacsbrainz/betconverter/internal/metrics"
	"github.com/sacsbrainz/betconverter/internal/mocks"
	"github.com/sacsbrainz/betconverter/internal/models"
)

type notice struct {
	level string
	text  string
}

type recorder struct {
	mu      sync.Mutex
	notices []notice
}

func (r *recorder) add(level, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice{level, text})
}

func (r *recorder) Info(msg string)    { r.add("info", msg) }
func (r *recorder) Error(msg string)   { r.add("error", msg) }
func (r *recorder) Success(msg string) { r.add("success", msg) }

func (r *recorder) all() []notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notice(nil), r.notices...)
}

func newForm(t *testing.T, opts ...convert.FormOption) (*convert.Form, *mocks.MockConverter, *recorder) {
	t.Helper()
	api := mocks.NewMockConverter(gomock.NewController(t))
	rec := &recorder{}
	return convert.NewForm(api, rec, zap.NewNop(), opts...), api, rec
}

func fill(t *testing.T, f *convert.Form, code string, in, out catalog.Bookmaker) {
	t.Helper()
	f.SetCode(code)
	require.NoError(t, f.SelectInput(in))
	require.NoError(t, f.SelectOutput(out))
}

func success(code string) *models.ConversionResponse {
	return &models.ConversionResponse{
		Message: models.MessageSuccess,
		Data:    models.ConversionResult{ShareCode: code, ShareURL: "https://engine.example/" + code},
	}
}

func TestForm_Validate(t *testing.T) {
	tests := []struct {
		name string
		code string
		in   catalog.Bookmaker
		out  catalog.Bookmaker
		want string
	}{
		{name: "nothing selected", code: "", want: "You can't convert to the same bookie"},
		{name: "same bookie", code: "BC1", in: sportyNG, out: sportyNG, want: "You can't convert to the same bookie"},
		{name: "same bookie checked before code", code: "", in: msportGH, out: msportGH, want: "You can't convert to the same bookie"},
		{name: "empty code", code: "   ", in: sportyNG, out: msportGH, want: "kindly input the booking code"},
		{name: "no source", code: "BC1", out: msportGH, want: "kindly select code source"},
		{name: "no destination", code: "BC1", in: sportyNG, want: "kindly select code source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _, rec := newForm(t)
			fill(t, f, tt.code, tt.in, tt.out)

			_, err := f.Validate()
			var ve *convert.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.want, ve.Message)

			_, err = f.Submit(context.Background())
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, []notice{{"error", tt.want}}, rec.all())
			assert.Equal(t, convert.StateIdle, f.State())
			assert.False(t, f.IsLoading())
		})
	}
}

func TestForm_SameBookieIgnoresShortCode(t *testing.T) {
	f, _, _ := newForm(t)
	brazil := catalog.Bookmaker{Name: "sportybet", Country: "Brazil", CountryShortCode: "int"}
	intl := catalog.Bookmaker{Name: "sportybet", Country: "International", CountryShortCode: "int"}
	fill(t, f, "BC1", brazil, intl)

	advisory, err := f.Validate()
	require.NoError(t, err)
	assert.Empty(t, advisory)
}

func TestForm_StakeAdvisory(t *testing.T) {
	f, api, rec := newForm(t)
	f.SetCode("ST1")
	require.NoError(t, f.SelectInput(stake))
	require.NoError(t, f.SelectOutput(msportGH))

	advisory, err := f.Validate()
	require.NoError(t, err)
	assert.Equal(t, "Note: This may take a bit longer and a few games may not be converted because they are not available on msport", advisory)

	api.EXPECT().Convert(gomock.Any(), gomock.Any()).Return(success("X"), nil)

	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, notice{"info", advisory}, rec.all()[0])
}

func TestForm_Selection(t *testing.T) {
	f, _, _ := newForm(t)

	require.ErrorIs(t, f.SelectOutput(stake), convert.ErrDestinationDisabled)
	require.ErrorIs(t, f.SelectInput(catalog.Bookmaker{Name: "x", Country: "y", CountryShortCode: "z", InputDisabled: true}), convert.ErrSourceDisabled)

	require.NoError(t, f.SelectInput(stake))
	assert.False(t, f.Input().OutputDisabled)
	assert.Equal(t, "stake", f.Input().Name)
	assert.Equal(t, catalog.Bookmaker{}, f.Output())
}

func TestForm_Submit_Success(t *testing.T) {
	m := metrics.NewClient()
	f, api, rec := newForm(t, convert.WithMetrics(m))
	fill(t, f, " BC123 ", sportyNG, msportNG)

	api.EXPECT().Convert(gomock.Any(), models.ConversionRequest{Code: "BC123", Input: sportyNG, Output: msportNG}).
		DoAndReturn(func(context.Context, models.ConversionRequest) (*models.ConversionResponse, error) {
			assert.True(t, f.IsLoading())
			return success("ABC123"), nil
		})

	res, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ABC123", res.ShareCode)
	assert.Equal(t, convert.StateSuccess, f.State())
	assert.False(t, f.IsLoading())
	assert.Equal(t, "ABC123", f.Result().ShareCode)
	assert.Empty(t, rec.all())

	link, err := f.CopyLink()
	require.NoError(t, err)
	assert.Equal(t, "https://www.msport.com/ng?code=ABC123", link)
	assert.Equal(t, []notice{{"success", "Copied to clipboard"}}, rec.all())

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.OutcomeSuccess)))
}

func TestForm_CopyLink_NoResult(t *testing.T) {
	f, _, rec := newForm(t)

	_, err := f.CopyLink()
	require.ErrorIs(t, err, convert.ErrNoResult)
	assert.Empty(t, rec.all())
}

func TestForm_CopyLink_OtherBookmaker(t *testing.T) {
	f, api, _ := newForm(t)
	fill(t, f, "BC1", msportGH, footNG)

	api.EXPECT().Convert(gomock.Any(), gomock.Any()).Return(success("F1"), nil)

	_, err := f.Submit(context.Background())
	require.NoError(t, err)

	link, err := f.CopyLink()
	require.NoError(t, err)
	assert.Equal(t, "https://engine.example/F1", link)
}

func TestForm_Submit_BusinessFailure(t *testing.T) {
	m := metrics.NewClient()
	f, api, rec := newForm(t, convert.WithMetrics(m))
	fill(t, f, "BC1", sportyNG, msportGH)

	api.EXPECT().Convert(gomock.Any(), gomock.Any()).Return(&models.ConversionResponse{Message: "booking code expired"}, nil)

	_, err := f.Submit(context.Background())

	var ce *convert.ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "booking code expired", ce.Message)
	assert.Equal(t, convert.StateIdle, f.State())
	assert.Equal(t, "booking code expired", f.LastError())
	assert.Nil(t, f.Result())
	assert.Equal(t, []notice{{"error", "booking code expired"}}, rec.all())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.OutcomeFailed)))
}

func TestForm_MarketsUnavailable_RetryRemoves(t *testing.T) {
	f, api, rec := newForm(t)
	fill(t, f, "BC1", sportyNG, msportGH)

	apiErr := &convert.APIError{StatusCode: 400, Message: "error", Err: "Some markets are not available: Arsenal vs Chelsea"}

	gomock.InOrder(
		api.EXPECT().Convert(gomock.Any(), models.ConversionRequest{Code: "BC1", Input: sportyNG, Output: msportGH}).Return(nil, apiErr),
		api.EXPECT().Convert(gomock.Any(), models.ConversionRequest{Code: "BC1", Input: sportyNG, Output: msportGH, Remove: true}).Return(success("R1"), nil),
		api.EXPECT().Convert(gomock.Any(), models.ConversionRequest{Code: "BC1", Input: sportyNG, Output: msportGH}).Return(success("R2"), nil),
	)

	_, err := f.Submit(context.Background())

	var ce *convert.ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, models.KindMarketsUnavailable, ce.Kind)
	assert.ErrorIs(t, err, apiErr)
	assert.True(t, f.ForceRemove())
	assert.Equal(t, []notice{{"error", "Some markets are not available: Arsenal vs Chelsea"}}, rec.all())

	res, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "R1", res.ShareCode)
	assert.False(t, f.ForceRemove())

	res, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "R2", res.ShareCode)
}

func TestForm_SubmitWithRemove(t *testing.T) {
	f, api, _ := newForm(t)
	fill(t, f, "BC1", sportyNG, msportGH)

	var sent models.ConversionRequest
	api.EXPECT().Convert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r models.ConversionRequest) (*models.ConversionResponse, error) {
		sent = r
		return success("W1"), nil
	})

	res, err := f.SubmitWithRemove(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "W1", res.ShareCode)
	assert.True(t, sent.Remove)
	assert.False(t, f.ForceRemove())
}

func TestForm_NoMarketHint(t *testing.T) {
	f, api, rec := newForm(t)
	fill(t, f, "BC1", sportyNG, footNG)

	api.EXPECT().Convert(gomock.Any(), gomock.Any()).Return(nil, &convert.APIError{StatusCode: 400, Err: "invalid event data, no market there"})

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, rec.all()[0].text, "consider converting to msport first")
	assert.False(t, f.ForceRemove())
}

func TestForm_SingleFlight(t *testing.T) {
	m := metrics.NewClient()
	f, api, _ := newForm(t, convert.WithMetrics(m))
	fill(t, f, "BC1", sportyNG, msportGH)

	entered := make(chan struct{})
	release := make(chan struct{})

	api.EXPECT().Convert(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, models.ConversionRequest) (*models.ConversionResponse, error) {
		close(entered)
		<-release
		return success("S1"), nil
	}).Times(1)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()

	<-entered
	assert.True(t, f.IsLoading())
	assert.Equal(t, convert.StateSubmitting, f.State())

	_, err := f.Submit(context.Background())
	require.ErrorIs(t, err, convert.ErrSubmissionInFlight)
	_, err = f.SubmitWithRemove(context.Background())
	require.ErrorIs(t, err, convert.ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, f.IsLoading())
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Submissions.WithLabelValues(metrics.OutcomeBusy)))
}

// formReader reads the form back from inside every notice, the way a UI
// refreshes itself when a toast appears.
type formReader struct {
	form   *convert.Form
	states []convert.State
}

func (r *formReader) Info(string) { r.states = append(r.states, r.form.State()) }

func (r *formReader) Error(string) {
	r.states = append(r.states, r.form.State())
	_ = r.form.LastError()
}

func (r *formReader) Success(string) {
	r.states = append(r.states, r.form.State())
	_ = r.form.Result()
}

func TestForm_NotifierMayReadForm(t *testing.T) {
	api := mocks.NewMockConverter(gomock.NewController(t))
	reader := &formReader{}
	f := convert.NewForm(api, reader, zap.NewNop())
	reader.form = f
	fill(t, f, "BC1", sportyNG, msportGH)

	gomock.InOrder(
		api.EXPECT().Convert(gomock.Any(), gomock.Any()).Return(&models.ConversionResponse{Message: "booking code expired"}, nil),
		api.EXPECT().Convert(gomock.Any(), gomock.Any()).Return(success("N1"), nil),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.Submit(context.Background())
		_, _ = f.Submit(context.Background())
		_, _ = f.CopyLink()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier blocked on the form lock")
	}

	assert.Equal(t, []convert.State{convert.StateIdle, convert.StateSuccess}, reader.states)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", convert.StateIdle.String())
	assert.Equal(t, "submitting", convert.StateSubmitting.String())
	assert.Equal(t, "success", convert.StateSuccess.String())
	assert.Equal(t, "failed", convert.StateFailed.String())
	assert.Equal(t, "state(9)", convert.State(9).String())
}
