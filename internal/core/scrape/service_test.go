package scrape

import (
	"context"
	"errors"
	"testing"

	"linkedin-insights/internal/core/extract"
	"linkedin-insights/internal/core/fetch"
	"linkedin-insights/internal/core/scrapelog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls int
	page  *fetch.RenderedPage
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*fetch.RenderedPage, error) {
	f.calls++
	return f.page, f.err
}

type fakeRecorder struct {
	inserted []*scrapelog.Result
	err      error
}

func (r *fakeRecorder) Insert(ctx context.Context, res *scrapelog.Result) (string, error) {
	// Copy so later mutation by the service is visible in the test.
	snapshot := *res
	r.inserted = append(r.inserted, &snapshot)
	if r.err != nil {
		return "", r.err
	}
	return "log-1", nil
}

const companyHTML = `<html><body>
<h1 class="org-top-card-summary__title">Acme Corp</h1>
<div class="org-top-card-summary-info-list__info-item">Software Development</div>
</body></html>`

func TestRunRejectsUnknownType(t *testing.T) {
	fetcher := &fakeFetcher{}
	recorder := &fakeRecorder{}
	svc := NewService(fetcher, recorder, nil)

	res, err := svc.Run(context.Background(), Request{URL: "https://www.linkedin.com/company/acme", Type: "organization"})
	assert.Nil(t, res)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, UnknownType, reqErr.Kind)
	// Rejection happens before any resource is touched.
	assert.Zero(t, fetcher.calls)
	assert.Empty(t, recorder.inserted)
}

func TestRunRejectsMalformedURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "/company/acme", "ftp://example.com/x"} {
		fetcher := &fakeFetcher{}
		recorder := &fakeRecorder{}
		svc := NewService(fetcher, recorder, nil)

		res, err := svc.Run(context.Background(), Request{URL: raw, Type: extract.PageCompany})
		assert.Nil(t, res, "url %q", raw)

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr, "url %q", raw)
		assert.Equal(t, MalformedURL, reqErr.Kind)
		assert.Zero(t, fetcher.calls)
		assert.Empty(t, recorder.inserted)
	}
}

func TestRunFetchTimeoutIsRecordedAsFailed(t *testing.T) {
	fetcher := &fakeFetcher{err: &fetch.Error{Kind: fetch.KindTimeout, URL: "https://www.linkedin.com/company/acme", Err: errors.New("page load exceeded deadline")}}
	recorder := &fakeRecorder{}
	svc := NewService(fetcher, recorder, nil)

	res, err := svc.Run(context.Background(), Request{URL: "https://www.linkedin.com/company/acme", Type: extract.PageCompany})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, scrapelog.StatusFailed, res.Status)
	assert.Contains(t, res.FailureReason, "timeout")
	assert.Nil(t, res.Record)
	assert.Equal(t, "log-1", res.ID)

	// Exactly one log entry, even for a failed attempt.
	require.Len(t, recorder.inserted, 1)
	assert.Equal(t, scrapelog.StatusFailed, recorder.inserted[0].Status)
}

func TestRunAuthRejectedIsRecordedAsFailed(t *testing.T) {
	fetcher := &fakeFetcher{err: &fetch.Error{Kind: fetch.KindAuthRejected, URL: "https://www.linkedin.com/in/jane"}}
	recorder := &fakeRecorder{}
	svc := NewService(fetcher, recorder, nil)

	res, err := svc.Run(context.Background(), Request{URL: "https://www.linkedin.com/in/jane", Type: extract.PageProfile})
	require.NoError(t, err)
	assert.Equal(t, scrapelog.StatusFailed, res.Status)
	assert.Contains(t, res.FailureReason, "auth_rejected")
	require.Len(t, recorder.inserted, 1)
}

func TestRunPartialExtraction(t *testing.T) {
	fetcher := &fakeFetcher{page: &fetch.RenderedPage{URL: "https://www.linkedin.com/company/acme", HTML: companyHTML}}
	recorder := &fakeRecorder{}
	svc := NewService(fetcher, recorder, nil)

	res, err := svc.Run(context.Background(), Request{URL: "https://www.linkedin.com/company/acme", Type: extract.PageCompany})
	require.NoError(t, err)

	assert.Equal(t, scrapelog.StatusPartial, res.Status)
	require.NotNil(t, res.Record)
	require.NotNil(t, res.Record.Company)
	assert.Equal(t, "Acme Corp", res.Record.Company.Name)
	assert.NotEmpty(t, res.FieldErrors)
	assert.Empty(t, res.FailureReason)
	require.Len(t, recorder.inserted, 1)
}

func TestRunIncludeContent(t *testing.T) {
	fetcher := &fakeFetcher{page: &fetch.RenderedPage{URL: "https://www.linkedin.com/company/acme", HTML: companyHTML}}
	recorder := &fakeRecorder{}
	svc := NewService(fetcher, recorder, nil)

	res, err := svc.Run(context.Background(), Request{
		URL:            "https://www.linkedin.com/company/acme",
		Type:           extract.PageCompany,
		IncludeContent: true,
	})
	require.NoError(t, err)
	assert.Contains(t, res.ContentMarkdown, "Acme Corp")
}

func TestRunRecordErrorStillReturnsResult(t *testing.T) {
	fetcher := &fakeFetcher{page: &fetch.RenderedPage{URL: "https://www.linkedin.com/company/acme", HTML: companyHTML}}
	recorder := &fakeRecorder{err: &scrapelog.RecordError{Kind: scrapelog.StoreUnreachable, Err: errors.New("connection refused")}}
	svc := NewService(fetcher, recorder, nil)

	res, err := svc.Run(context.Background(), Request{URL: "https://www.linkedin.com/company/acme", Type: extract.PageCompany})

	// The computed outcome survives the persistence failure.
	require.NotNil(t, res)
	assert.Equal(t, scrapelog.StatusPartial, res.Status)
	assert.Empty(t, res.ID)

	var recErr *scrapelog.RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, scrapelog.StoreUnreachable, recErr.Kind)
}

func TestRunRecordsWithDetachedContext(t *testing.T) {
	fetcher := &fakeFetcher{page: &fetch.RenderedPage{URL: "https://www.linkedin.com/company/acme", HTML: companyHTML}}
	recorder := &fakeRecorder{}
	svc := NewService(fetcher, recorder, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := svc.Run(ctx, Request{URL: "https://www.linkedin.com/company/acme", Type: extract.PageCompany})
	require.NoError(t, err)
	assert.Equal(t, "log-1", res.ID)
	require.Len(t, recorder.inserted, 1)
}
