package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vela-sec/vela/pkg/types"
)

func TestSubmitAuditQuery(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1.0/security/auditLog/queries", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"abc123","status":"notStarted","displayName":"Test"}`))
	}))

	req := types.NewAuditQueryRequest("Test")
	req.Service = "Exchange"
	req.Operations = []string{"Set-Mailbox"}

	job, err := client.SubmitAuditQuery(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "abc123", job.ID)
	assert.Equal(t, types.JobStatusNotStarted, job.Status)
	assert.Equal(t, "Test", job.Request.SearchName)

	assert.Equal(t, "Test", gotBody["displayName"])
	assert.Equal(t, "Exchange", gotBody["serviceFilter"])
	assert.Equal(t, []any{"Set-Mailbox"}, gotBody["operationFilters"])
	_, hasKeyword := gotBody["keywordFilter"]
	assert.False(t, hasKeyword, "empty filters must stay off the wire")
}

func TestSubmitAuditQueryValidation(t *testing.T) {
	client := NewClient(fakeCredential{}, nil)

	req := types.NewAuditQueryRequest("Test")
	req.Start = req.End.Add(time.Hour)

	_, err := client.SubmitAuditQuery(context.Background(), req)
	require.Error(t, err, "invalid request must fail before any network call")
}

func TestSubmitAuditQueryServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"BadRequest"}}`, http.StatusBadRequest)
	}))

	_, err := client.SubmitAuditQuery(context.Background(), types.NewAuditQueryRequest("Test"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to submit audit log query")
}

// statusHandler serves a scripted sequence of job statuses, holding the
// last one once the script runs out.
func statusHandler(t *testing.T, jobID string, statuses ...types.JobStatus) http.Handler {
	calls := 0
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.0/security/auditLog/queries/"+jobID, r.URL.Path)
		status := statuses[min(calls, len(statuses)-1)]
		calls++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":%q,"status":%q}`, jobID, status)
	})
}

func TestWaitForCompletion(t *testing.T) {
	fast := &WaitOptions{PollInterval: time.Millisecond, MaxWait: time.Second}

	t.Run("reaches succeeded through the full status sequence", func(t *testing.T) {
		client, _ := newTestClient(t, statusHandler(t, "abc123",
			types.JobStatusNotStarted, types.JobStatusRunning, types.JobStatusSucceeded))

		err := client.WaitForCompletion(context.Background(), "abc123", fast)
		assert.NoError(t, err)
	})

	t.Run("immediate success needs a single poll", func(t *testing.T) {
		client, _ := newTestClient(t, statusHandler(t, "abc123", types.JobStatusSucceeded))
		assert.NoError(t, client.WaitForCompletion(context.Background(), "abc123", fast))
	})

	t.Run("failed status surfaces QueryFailedError", func(t *testing.T) {
		client, _ := newTestClient(t, statusHandler(t, "abc123",
			types.JobStatusRunning, types.JobStatusFailed))

		err := client.WaitForCompletion(context.Background(), "abc123", fast)
		var failed *QueryFailedError
		require.ErrorAs(t, err, &failed)
		assert.Equal(t, "abc123", failed.JobID)
		assert.Equal(t, types.JobStatusFailed, failed.Status)
	})

	t.Run("unrecognized status does not loop forever", func(t *testing.T) {
		client, _ := newTestClient(t, statusHandler(t, "abc123", types.JobStatus("archived")))

		err := client.WaitForCompletion(context.Background(), "abc123", fast)
		var failed *QueryFailedError
		require.ErrorAs(t, err, &failed)
		assert.Equal(t, types.JobStatus("archived"), failed.Status)
	})

	t.Run("times out when the job never finishes", func(t *testing.T) {
		client, _ := newTestClient(t, statusHandler(t, "abc123", types.JobStatusRunning))

		err := client.WaitForCompletion(context.Background(), "abc123", &WaitOptions{
			PollInterval: time.Millisecond,
			MaxWait:      20 * time.Millisecond,
		})
		assert.ErrorIs(t, err, ErrWaitTimeout)
	})

	t.Run("honours context cancellation", func(t *testing.T) {
		client, _ := newTestClient(t, statusHandler(t, "abc123", types.JobStatusRunning))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := client.WaitForCompletion(ctx, "abc123", &WaitOptions{
			PollInterval: 50 * time.Millisecond,
			MaxWait:      time.Second,
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("status fetch failure propagates", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		}))

		err := client.WaitForCompletion(context.Background(), "abc123", fast)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrWaitTimeout))
	})
}

func TestAuditRecordPager(t *testing.T) {
	t.Run("yields the union of a finite nextLink chain", func(t *testing.T) {
		var srvURL string
		mux := http.NewServeMux()
		mux.HandleFunc("/v1.0/security/auditLog/queries/abc123/records", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, `{"value":[{"id":"r3","operation":"op3"}]}`)
				return
			}
			fmt.Fprintf(w, `{"value":[{"id":"r1","operation":"op1"},{"id":"r2","operation":"op2"}],"@odata.nextLink":"%s/v1.0/security/auditLog/queries/abc123/records?page=2"}`, srvURL)
		})

		client, srv := newTestClient(t, mux)
		srvURL = srv.URL

		var ids []string
		pages := 0
		pager := client.NewAuditRecordPager("abc123")
		for pager.More() {
			page, err := pager.NextPage(context.Background())
			require.NoError(t, err)
			pages++
			for _, rec := range page.Value {
				ids = append(ids, rec.ID)
			}
		}

		assert.Equal(t, 2, pages)
		assert.Equal(t, []string{"r1", "r2", "r3"}, ids)
	})

	t.Run("empty result set is zero records, not an error", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"value":[]}`)
		}))

		pager := client.NewAuditRecordPager("abc123")
		total := 0
		for pager.More() {
			page, err := pager.NextPage(context.Background())
			require.NoError(t, err)
			total += len(page.Value)
		}
		assert.Zero(t, total)
	})

	t.Run("page fetch failure propagates", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))

		pager := client.NewAuditRecordPager("abc123")
		_, err := pager.NextPage(context.Background())
		require.Error(t, err)
	})
}
