package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/vela-sec/vela/pkg/types"
)

const auditQueriesPath = "security/auditLog/queries"

// ErrWaitTimeout is returned when an audit log query does not reach a
// terminal status within the configured maximum wait.
var ErrWaitTimeout = errors.New("timed out waiting for audit log query")

// QueryFailedError reports an audit log query that reached a terminal
// status other than succeeded, or a status this client does not recognize.
type QueryFailedError struct {
	JobID  string
	Status types.JobStatus
}

func (e *QueryFailedError) Error() string {
	return fmt.Sprintf("audit log query %s ended with status %q", e.JobID, e.Status)
}

// auditLogQuery is the wire shape of microsoft.graph.security.auditLogQuery.
type auditLogQuery struct {
	DisplayName              string          `json:"displayName"`
	FilterStartDateTime      time.Time       `json:"filterStartDateTime"`
	FilterEndDateTime        time.Time       `json:"filterEndDateTime"`
	KeywordFilter            string          `json:"keywordFilter,omitempty"`
	ServiceFilter            string          `json:"serviceFilter,omitempty"`
	RecordTypeFilters        []string        `json:"recordTypeFilters,omitempty"`
	OperationFilters         []string        `json:"operationFilters,omitempty"`
	UserPrincipalNameFilters []string        `json:"userPrincipalNameFilters,omitempty"`
	IPAddressFilters         []string        `json:"ipAddressFilters,omitempty"`
	ObjectIDFilters          []string        `json:"objectIdFilters,omitempty"`
	ID                       string          `json:"id,omitempty"`
	Status                   types.JobStatus `json:"status,omitempty"`
}

// SubmitAuditQuery creates an audit log query job on the service. The
// request is validated before anything goes on the wire.
func (c *Client) SubmitAuditQuery(ctx context.Context, req types.AuditQueryRequest) (*types.AuditQueryJob, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := auditLogQuery{
		DisplayName:              req.SearchName,
		FilterStartDateTime:      req.Start.UTC(),
		FilterEndDateTime:        req.End.UTC(),
		KeywordFilter:            req.Keyword,
		ServiceFilter:            req.Service,
		RecordTypeFilters:        req.RecordTypes,
		OperationFilters:         req.Operations,
		UserPrincipalNameFilters: req.UserPrincipalNames,
		IPAddressFilters:         req.IPAddresses,
		ObjectIDFilters:          req.ObjectIDs,
	}

	var created auditLogQuery
	if err := c.post(ctx, runtime.JoinPaths(c.endpoint, auditQueriesPath), body, &created); err != nil {
		return nil, fmt.Errorf("failed to submit audit log query %q: %w", req.SearchName, err)
	}

	return &types.AuditQueryJob{
		ID:      created.ID,
		Status:  created.Status,
		Request: req,
	}, nil
}

// GetAuditQueryStatus fetches the current status of a query job.
func (c *Client) GetAuditQueryStatus(ctx context.Context, jobID string) (types.JobStatus, error) {
	var job auditLogQuery
	u := runtime.JoinPaths(c.endpoint, auditQueriesPath, url.PathEscape(jobID))
	if err := c.get(ctx, u, &job); err != nil {
		return "", fmt.Errorf("failed to get audit log query %s: %w", jobID, err)
	}
	return job.Status, nil
}

// WaitOptions tunes the polling loop.
type WaitOptions struct {
	// PollInterval is the fixed delay between status checks. Defaults to 5s.
	PollInterval time.Duration

	// MaxWait bounds the total wait. Defaults to 30m.
	MaxWait time.Duration
}

const (
	defaultPollInterval = 5 * time.Second
	defaultMaxWait      = 30 * time.Minute
)

// WaitForCompletion polls the job at a fixed interval until it succeeds.
// Status is logged only when it changes. A failed, cancelled, or
// unrecognized status ends the wait with a *QueryFailedError rather than
// polling forever; exceeding MaxWait surfaces ErrWaitTimeout.
func (c *Client) WaitForCompletion(ctx context.Context, jobID string, opts *WaitOptions) error {
	interval := defaultPollInterval
	maxWait := defaultMaxWait
	if opts != nil {
		if opts.PollInterval > 0 {
			interval = opts.PollInterval
		}
		if opts.MaxWait > 0 {
			maxWait = opts.MaxWait
		}
	}

	deadline := time.Now().Add(maxWait)
	var last types.JobStatus

	for {
		status, err := c.GetAuditQueryStatus(ctx, jobID)
		if err != nil {
			return err
		}

		if status != last {
			slog.Info("audit log query status changed", "job", jobID, "status", status)
			last = status
		}

		switch status {
		case types.JobStatusSucceeded:
			return nil
		case types.JobStatusNotStarted, types.JobStatusRunning:
			// keep polling
		default:
			return &QueryFailedError{JobID: jobID, Status: status}
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("%w %s after %s", ErrWaitTimeout, jobID, maxWait)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// NewAuditRecordPager pages through the records of a completed query.
func (c *Client) NewAuditRecordPager(jobID string) *runtime.Pager[Page[types.AuditRecord]] {
	u := runtime.JoinPaths(c.endpoint, auditQueriesPath, url.PathEscape(jobID), "records")
	return newListPager[types.AuditRecord](c, u)
}
