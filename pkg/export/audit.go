// Package export drives a full query-poll-page-write run against one of the
// supported Graph data sources.
package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vela-sec/vela/internal/message"
	"github.com/vela-sec/vela/pkg/graph"
	"github.com/vela-sec/vela/pkg/outputters"
	"github.com/vela-sec/vela/pkg/types"
	"github.com/vela-sec/vela/pkg/utils"
)

// AuditOptions configures an audit log export.
type AuditOptions struct {
	OutputDir string
	Wait      graph.WaitOptions
	// Filter, when set, is applied to each flattened record; dropped
	// records are not written.
	Filter *utils.JQFilter
}

// AuditSearch submits an audit log query, waits for it to complete, and
// streams every page of records into a single JSON file.
func AuditSearch(ctx context.Context, client *graph.Client, req types.AuditQueryRequest, opts AuditOptions) (*Summary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := outputters.EnsureOutputDir(opts.OutputDir); err != nil {
		return nil, err
	}

	job, err := client.SubmitAuditQuery(ctx, req)
	if err != nil {
		return nil, err
	}
	message.Info("Submitted audit log query %q as job %s", req.SearchName, job.ID)

	if err := client.WaitForCompletion(ctx, job.ID, &opts.Wait); err != nil {
		return nil, err
	}

	path := outputters.TimestampedFilename(opts.OutputDir, req.SearchName+"-UnifiedAuditLog", "json")
	writer, err := outputters.NewJSONStreamWriter(path)
	if err != nil {
		return nil, err
	}

	pager := client.NewAuditRecordPager(job.ID)
	pages := 0
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			writer.Close()
			return nil, fmt.Errorf("failed to fetch audit records page: %w", err)
		}
		pages++

		for _, record := range page.Value {
			out := any(record.Flatten())
			if opts.Filter != nil {
				filtered, keep, err := opts.Filter.Apply(out)
				if err != nil {
					writer.Close()
					return nil, err
				}
				if !keep {
					continue
				}
				out = filtered
			}
			if err := writer.WriteRecord(out); err != nil {
				writer.Close()
				return nil, err
			}
		}
		slog.Debug("wrote audit records page", "page", pages, "records", len(page.Value))
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return &Summary{
		Source:     "unified audit log",
		Records:    writer.Count(),
		Pages:      pages,
		OutputFile: writer.Path(),
	}, nil
}
