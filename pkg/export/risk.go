package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vela-sec/vela/internal/message"
	"github.com/vela-sec/vela/pkg/graph"
	"github.com/vela-sec/vela/pkg/outputters"
	"github.com/vela-sec/vela/pkg/types"
)

// RiskOptions configures a risky-user or risk-detection export.
type RiskOptions struct {
	OutputDir string
	// UserIDs limits a risky-user export to specific users. A failed lookup
	// is logged and skipped; it does not abort the rest of the run.
	UserIDs []string
}

// RiskyUsers exports risky users to CSV. With UserIDs set it looks each
// user up individually, otherwise it pages through the whole tenant.
func RiskyUsers(ctx context.Context, client *graph.Client, opts RiskOptions) (*Summary, error) {
	if err := outputters.EnsureOutputDir(opts.OutputDir); err != nil {
		return nil, err
	}

	path := outputters.TimestampedFilename(opts.OutputDir, "RiskyUsers", "csv")
	writer, err := outputters.NewCSVStreamWriter(path, types.RiskyUser{}.CSVHeader())
	if err != nil {
		return nil, err
	}

	summary := &Summary{Source: "risky users", OutputFile: path}

	if len(opts.UserIDs) > 0 {
		for _, id := range opts.UserIDs {
			user, err := client.GetRiskyUser(ctx, id)
			if err != nil {
				// One bad identifier must not sink the other lookups.
				slog.Warn("risky user lookup failed", "user", id, "error", err)
				message.Warning("Skipping user %s: %v", id, err)
				summary.Failures++
				continue
			}
			if err := writer.WriteRow(user.CSVRow()); err != nil {
				writer.Close()
				return nil, err
			}
		}
		if err := writer.Flush(); err != nil {
			writer.Close()
			return nil, err
		}
	} else {
		pager := client.NewRiskyUserPager()
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				writer.Close()
				return nil, fmt.Errorf("failed to fetch risky users page: %w", err)
			}
			summary.Pages++
			for _, user := range page.Value {
				if err := writer.WriteRow(user.CSVRow()); err != nil {
					writer.Close()
					return nil, err
				}
			}
			if err := writer.Flush(); err != nil {
				writer.Close()
				return nil, err
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	summary.Records = writer.Count()
	return summary, nil
}

// RiskDetections exports every risk detection in the tenant to CSV,
// flattening the nested location object along the way.
func RiskDetections(ctx context.Context, client *graph.Client, opts RiskOptions) (*Summary, error) {
	if err := outputters.EnsureOutputDir(opts.OutputDir); err != nil {
		return nil, err
	}

	path := outputters.TimestampedFilename(opts.OutputDir, "RiskyDetections", "csv")
	writer, err := outputters.NewCSVStreamWriter(path, types.FlatRiskDetection{}.CSVHeader())
	if err != nil {
		return nil, err
	}

	summary := &Summary{Source: "risk detections", OutputFile: path}

	pager := client.NewRiskDetectionPager()
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			writer.Close()
			return nil, fmt.Errorf("failed to fetch risk detections page: %w", err)
		}
		summary.Pages++
		for _, detection := range page.Value {
			if err := writer.WriteRow(detection.Flatten().CSVRow()); err != nil {
				writer.Close()
				return nil, err
			}
		}
		if err := writer.Flush(); err != nil {
			writer.Close()
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	summary.Records = writer.Count()
	return summary, nil
}
