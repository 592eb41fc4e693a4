package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vela-sec/vela/internal/message"
	"github.com/vela-sec/vela/pkg/export"
	"github.com/vela-sec/vela/pkg/graph"
	o "github.com/vela-sec/vela/pkg/options"
	"github.com/vela-sec/vela/pkg/types"
	"github.com/vela-sec/vela/pkg/utils"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Unified audit log commands",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(1)
	},
}

var auditSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the unified audit log and export the records to JSON",
	Long: `Creates an audit log query, waits for the service to finish running it,
then pages through the results and writes each flattened record into a
single timestamped JSON file.`,
	Run: runAuditSearch,
}

var auditSearchOptions = []*types.Option{
	&o.SearchNameOpt,
	&o.StartTimeOpt,
	&o.EndTimeOpt,
	&o.KeywordOpt,
	&o.ServiceOpt,
	&o.RecordTypesOpt,
	&o.OperationsOpt,
	&o.UserFilterOpt,
	&o.IPAddressesOpt,
	&o.ObjectIDsOpt,
	&o.PollIntervalOpt,
	&o.MaxWaitOpt,
	&o.JQOpt,
}

func init() {
	options2Flag(auditSearchOptions, auditSearchCmd)
	auditCmd.AddCommand(auditSearchCmd)
	rootCmd.AddCommand(auditCmd)
}

func runAuditSearch(cmd *cobra.Command, args []string) {
	start := time.Now()
	message.Banner()

	opts := getOpts(cmd, auditSearchOptions)

	req, err := buildAuditRequest(opts)
	if err != nil {
		fatal(err)
	}

	exportOpts := export.AuditOptions{
		OutputDir: optValue(opts, o.OutputOpt.Name),
		Wait: graph.WaitOptions{
			PollInterval: time.Duration(optInt(opts, o.PollIntervalOpt.Name)) * time.Second,
			MaxWait:      time.Duration(optInt(opts, o.MaxWaitOpt.Name)) * time.Minute,
		},
	}

	if program := optValue(opts, o.JQOpt.Name); program != "" {
		filter, err := utils.NewJQFilter(program)
		if err != nil {
			fatal(err)
		}
		exportOpts.Filter = filter
	}

	ctx := context.Background()
	client, err := newGraphClient(ctx)
	if err != nil {
		fatal(err)
	}

	summary, err := export.AuditSearch(ctx, client, req, exportOpts)
	if err != nil {
		fatal(err)
	}

	export.Report(start, summary)
}

func buildAuditRequest(opts []*types.Option) (types.AuditQueryRequest, error) {
	req := types.NewAuditQueryRequest(optValue(opts, o.SearchNameOpt.Name))

	if s := optValue(opts, o.StartTimeOpt.Name); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return req, fmt.Errorf("invalid start time %q: %w", s, err)
		}
		req.Start = t
	}
	if s := optValue(opts, o.EndTimeOpt.Name); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return req, fmt.Errorf("invalid end time %q: %w", s, err)
		}
		req.End = t
	}

	req.Keyword = optValue(opts, o.KeywordOpt.Name)
	req.Service = optValue(opts, o.ServiceOpt.Name)
	req.RecordTypes = o.SplitList(optValue(opts, o.RecordTypesOpt.Name))
	req.Operations = o.SplitList(optValue(opts, o.OperationsOpt.Name))
	req.UserPrincipalNames = o.SplitList(optValue(opts, o.UserFilterOpt.Name))
	req.IPAddresses = o.SplitList(optValue(opts, o.IPAddressesOpt.Name))
	req.ObjectIDs = o.SplitList(optValue(opts, o.ObjectIDsOpt.Name))

	return req, req.Validate()
}
