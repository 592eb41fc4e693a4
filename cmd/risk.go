package cmd

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vela-sec/vela/internal/message"
	"github.com/vela-sec/vela/pkg/export"
	o "github.com/vela-sec/vela/pkg/options"
	"github.com/vela-sec/vela/pkg/types"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Identity protection commands",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
		os.Exit(1)
	},
}

var riskUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Export risky users to CSV",
	Run:   runRiskUsers,
}

var riskDetectionsCmd = &cobra.Command{
	Use:   "detections",
	Short: "Export risk detections to CSV",
	Run:   runRiskDetections,
}

var riskUsersOptions = []*types.Option{
	&o.RiskyUserIDsOpt,
}

func init() {
	options2Flag(riskUsersOptions, riskUsersCmd)
	riskCmd.AddCommand(riskUsersCmd)
	riskCmd.AddCommand(riskDetectionsCmd)
	rootCmd.AddCommand(riskCmd)
}

func runRiskUsers(cmd *cobra.Command, args []string) {
	start := time.Now()
	message.Banner()

	opts := getOpts(cmd, riskUsersOptions)

	ctx := context.Background()
	client, err := newGraphClient(ctx)
	if err != nil {
		fatal(err)
	}

	summary, err := export.RiskyUsers(ctx, client, export.RiskOptions{
		OutputDir: optValue(opts, o.OutputOpt.Name),
		UserIDs:   o.SplitList(optValue(opts, o.RiskyUserIDsOpt.Name)),
	})
	if err != nil {
		fatal(err)
	}

	export.Report(start, summary)
}

func runRiskDetections(cmd *cobra.Command, args []string) {
	start := time.Now()
	message.Banner()

	opts := getOpts(cmd, nil)

	ctx := context.Background()
	client, err := newGraphClient(ctx)
	if err != nil {
		fatal(err)
	}

	summary, err := export.RiskDetections(ctx, client, export.RiskOptions{
		OutputDir: optValue(opts, o.OutputOpt.Name),
	})
	if err != nil {
		fatal(err)
	}

	export.Report(start, summary)
}
