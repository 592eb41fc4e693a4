package cmd

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/vela-sec/vela/internal/message"
	"github.com/vela-sec/vela/pkg/graph"
)

// newGraphClient authenticates with DefaultAzureCredential and announces
// which tenant the run is exporting from. Tenant resolution failing is not
// fatal; the export works without it.
func newGraphClient(ctx context.Context) (*graph.Client, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get Azure credentials: %w", err)
	}

	client := graph.NewClient(cred, nil)

	if info, err := graph.GetTenantInfo(ctx, cred); err != nil {
		message.Warning("Could not resolve tenant details: %v", err)
	} else {
		message.Info("Tenant: %s (%s)", info.Name, info.ID)
	}

	return client, nil
}
