package graph

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
)

// TenantInfo identifies the tenant a run is exporting from.
type TenantInfo struct {
	Name string
	ID   string
}

// GetTenantInfo resolves the organization display name and tenant ID via
// the Graph SDK. Callers treat failure as cosmetic; the export itself does
// not depend on it.
func GetTenantInfo(ctx context.Context, cred azcore.TokenCredential) (*TenantInfo, error) {
	graphClient, err := msgraphsdk.NewGraphServiceClientWithCredentials(cred, []string{defaultScope})
	if err != nil {
		return nil, fmt.Errorf("failed to create Graph client: %w", err)
	}

	org, err := graphClient.Organization().Get(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization details: %w", err)
	}

	info := &TenantInfo{Name: "Unknown", ID: "Unknown"}
	if orgValue := org.GetValue(); len(orgValue) > 0 {
		if displayName := orgValue[0].GetDisplayName(); displayName != nil {
			info.Name = *displayName
		}
		if id := orgValue[0].GetId(); id != nil {
			info.ID = *id
		}
	}
	return info, nil
}
