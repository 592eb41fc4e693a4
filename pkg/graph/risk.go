package graph

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/vela-sec/vela/pkg/types"
)

const (
	riskyUsersPath     = "identityProtection/riskyUsers"
	riskDetectionsPath = "identityProtection/riskDetections"
)

// NewRiskyUserPager lists every risky user in the tenant.
func (c *Client) NewRiskyUserPager() *runtime.Pager[Page[types.RiskyUser]] {
	return newListPager[types.RiskyUser](c, runtime.JoinPaths(c.endpoint, riskyUsersPath))
}

// GetRiskyUser looks up a single risky user by object ID. The identifier is
// escaped before it lands in the path.
func (c *Client) GetRiskyUser(ctx context.Context, id string) (*types.RiskyUser, error) {
	var user types.RiskyUser
	u := runtime.JoinPaths(c.endpoint, riskyUsersPath, url.PathEscape(id))
	if err := c.get(ctx, u, &user); err != nil {
		return nil, fmt.Errorf("failed to get risky user %s: %w", id, err)
	}
	return &user, nil
}

// NewRiskDetectionPager lists every risk detection in the tenant.
func (c *Client) NewRiskDetectionPager() *runtime.Pager[Page[types.RiskDetection]] {
	return newListPager[types.RiskDetection](c, runtime.JoinPaths(c.endpoint, riskDetectionsPath))
}
