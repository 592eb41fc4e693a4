package graph

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskyUserPager(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/v1.0/identityProtection/riskyUsers", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("skiptoken") == "t1" {
			fmt.Fprint(w, `{"value":[{"id":"u3","riskLevel":"low"}]}`)
			return
		}
		fmt.Fprintf(w, `{"value":[{"id":"u1","riskLevel":"high"},{"id":"u2","riskLevel":"medium"}],"@odata.nextLink":"%s/v1.0/identityProtection/riskyUsers?skiptoken=t1"}`, srvURL)
	})

	client, srv := newTestClient(t, mux)
	srvURL = srv.URL

	var ids []string
	pager := client.NewRiskyUserPager()
	for pager.More() {
		page, err := pager.NextPage(context.Background())
		require.NoError(t, err)
		for _, u := range page.Value {
			ids = append(ids, u.ID)
		}
	}

	assert.Equal(t, []string{"u1", "u2", "u3"}, ids)
}

func TestGetRiskyUser(t *testing.T) {
	var escapedPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		escapedPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"alice@contoso.com","riskLevel":"high","riskState":"atRisk"}`)
	}))

	user, err := client.GetRiskyUser(context.Background(), "alice@contoso.com")
	require.NoError(t, err)

	assert.Equal(t, "alice@contoso.com", user.ID)
	assert.Equal(t, "high", user.RiskLevel)
	// The identifier must be escaped before it lands in the path.
	assert.Contains(t, escapedPath, "alice%40contoso.com")
}

func TestGetRiskyUserNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"ResourceNotFound"}}`, http.StatusNotFound)
	}))

	_, err := client.GetRiskyUser(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get risky user ghost")
}

func TestRiskDetectionPager(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.0/identityProtection/riskDetections", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"value":[{"id":"d1","riskEventType":"unfamiliarFeatures","location":{"city":"Oslo","countryOrRegion":"NO"}}]}`)
	}))

	pager := client.NewRiskDetectionPager()
	page, err := pager.NextPage(context.Background())
	require.NoError(t, err)

	require.Len(t, page.Value, 1)
	detection := page.Value[0]
	assert.Equal(t, "d1", detection.ID)
	require.NotNil(t, detection.Location)
	assert.Equal(t, "Oslo", detection.Location.City)
	assert.False(t, pager.More())
}
