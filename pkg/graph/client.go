package graph

import (
	"context"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/google/uuid"
	"github.com/vela-sec/vela/version"
)

const (
	// DefaultEndpoint is the Microsoft Graph v1.0 service root.
	DefaultEndpoint = "https://graph.microsoft.com/v1.0"

	defaultScope = "https://graph.microsoft.com/.default"
)

// ClientOptions configures a Client.
type ClientOptions struct {
	// Endpoint overrides the Graph service root. Tests point this at a mock
	// server.
	Endpoint string

	// Transport overrides the HTTP transport used by the pipeline.
	Transport policy.Transporter
}

// Client issues authenticated requests against Microsoft Graph through an
// azcore pipeline.
type Client struct {
	endpoint string
	pipeline runtime.Pipeline
}

// NewClient builds a Graph client around the given credential, typically an
// azidentity.DefaultAzureCredential.
func NewClient(cred azcore.TokenCredential, opts *ClientOptions) *Client {
	if opts == nil {
		opts = &ClientOptions{}
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	plOpts := runtime.PipelineOptions{
		PerRetry: []policy.Policy{
			runtime.NewBearerTokenPolicy(cred, []string{defaultScope}, nil),
			requestIDPolicy{},
		},
	}

	clientOpts := policy.ClientOptions{}
	if opts.Transport != nil {
		clientOpts.Transport = opts.Transport
	}

	return &Client{
		endpoint: endpoint,
		pipeline: runtime.NewPipeline("vela", version.Version, plOpts, &clientOpts),
	}
}

// requestIDPolicy stamps each attempt with a client-request-id so failed
// calls can be correlated with Graph service logs.
type requestIDPolicy struct{}

func (requestIDPolicy) Do(req *policy.Request) (*http.Response, error) {
	req.Raw().Header.Set("client-request-id", uuid.NewString())
	return req.Next()
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := runtime.NewRequest(ctx, http.MethodGet, url)
	if err != nil {
		return err
	}

	resp, err := c.pipeline.Do(req)
	if err != nil {
		return err
	}
	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return runtime.NewResponseError(resp)
	}
	return runtime.UnmarshalAsJSON(resp, out)
}

func (c *Client) post(ctx context.Context, url string, body, out any) error {
	req, err := runtime.NewRequest(ctx, http.MethodPost, url)
	if err != nil {
		return err
	}
	if err := runtime.MarshalAsJSON(req, body); err != nil {
		return err
	}

	resp, err := c.pipeline.Do(req)
	if err != nil {
		return err
	}
	if !runtime.HasStatusCode(resp, http.StatusOK, http.StatusCreated, http.StatusAccepted) {
		return runtime.NewResponseError(resp)
	}
	return runtime.UnmarshalAsJSON(resp, out)
}
