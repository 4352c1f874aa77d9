package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	mtypes "github.com/turtacn/molforge/pkg/types/molecule"
)

// Run is a completed generation run as served by the API.
type Run struct {
	ID        string             `json:"run_id"`
	CreatedAt time.Time          `json:"created_at"`
	Requested int                `json:"requested"`
	Molecules []mtypes.RecordDTO `json:"molecules"`
}

// Generate starts a generation run and returns its outcome.
func (c *Client) Generate(ctx context.Context, req mtypes.GenerateRequest) (*mtypes.GenerateResponse, error) {
	var resp mtypes.GenerateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/molecules/generate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRun fetches a previously completed run.
func (c *Client) GetRun(ctx context.Context, runID string) (*Run, error) {
	var run Run
	path := "/api/v1/runs/" + url.PathEscape(runID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// DownloadCSV fetches the CSV export of a run.
func (c *Client) DownloadCSV(ctx context.Context, runID string) ([]byte, error) {
	path := "/api/v1/runs/" + url.PathEscape(runID) + "/csv"
	data, _, err := c.do(ctx, http.MethodGet, path, nil)
	return data, err
}

// MoleculeImage fetches the PNG depiction of one molecule in a run.
// Non-positive dimensions fall back to the server defaults.
func (c *Client) MoleculeImage(ctx context.Context, runID, moleculeID string, width, height int) ([]byte, error) {
	path := fmt.Sprintf("/api/v1/runs/%s/molecules/%s/image",
		url.PathEscape(runID), url.PathEscape(moleculeID))
	if width > 0 && height > 0 {
		path += fmt.Sprintf("?width=%d&height=%d", width, height)
	}
	data, contentType, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if contentType != "image/png" {
		return nil, fmt.Errorf("client: unexpected content type %q", contentType)
	}
	return data, nil
}

// Health probes the server's liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/healthz", nil, nil)
}
