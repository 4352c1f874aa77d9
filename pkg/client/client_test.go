package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mtypes "github.com/turtacn/molforge/pkg/types/molecule"
)

func TestNewClient_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewClient("")
	assert.Error(t, err)

	c, err := NewClient("http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.baseURL)
}

func TestGenerate_RoundTrip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/molecules/generate", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var req mtypes.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 5, req.Count)

		_ = json.NewEncoder(w).Encode(mtypes.GenerateResponse{
			RunID:     "run-1",
			Requested: 5,
			Generated: 2,
			Molecules: []mtypes.RecordDTO{
				{ID: "MOL_1", SMILES: "c1ccccc1Cc1ccccc1"},
				{ID: "MOL_2", SMILES: "c1ccccc1Oc1ccccc1"},
			},
		})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	resp, err := c.Generate(context.Background(), mtypes.GenerateRequest{Count: 5})
	require.NoError(t, err)
	assert.Equal(t, "run-1", resp.RunID)
	assert.Len(t, resp.Molecules, 2)
}

func TestGetRun_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"GEN_004","message":"run not found"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.GetRun(context.Background(), "missing")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, "GEN_004", apiErr.Code)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestDownloadCSV(t *testing.T) {
	t.Parallel()

	const body = "Molecule ID,SMILES,MW (Da),LogP,TPSA,H-Acceptors,H-Donors\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/runs/run-1/csv", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	data, err := c.DownloadCSV(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
}

func TestMoleculeImage_ChecksContentType(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("width") == "300" {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("\x89PNG fake"))
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("nope"))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	data, err := c.MoleculeImage(context.Background(), "run-1", "MOL_1", 300, 200)
	require.NoError(t, err)
	assert.Contains(t, string(data), "PNG")

	_, err = c.MoleculeImage(context.Background(), "run-1", "MOL_1", 0, 0)
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	assert.NoError(t, c.Health(context.Background()))
}
