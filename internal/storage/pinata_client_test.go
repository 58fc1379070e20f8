package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayURL(t *testing.T) {
	assert.Equal(t, "https://gw.example.com/ipfs/QmXYZ", GatewayURL("gw.example.com", "QmXYZ"))
}

func TestPinataClient_Pin(t *testing.T) {
	var gotAuth, gotNetwork, gotFileName, gotFileBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotNetwork = r.FormValue("network")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFileName = header.Filename
		buf := make([]byte, header.Size)
		_, _ = file.Read(buf)
		gotFileBody = string(buf)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"f1","cid":"bafkreigh2akiscaildcqabsyg3dfr6chu3fgpregiymsck7e7aqa4s52zy","size":11,"name":"a.jpg"}}`))
	}))
	defer srv.Close()

	client, err := NewPinataClient(PinataConfig{
		UploadURL:   srv.URL,
		JWT:         "test-jwt",
		GatewayHost: "gw.example.com",
	}, nil)
	require.NoError(t, err)

	result, err := client.Pin(context.Background(), "a.jpg", "image/jpeg", strings.NewReader("hello world"), 11)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-jwt", gotAuth)
	assert.Equal(t, "public", gotNetwork)
	assert.Equal(t, "a.jpg", gotFileName)
	assert.Equal(t, "hello world", gotFileBody)
	assert.Equal(t, "bafkreigh2akiscaildcqabsyg3dfr6chu3fgpregiymsck7e7aqa4s52zy", result.CID)
	assert.Equal(t, int64(11), result.Size)

	assert.Equal(t, "https://gw.example.com/ipfs/"+result.CID, client.ResolveURL(result.CID))
}

func TestPinataClient_Pin_MissingSizeFallsBackToRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"cid":"QmXYZ"}}`))
	}))
	defer srv.Close()

	client, err := NewPinataClient(PinataConfig{UploadURL: srv.URL, GatewayHost: "gw.example.com"}, nil)
	require.NoError(t, err)

	result, err := client.Pin(context.Background(), "a.jpg", "image/jpeg", strings.NewReader("abc"), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Size)
}

func TestPinataClient_Pin_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid jwt"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := NewPinataClient(PinataConfig{UploadURL: srv.URL, GatewayHost: "gw.example.com"}, nil)
	require.NoError(t, err)

	_, err = client.Pin(context.Background(), "a.jpg", "image/jpeg", strings.NewReader("abc"), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestPinataClient_Pin_EmptyCID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	client, err := NewPinataClient(PinataConfig{UploadURL: srv.URL, GatewayHost: "gw.example.com"}, nil)
	require.NoError(t, err)

	_, err = client.Pin(context.Background(), "a.jpg", "image/jpeg", strings.NewReader("abc"), 3)
	assert.Error(t, err)
}

func TestNewPinataClient_RequiresConfig(t *testing.T) {
	_, err := NewPinataClient(PinataConfig{GatewayHost: "gw.example.com"}, nil)
	assert.Error(t, err)

	_, err = NewPinataClient(PinataConfig{UploadURL: "https://uploads.pinata.cloud/v3/files"}, nil)
	assert.Error(t, err)
}
