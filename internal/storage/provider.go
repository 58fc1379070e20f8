package storage

import (
	"context"
	"io"
)

// PinResult is what a content-addressed storage provider reports back after
// persisting a file. The CID is the durable handle; nothing is cached locally.
type PinResult struct {
	CID  string
	Size int64
}

// Provider persists binary blobs with an external content-addressed store.
type Provider interface {
	Pin(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (PinResult, error)
	// ResolveURL turns a content identifier into a retrieval URL.
	ResolveURL(cid string) string
}

// GatewayURL builds the IPFS gateway retrieval URL for a content identifier.
// The shape is fixed; existing links resolve only if it is reproduced exactly.
func GatewayURL(gatewayHost, cid string) string {
	return "https://" + gatewayHost + "/ipfs/" + cid
}
