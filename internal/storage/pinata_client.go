package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"memories-chain/pkg/logger"

	"github.com/ipfs/go-cid"
)

type PinataConfig struct {
	UploadURL   string
	JWT         string
	GatewayHost string
	Timeout     time.Duration
}

// PinataClient uploads files to Pinata's public IPFS pinning API.
type PinataClient struct {
	cfg    PinataConfig
	http   *http.Client
	logger *logger.Logger
}

type pinataUploadResponse struct {
	Data struct {
		ID   string `json:"id"`
		CID  string `json:"cid"`
		Size int64  `json:"size"`
		Name string `json:"name"`
	} `json:"data"`
}

func NewPinataClient(cfg PinataConfig, l *logger.Logger) (*PinataClient, error) {
	if cfg.UploadURL == "" {
		return nil, errors.New("pinata upload url is required")
	}
	if cfg.GatewayHost == "" {
		return nil, errors.New("pinata gateway host is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &PinataClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: l,
	}, nil
}

func (c *PinataClient) Pin(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (PinResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return PinResult{}, err
	}
	if _, err := io.Copy(part, body); err != nil {
		return PinResult{}, err
	}
	if err := writer.WriteField("network", "public"); err != nil {
		return PinResult{}, err
	}
	if err := writer.Close(); err != nil {
		return PinResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.UploadURL, &buf)
	if err != nil {
		return PinResult{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.cfg.JWT)

	resp, err := c.http.Do(req)
	if err != nil {
		return PinResult{}, fmt.Errorf("pinata upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return PinResult{}, fmt.Errorf("pinata upload failed: status %d: %s", resp.StatusCode, detail)
	}

	var parsed pinataUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return PinResult{}, fmt.Errorf("pinata upload failed: %w", err)
	}
	if parsed.Data.CID == "" {
		return PinResult{}, errors.New("pinata upload failed: empty cid")
	}

	// The CID is a foreign fact. A parse failure is suspicious but the
	// provider remains the source of truth, so log and carry on.
	if _, err := cid.Parse(parsed.Data.CID); err != nil && c.logger != nil {
		c.logger.Warnf("pinata returned unparseable cid %q: %s", parsed.Data.CID, err)
	}

	result := PinResult{CID: parsed.Data.CID, Size: parsed.Data.Size}
	if result.Size == 0 {
		result.Size = size
	}
	return result, nil
}

func (c *PinataClient) ResolveURL(contentID string) string {
	return GatewayURL(c.cfg.GatewayHost, contentID)
}
