// Package storage uploads voucher images to a Supabase-compatible
// object bucket and hands back the public URL the record store keeps.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/voucherscan/voucher-tracker/internal/common"
)

type Config struct {
	BaseURL string // e.g. https://<project>.supabase.co
	APIKey  string
	Bucket  string
	Timeout time.Duration
}

type BucketClient struct {
	cfg    Config
	httpc  *http.Client
	logger *zap.Logger
}

func NewBucketClient(cfg Config, logger *zap.Logger) *BucketClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &BucketClient{
		cfg:    cfg,
		httpc:  &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Store uploads image bytes under vouchers/<unix-ms>_<name> and returns
// the public URL. Backend faults surface as ErrUploadFailed.
func (c *BucketClient) Store(ctx context.Context, data []byte, contentType, name string) (string, error) {
	key := fmt.Sprintf("vouchers/%d_%s", time.Now().UnixMilli(), sanitizeName(name))

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		strings.TrimSuffix(c.cfg.BaseURL, "/"), c.cfg.Bucket, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrUploadFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrUploadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Warn("bucket upload rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("key", key),
			zap.ByteString("body", body),
		)
		return "", fmt.Errorf("%w: status %d: %s", common.ErrUploadFailed, resp.StatusCode, body)
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		strings.TrimSuffix(c.cfg.BaseURL, "/"), c.cfg.Bucket, key)
	c.logger.Info("voucher image stored", zap.String("key", key), zap.Int("bytes", len(data)))
	return publicURL, nil
}

// sanitizeName keeps object keys URL-safe without losing the original
// filename entirely.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	if name == "" {
		name = "voucher"
	}
	return url.PathEscape(name)
}
