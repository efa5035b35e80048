package preflight

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Aman-CERP/physref/internal/config"
)

// CheckImages validates the image settings. With WithOnline the
// placeholder image is also requested within timeout.
func (c *Checker) CheckImages(ctx context.Context, cfg *config.Config, timeout time.Duration) CheckResult {
	result := CheckResult{Name: "images"}
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if !cfg.ImagesEnabled() {
		result.Status = StatusPass
		result.Message = "disabled"
		return result
	}

	placeholder := cfg.Images.PlaceholderURL
	result.Details = placeholder
	u, err := url.Parse(placeholder)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		result.Status = StatusWarn
		result.Message = "placeholder_url is not an http(s) URL"
		return result
	}

	if !c.online {
		result.Status = StatusPass
		result.Message = fmt.Sprintf("enabled (timeout %s)", cfg.ImageTimeout())
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, placeholder, nil)
	if err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("bad placeholder request: %v", err)
		return result
	}
	resp, err := c.client.Do(req)
	if err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("placeholder unreachable: %v", err)
		return result
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 400 {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("placeholder returned HTTP %d", resp.StatusCode)
		return result
	}

	result.Status = StatusPass
	result.Message = "enabled, placeholder reachable"
	return result
}
