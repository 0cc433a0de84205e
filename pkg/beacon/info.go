package beacon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ChainInfo describes the beacon chain. It is diagnostic only and plays
// no part in the sampling path.
type ChainInfo struct {
	PublicKey   string `json:"public_key"`
	Period      uint64 `json:"period"`
	GenesisTime int64  `json:"genesis_time"`
	Hash        string `json:"hash"`
	GroupHash   string `json:"groupHash"`
	SchemeID    string `json:"schemeID"`
}

// Info fetches chain metadata from the beacon's info endpoint.
// A single attempt is made; the retry policy applies only to round fetches.
func (c *Client) Info(ctx context.Context) (*ChainInfo, error) {
	url := c.endpoint("info")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrUnavailable, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: GET %s: server returned %d", ErrUnavailable, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var info ChainInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrProtocol, url, err)
	}
	return &info, nil
}
