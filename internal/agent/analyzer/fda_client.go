package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/noura-assistant/server/internal/agent/model"
	errx "github.com/noura-assistant/server/internal/core/error"
	logx "github.com/noura-assistant/server/pkg/logger"
)

// RecallSource is the external recall/safety database contract.
// A nil result with a nil error means "no known recall".
type RecallSource interface {
	CheckRecalls(ctx context.Context, query string) (*model.RecallInfo, error)
}

// FDAClient queries the FDA food enforcement API for recalls.
type FDAClient struct {
	baseURL string
	client  *http.Client
}

// NewFDAClient builds a client against the given base URL.
func NewFDAClient(baseURL string, client *http.Client) *FDAClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &FDAClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type fdaEnforcementResponse struct {
	Results []struct {
		ReasonForRecall string `json:"reason_for_recall"`
	} `json:"results"`
}

// CheckRecalls looks for enforcement records matching the query.
func (c *FDAClient) CheckRecalls(ctx context.Context, query string) (*model.RecallInfo, error) {
	params := url.Values{}
	params.Set("search", fmt.Sprintf("%q", query))
	params.Set("limit", "5")
	endpoint := fmt.Sprintf("%s/food/enforcement.json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errx.WrapUpstream(err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errx.WrapUpstream(err)
	}
	defer resp.Body.Close()

	// the API answers 404 when nothing matches
	if resp.StatusCode != http.StatusOK {
		logx.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("recall source returned non-200")
		return nil, nil
	}

	var body fdaEnforcementResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errx.WrapUpstream(err)
	}
	if len(body.Results) == 0 {
		return nil, nil
	}
	return &model.RecallInfo{
		Count:        len(body.Results),
		LatestReason: body.Results[0].ReasonForRecall,
	}, nil
}
