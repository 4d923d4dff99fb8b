package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/noura-assistant/server/internal/agent/model"
	errx "github.com/noura-assistant/server/internal/core/error"
	logx "github.com/noura-assistant/server/pkg/logger"
)

// ProductSource is the external product database contract.
// A nil record with a nil error means "no match", not a failure.
type ProductSource interface {
	LookupByBarcode(ctx context.Context, code string) (*model.ProductRecord, error)
	SearchByName(ctx context.Context, name string) (*model.ProductRecord, error)
	SearchAlternative(ctx context.Context, name string) (*model.ProductRecord, error)
}

// OpenFoodFactsClient queries the Open Food Facts API.
type OpenFoodFactsClient struct {
	baseURL string
	client  *http.Client
}

// NewOpenFoodFactsClient builds a client against the given base URL.
func NewOpenFoodFactsClient(baseURL string, client *http.Client) *OpenFoodFactsClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenFoodFactsClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type offProduct struct {
	ProductName             string   `json:"product_name"`
	Brands                  string   `json:"brands"`
	NutriscoreGrade         string   `json:"nutriscore_grade"`
	EcoscoreGrade           string   `json:"ecoscore_grade"`
	LabelsTags              []string `json:"labels_tags"`
	IngredientsFromPalmOilN int      `json:"ingredients_from_palm_oil_n"`
}

type offProductResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

// LookupByBarcode fetches a product by barcode.
func (c *OpenFoodFactsClient) LookupByBarcode(ctx context.Context, code string) (*model.ProductRecord, error) {
	endpoint := fmt.Sprintf("%s/product/%s.json", c.baseURL, url.PathEscape(code))

	var resp offProductResponse
	ok, err := c.getJSON(ctx, endpoint, &resp)
	if err != nil || !ok {
		return nil, err
	}
	if resp.Status != 1 {
		return nil, nil
	}
	return normalizeProduct(resp.Product), nil
}

// SearchByName searches by free-text name and returns the first match.
func (c *OpenFoodFactsClient) SearchByName(ctx context.Context, name string) (*model.ProductRecord, error) {
	params := url.Values{}
	params.Set("search_terms", name)
	params.Set("search_simple", "1")
	params.Set("json", "1")
	params.Set("page_size", "1")
	params.Set("fields", "product_name,brands,nutriscore_grade,ecoscore_grade,labels_tags,ingredients_from_palm_oil_n")
	endpoint := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	var resp offSearchResponse
	ok, err := c.getJSON(ctx, endpoint, &resp)
	if err != nil || !ok {
		return nil, err
	}
	if len(resp.Products) == 0 {
		return nil, nil
	}
	return normalizeProduct(resp.Products[0]), nil
}

// SearchAlternative returns the second match for the name, the next best
// suggestion after the one already shown. A single-hit search has no
// alternative and reports a miss.
func (c *OpenFoodFactsClient) SearchAlternative(ctx context.Context, name string) (*model.ProductRecord, error) {
	params := url.Values{}
	params.Set("search_terms", name)
	params.Set("search_simple", "1")
	params.Set("json", "1")
	params.Set("page_size", "2")
	params.Set("fields", "product_name,brands,nutriscore_grade,ecoscore_grade,labels_tags,ingredients_from_palm_oil_n")
	endpoint := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	var resp offSearchResponse
	ok, err := c.getJSON(ctx, endpoint, &resp)
	if err != nil || !ok {
		return nil, err
	}
	if len(resp.Products) < 2 {
		return nil, nil
	}
	return normalizeProduct(resp.Products[1]), nil
}

// getJSON performs the request and decodes the body. Non-200 statuses are
// treated as a miss rather than a failure.
func (c *OpenFoodFactsClient) getJSON(ctx context.Context, endpoint string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, errx.WrapUpstream(err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, errx.WrapUpstream(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logx.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("product source returned non-200")
		return false, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, errx.WrapUpstream(err)
	}
	return true, nil
}

func normalizeProduct(p offProduct) *model.ProductRecord {
	name := p.ProductName
	if name == "" {
		name = "Unknown"
	}
	return &model.ProductRecord{
		Name:           name,
		Brand:          p.Brands,
		NutritionGrade: p.NutriscoreGrade,
		EcoGrade:       p.EcoscoreGrade,
		Labels:         p.LabelsTags,
		IsOrganic:      slices.Contains(p.LabelsTags, "en:organic"),
		IsVegan:        slices.Contains(p.LabelsTags, "en:vegan"),
		IsFairTrade:    slices.Contains(p.LabelsTags, "en:fair-trade"),
		IsPalmOilFree:  p.IngredientsFromPalmOilN == 0,
	}
}
