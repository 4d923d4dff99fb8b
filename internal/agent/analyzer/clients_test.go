package analyzer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noura-assistant/server/internal/agent/analyzer"
)

func TestOpenFoodFactsClient_LookupByBarcode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product/3017620422003.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": 1,
			"product": {
				"product_name": "Nutella",
				"brands": "Ferrero",
				"nutriscore_grade": "e",
				"ecoscore_grade": "d",
				"labels_tags": ["en:no-gluten"],
				"ingredients_from_palm_oil_n": 1
			}
		}`))
	}))
	defer srv.Close()

	c := analyzer.NewOpenFoodFactsClient(srv.URL, srv.Client())
	got, err := c.LookupByBarcode(context.Background(), "3017620422003")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Nutella", got.Name)
	assert.Equal(t, "Ferrero", got.Brand)
	assert.Equal(t, "e", got.NutritionGrade)
	assert.Equal(t, "d", got.EcoGrade)
	assert.False(t, got.IsPalmOilFree)
	assert.False(t, got.IsOrganic)
}

func TestOpenFoodFactsClient_BarcodeMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": 0}`))
	}))
	defer srv.Close()

	c := analyzer.NewOpenFoodFactsClient(srv.URL, srv.Client())
	got, err := c.LookupByBarcode(context.Background(), "0000000000000")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestOpenFoodFactsClient_SearchByName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "nutella", r.URL.Query().Get("search_terms"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"products": [{
				"product_name": "Nutella",
				"brands": "Ferrero",
				"nutriscore_grade": "e",
				"labels_tags": ["en:organic", "en:vegan", "en:fair-trade"]
			}]
		}`))
	}))
	defer srv.Close()

	c := analyzer.NewOpenFoodFactsClient(srv.URL, srv.Client())
	got, err := c.SearchByName(context.Background(), "nutella")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsOrganic)
	assert.True(t, got.IsVegan)
	assert.True(t, got.IsFairTrade)
	assert.True(t, got.IsPalmOilFree)
}

func TestOpenFoodFactsClient_SearchAlternative(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page_size"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"products": [
				{"product_name": "Nutella", "brands": "Ferrero"},
				{"product_name": "Nocciolata", "brands": "Rigoni"}
			]
		}`))
	}))
	defer srv.Close()

	c := analyzer.NewOpenFoodFactsClient(srv.URL, srv.Client())
	got, err := c.SearchAlternative(context.Background(), "nutella")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Nocciolata", got.Name)
	assert.Equal(t, "Rigoni", got.Brand)
}

func TestOpenFoodFactsClient_SingleHitHasNoAlternative(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products": [{"product_name": "Nutella"}]}`))
	}))
	defer srv.Close()

	c := analyzer.NewOpenFoodFactsClient(srv.URL, srv.Client())
	got, err := c.SearchAlternative(context.Background(), "nutella")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestOpenFoodFactsClient_EmptySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products": []}`))
	}))
	defer srv.Close()

	c := analyzer.NewOpenFoodFactsClient(srv.URL, srv.Client())
	got, err := c.SearchByName(context.Background(), "producto inexistente")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestOpenFoodFactsClient_NamelessProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": 1, "product": {"brands": "Ferrero"}}`))
	}))
	defer srv.Close()

	c := analyzer.NewOpenFoodFactsClient(srv.URL, srv.Client())
	got, err := c.LookupByBarcode(context.Background(), "123")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Unknown", got.Name)
}

func TestOpenFoodFactsClient_ServerErrorIsMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := analyzer.NewOpenFoodFactsClient(srv.URL, srv.Client())
	got, err := c.LookupByBarcode(context.Background(), "123")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestFDAClient_RecallsFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/food/enforcement.json", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": [
				{"reason_for_recall": "undeclared allergen"},
				{"reason_for_recall": "salmonella"}
			]
		}`))
	}))
	defer srv.Close()

	c := analyzer.NewFDAClient(srv.URL, srv.Client())
	got, err := c.CheckRecalls(context.Background(), "nutella")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, "undeclared allergen", got.LatestReason)
}

func TestFDAClient_NotFoundMeansNoRecall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the API answers 404 when nothing matches
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := analyzer.NewFDAClient(srv.URL, srv.Client())
	got, err := c.CheckRecalls(context.Background(), "producto limpio")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestFDAClient_EmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	c := analyzer.NewFDAClient(srv.URL, srv.Client())
	got, err := c.CheckRecalls(context.Background(), "nutella")

	assert.NoError(t, err)
	assert.Nil(t, got)
}
