// Package analyzer coordinates the external product and recall data sources.
// Cheap local pre-classification runs first and short-circuits the network;
// the two external calls then fan out concurrently and either may fail
// without failing the other.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/noura-assistant/server/internal/agent/intent"
	"github.com/noura-assistant/server/internal/agent/model"
	logx "github.com/noura-assistant/server/pkg/logger"
)

// Analyzer resolves a query into a LookupResult.
type Analyzer struct {
	classifier *intent.Classifier
	products   ProductSource
	recalls    RecallSource
	cfg        model.AnalyzerConfig
}

// New builds an analyzer over the given sources.
func New(classifier *intent.Classifier, products ProductSource, recalls RecallSource, cfg model.AnalyzerConfig) *Analyzer {
	return &Analyzer{
		classifier: classifier,
		products:   products,
		recalls:    recalls,
		cfg:        cfg,
	}
}

// Analyze classifies the query locally, then performs the concurrent
// product + recall lookups. It never returns an error: transient recall
// failures degrade to "no data", and a product-lookup failure is the one
// condition reported as NotFound.
func (a *Analyzer) Analyze(ctx context.Context, query string) model.LookupResult {
	q := strings.TrimSpace(query)

	switch it := a.classifier.Classify(q); it.Kind {
	case model.IntentGreeting:
		return model.LookupResult{Kind: model.LookupGreeting, Query: q}
	case model.IntentCountry:
		return model.LookupResult{Kind: model.LookupLocation, Query: q, Country: it.Country}
	case model.IntentOutOfScope, model.IntentMedical, model.IntentPII, model.IntentBlocked:
		return model.LookupResult{Kind: model.LookupOutOfScope, Query: q}
	}

	return a.run(ctx, q, a.lookupProduct)
}

// AnalyzeAlternative looks up the next suggestion for a previously analyzed
// query. No pre-classification: the query already went through Analyze once.
func (a *Analyzer) AnalyzeAlternative(ctx context.Context, query string) model.LookupResult {
	q := strings.TrimSpace(query)
	return a.run(ctx, q, a.products.SearchAlternative)
}

// run fans out the product lookup and the recall check. Each leg recovers its
// own panics so a misbehaving source degrades to "no data" instead of taking
// the process down.
func (a *Analyzer) run(ctx context.Context, q string, lookup func(context.Context, string) (*model.ProductRecord, error)) model.LookupResult {
	var (
		product    *model.ProductRecord
		recall     *model.RecallInfo
		productErr error
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				logx.Error().Interface("panic", r).Str("query", q).Msg("product lookup panicked")
				productErr = fmt.Errorf("product lookup panicked: %v", r)
			}
		}()

		cctx, cancel := context.WithTimeout(gctx, a.cfg.CallTimeout)
		defer cancel()

		p, err := lookup(cctx, q)
		if err != nil {
			logx.Warn().Err(err).Str("query", q).Msg("product lookup failed")
			productErr = err
			return nil
		}
		product = p
		return nil
	})

	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				logx.Error().Interface("panic", r).Str("query", q).Msg("recall lookup panicked")
			}
		}()

		cctx, cancel := context.WithTimeout(gctx, a.cfg.CallTimeout)
		defer cancel()

		r, err := a.recalls.CheckRecalls(cctx, q)
		if err != nil {
			// recall data is best-effort; absence means "no known recall"
			logx.Warn().Err(err).Str("query", q).Msg("recall lookup failed")
			return nil
		}
		recall = r
		return nil
	})

	_ = g.Wait()

	if productErr != nil || product == nil {
		return model.LookupResult{Kind: model.LookupNotFound, Query: q}
	}
	return model.LookupResult{Kind: model.LookupFound, Query: q, Product: product, Recall: recall}
}

// lookupProduct dispatches to barcode or name search. A purely numeric query
// (spaces allowed) is treated as a barcode.
func (a *Analyzer) lookupProduct(ctx context.Context, query string) (*model.ProductRecord, error) {
	if code := digitsOnly(query); code != "" {
		return a.products.LookupByBarcode(ctx, code)
	}
	return a.products.SearchByName(ctx, query)
}

// digitsOnly returns the query stripped of spaces when every remaining rune
// is a digit, or "" when the query is not a barcode.
func digitsOnly(query string) string {
	stripped := strings.ReplaceAll(query, " ", "")
	if stripped == "" {
		return ""
	}
	for _, r := range stripped {
		if !unicode.IsDigit(r) {
			return ""
		}
	}
	return stripped
}
