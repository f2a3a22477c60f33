package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"loyalty-sync/core/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAPI records every batch and answers through respond.
type fakeAPI struct {
	requests []eligibilityRequest
	respond  func(n int, req eligibilityRequest) (string, error)
}

func (f *fakeAPI) Post(_ context.Context, path string, body, out any) error {
	if path != EligibilityPath {
		return fmt.Errorf("unexpected path %s", path)
	}
	req := body.(eligibilityRequest)
	f.requests = append(f.requests, req)

	payload, err := f.respond(len(f.requests), req)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(payload), out)
}

// echoEligible marks every even-numbered code eligible.
func echoEligible(_ int, req eligibilityRequest) (string, error) {
	items := make([]map[string]any, 0, len(req.ArticleNumbers))
	for i, code := range req.ArticleNumbers {
		items = append(items, map[string]any{"articleNr": code, "eligible": i%2 == 0})
	}
	b, _ := json.Marshal(map[string]any{"products": items})
	return string(b), nil
}

func codes(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("CODE-%05d", i)
	}
	return out
}

func TestFetchEligible_BatchCompleteness(t *testing.T) {
	for _, n := range []int{1, 299, 300, 301, 750} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			api := &fakeAPI{respond: echoEligible}
			res, err := NewClient(api, 300, zap.NewNop()).FetchEligible(context.Background(), codes(n), "FI")
			require.NoError(t, err)

			assert.Len(t, api.requests, (n+299)/300)
			assert.Equal(t, (n+299)/300, res.Requests)
			assert.LessOrEqual(t, len(res.Products), n)

			sent := 0
			for _, req := range api.requests {
				assert.LessOrEqual(t, len(req.ArticleNumbers), 300)
				assert.Equal(t, "FI", req.Country)
				sent += len(req.ArticleNumbers)
			}
			assert.Equal(t, n, sent)
		})
	}
}

func TestFetchEligible_DuplicatesDoNotAddRequests(t *testing.T) {
	input := append(codes(301), codes(301)...)
	input = append(input, "", "")

	api := &fakeAPI{respond: echoEligible}
	res, err := NewClient(api, 300, zap.NewNop()).FetchEligible(context.Background(), input, "FI")
	require.NoError(t, err)

	// 604 inputs, 301 unique non-empty codes
	assert.Equal(t, 2, res.Requests)
	require.Len(t, api.requests, 2)
	assert.Len(t, api.requests[0].ArticleNumbers, 300)
	assert.Equal(t, []string{"CODE-00300"}, api.requests[1].ArticleNumbers)
}

func TestFetchEligible_LooseEligibleFlag(t *testing.T) {
	api := &fakeAPI{respond: func(int, eligibilityRequest) (string, error) {
		return `{"products": [
			{"articleNr": "A", "eligible": "true"},
			{"articleNr": "B", "eligible": 1},
			{"articleNr": "C", "eligible": "0"},
			{"articleNr": "D", "eligible": "false"},
			{"articleNr": "E", "eligible": 0},
			{"articleNr": "F", "eligible": null},
			{"articleNr": "", "eligible": true}
		]}`, nil
	}}

	res, err := NewClient(api, 0, zap.NewNop()).FetchEligible(context.Background(),
		[]string{"A", "B", "C", "D", "E", "F"}, "FI")
	require.NoError(t, err)

	got := make([]string, 0, len(res.Products))
	for _, p := range res.Products {
		got = append(got, p.ArticleNr)
	}
	assert.Equal(t, []string{"A", "B", "F"}, got)
}

func TestFetchEligible_Enrichment(t *testing.T) {
	api := &fakeAPI{respond: func(int, eligibilityRequest) (string, error) {
		return `{"products": [
			{"articleNr": "0986479C20", "label": "Brake disc", "productGroup": "BRAKES", "pointMultiplier": "1.5", "eligible": true},
			{"articleNr": "0986479939", "productGroup": "BRAKES"},
			{"articleNr": "0986494668", "eligible": false},
			{"articleNr": "0986479C20", "pointMultiplier": 9}
		]}`, nil
	}}

	res, err := NewClient(api, 0, zap.NewNop()).FetchEligible(context.Background(),
		[]string{"0986479C20", "0986479939", "0986494668", "0986479C20", ""}, "FI")
	require.NoError(t, err)

	require.Len(t, api.requests, 1)
	assert.Equal(t, []string{"0986479C20", "0986479939", "0986494668"}, api.requests[0].ArticleNumbers)

	require.Len(t, res.Products, 2)
	assert.Equal(t, "0986479C20", res.Products[0].ArticleNr)
	assert.Equal(t, "Brake disc", res.Products[0].Label)
	assert.True(t, decimal.RequireFromString("1.5").Equal(res.Products[0].PointMultiplier))

	// Missing multiplier defaults to 1
	assert.Equal(t, "0986479939", res.Products[1].ArticleNr)
	assert.True(t, decimal.NewFromInt(1).Equal(res.Products[1].PointMultiplier))
}

func TestFetchEligible_NoCodes(t *testing.T) {
	api := &fakeAPI{respond: echoEligible}

	res, err := NewClient(api, 300, zap.NewNop()).FetchEligible(context.Background(), nil, "FI")
	require.NoError(t, err)
	assert.Empty(t, api.requests)
	assert.Empty(t, res.Products)
	assert.Equal(t, 0, res.Requests)
}

func TestFetchEligible_PartialBatchFailure(t *testing.T) {
	api := &fakeAPI{respond: func(n int, req eligibilityRequest) (string, error) {
		if n == 2 {
			return "", apperr.Upstream("POST "+EligibilityPath, 413, errors.New("too large"))
		}
		return echoEligible(n, req)
	}}

	res, err := NewClient(api, 10, zap.NewNop()).FetchEligible(context.Background(), codes(30), "FI")
	require.NoError(t, err)

	assert.Equal(t, 3, res.Requests)
	assert.Equal(t, 1, res.FailedBatches)
	assert.Equal(t, codes(30)[10:20], res.FailedCodes)
	assert.Len(t, res.Products, 10) // 5 eligible from each successful batch
}

func TestFetchEligible_AllBatchesFail(t *testing.T) {
	api := &fakeAPI{respond: func(int, eligibilityRequest) (string, error) {
		return "", apperr.Upstream("POST "+EligibilityPath, 500, errors.New("down"))
	}}

	res, err := NewClient(api, 10, zap.NewNop()).FetchEligible(context.Background(), codes(25), "FI")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUpstream)
	assert.Equal(t, 3, res.FailedBatches)
	assert.Empty(t, res.Products)
}

func TestFetchEligible_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	api := &fakeAPI{respond: func(n int, req eligibilityRequest) (string, error) {
		cancel()
		return "", context.Canceled
	}}

	_, err := NewClient(api, 10, zap.NewNop()).FetchEligible(ctx, codes(25), "FI")
	assert.ErrorIs(t, err, apperr.ErrUpstream)
	assert.Len(t, api.requests, 1)
}

func TestIndex(t *testing.T) {
	idx := Index([]Product{{ArticleNr: "A", Label: "first"}, {ArticleNr: "A", Label: "second"}, {ArticleNr: "B"}})
	assert.Len(t, idx, 2)
	assert.Equal(t, "first", idx["A"].Label)
}
