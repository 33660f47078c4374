package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"StockPulse/internal/apperr"
	"StockPulse/internal/model"
)

const (
	yahooBaseURL    = "https://query2.finance.yahoo.com"
	yahooBaseURLAlt = "https://query1.finance.yahoo.com"
	yahooUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"
)

// YahooSource implements Source using the Yahoo Finance public API.
type YahooSource struct {
	Client *http.Client
}

// NewYahooSource creates a Yahoo Finance source, optionally routed through
// an HTTPS proxy.
func NewYahooSource(proxyURL string) *YahooSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooSource{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (y *YahooSource) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
// Nullable numeric cells come back as JSON null on holidays, hence the
// interface{} columns.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice  float64 `json:"regularMarketPrice"`
				RegularMarketVolume float64 `json:"regularMarketVolume"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []interface{} `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooListResponse struct {
	Finance struct {
		Result []struct {
			Quotes []struct {
				Symbol string `json:"symbol"`
			} `json:"quotes"`
		} `json:"result"`
	} `json:"finance"`
}

type yahooSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			DefaultKeyStatistics *struct {
				TrailingPE *struct {
					Raw float64 `json:"raw"`
				} `json:"trailingPE"`
				ForwardPE *struct {
					Raw float64 `json:"raw"`
				} `json:"forwardPE"`
				PegRatio *struct {
					Raw float64 `json:"raw"`
				} `json:"pegRatio"`
			} `json:"defaultKeyStatistics"`
			FinancialData *struct {
				ProfitMargins *struct {
					Raw float64 `json:"raw"`
				} `json:"profitMargins"`
				DebtToEquity *struct {
					Raw float64 `json:"raw"`
				} `json:"debtToEquity"`
			} `json:"financialData"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func (y *YahooSource) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", yahooUserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := y.Client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

func (y *YahooSource) fetchChart(ctx context.Context, symbol, query string) (*yahooChart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s%s", yahooBaseURL, url.PathEscape(symbol), query)
	var chart yahooChart
	if err := y.getJSON(ctx, u, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned for %s", symbol)
	}
	return &chart, nil
}

// Historical fetches daily bars between from and to, skipping null bars
// (holidays), sorted ascending by date.
func (y *YahooSource) Historical(ctx context.Context, symbol string, from, to time.Time) ([]model.Bar, error) {
	query := fmt.Sprintf("?period1=%d&period2=%d&interval=1d", from.Unix(), to.Unix())
	chart, err := y.fetchChart(ctx, symbol, query)
	if err != nil {
		return nil, apperr.DataSource(fmt.Sprintf("failed to fetch historical data for %s", symbol), err)
	}

	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, apperr.DataSource(fmt.Sprintf("no historical data available for %s", symbol), nil)
	}
	quote := result.Indicators.Quote[0]
	var adjclose []interface{}
	if len(result.Indicators.AdjClose) > 0 {
		adjclose = result.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]model.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c, ok := toFloat(at(quote.Close, i))
		if !ok {
			continue // null bar (holiday etc.)
		}
		o, ok := toFloat(at(quote.Open, i))
		if !ok {
			o = c
		}
		h, ok := toFloat(at(quote.High, i))
		if !ok {
			h = c
		}
		l, ok := toFloat(at(quote.Low, i))
		if !ok {
			l = c
		}
		v, ok := toFloat(at(quote.Volume, i))
		if !ok {
			v = 0
		}
		adj, ok := toFloat(at(adjclose, i))
		if !ok {
			adj = c
		}
		bars = append(bars, model.Bar{
			Time:     time.Unix(ts, 0),
			Open:     o,
			High:     h,
			Low:      l,
			Close:    c,
			Volume:   v,
			AdjClose: adj,
		})
	}

	return validateBars(symbol, bars)
}

func at(col []interface{}, i int) interface{} {
	if i < 0 || i >= len(col) {
		return nil
	}
	return col[i]
}

// Quote fetches the current price and volume from the chart meta plus
// best-effort fundamentals from the quote summary endpoint.
func (y *YahooSource) Quote(ctx context.Context, symbol string) (*model.Quote, error) {
	chart, err := y.fetchChart(ctx, symbol, "")
	if err != nil {
		return nil, apperr.DataSource(fmt.Sprintf("failed to fetch quote for %s", symbol), err)
	}

	meta := chart.Chart.Result[0].Meta
	q := &model.Quote{
		Symbol: symbol,
		Price:  meta.RegularMarketPrice,
		Volume: meta.RegularMarketVolume,
	}

	// Fundamentals are optional; ignore failures.
	y.attachFundamentals(ctx, symbol, q)

	return validateQuote(symbol, q)
}

func (y *YahooSource) attachFundamentals(ctx context.Context, symbol string, q *model.Quote) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=defaultKeyStatistics,financialData",
		yahooBaseURLAlt, url.PathEscape(symbol))
	var summary yahooSummaryResponse
	if err := y.getJSON(ctx, u, &summary); err != nil {
		return
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return
	}
	result := summary.QuoteSummary.Result[0]
	if ks := result.DefaultKeyStatistics; ks != nil {
		if ks.TrailingPE != nil {
			q.TrailingPE = &ks.TrailingPE.Raw
		}
		if ks.ForwardPE != nil {
			q.ForwardPE = &ks.ForwardPE.Raw
		}
		if ks.PegRatio != nil {
			q.PegRatio = &ks.PegRatio.Raw
		}
	}
	if fd := result.FinancialData; fd != nil {
		if fd.ProfitMargins != nil {
			q.ProfitMargins = &fd.ProfitMargins.Raw
		}
		if fd.DebtToEquity != nil {
			q.DebtToEquity = &fd.DebtToEquity.Raw
		}
	}
}

// Trending fetches currently trending US tickers.
func (y *YahooSource) Trending(ctx context.Context, limit int) ([]string, error) {
	limit = normalizeLimit(limit)
	u := fmt.Sprintf("%s/v1/finance/trending/US?count=%d", yahooBaseURLAlt, limit)
	return y.fetchList(ctx, u, "trending", limit)
}

// Gainers fetches the day's top gainers from the predefined screener.
func (y *YahooSource) Gainers(ctx context.Context, limit int) ([]string, error) {
	limit = normalizeLimit(limit)
	u := fmt.Sprintf("%s/v1/finance/screener/predefined/saved?scrIds=day_gainers&count=%d", yahooBaseURLAlt, limit)
	return y.fetchList(ctx, u, "gainers", limit)
}

// Losers fetches the day's top losers from the predefined screener.
func (y *YahooSource) Losers(ctx context.Context, limit int) ([]string, error) {
	limit = normalizeLimit(limit)
	u := fmt.Sprintf("%s/v1/finance/screener/predefined/saved?scrIds=day_losers&count=%d", yahooBaseURLAlt, limit)
	return y.fetchList(ctx, u, "losers", limit)
}

func (y *YahooSource) fetchList(ctx context.Context, rawURL, listName string, limit int) ([]string, error) {
	var resp yahooListResponse
	if err := y.getJSON(ctx, rawURL, &resp); err != nil {
		return nil, apperr.DataSource(fmt.Sprintf("failed to fetch %s tickers", listName), err)
	}
	if len(resp.Finance.Result) == 0 {
		return nil, apperr.DataSource(fmt.Sprintf("%s response missing quotes", listName), nil)
	}
	raw := make([]string, 0, len(resp.Finance.Result[0].Quotes))
	for _, q := range resp.Finance.Result[0].Quotes {
		raw = append(raw, q.Symbol)
	}
	return sanitizeSymbols(raw, listName, limit)
}
