// Package alphavantage implements the folio price-resolution contract on
// top of the AlphaVantage API.
//
// AlphaVantage is a stock and ETF quote API with free API access behind a
// provisioned key. https://www.alphavantage.co/documentation/
package alphavantage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"

	"folio"
)

const defaultBaseURL = "https://www.alphavantage.co/query"

// AlphaVantage keys its payloads with numbered, space-laden names, so the
// price fields are addressed with jsonpath bracket expressions.
const (
	quotePricePath   = `$["Global Quote"]["05. price"]`
	exchangeRatePath = `$["Realtime Currency Exchange Rate"]["5. Exchange Rate"]`
)

// Client is an HTTP client for the AlphaVantage API implementing
// folio.PriceResolver. It issues one call per lookup: no caching, batching
// or rate limiting happens at this boundary.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new AlphaVantage client.
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

// NewClientWithBaseURL creates a new AlphaVantage client with a custom base
// URL (for testing).
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Resolve returns the current unit price for the given ticker.
//
// Fixed-price types resolve to 1 without any call. Stocks and ETFs go
// through the GLOBAL_QUOTE endpoint by symbol; crypto goes through
// CURRENCY_EXCHANGE_RATE with the ticker as base currency and USD as quote
// currency. Any failure — network, status, payload shape — is logged and
// reported as ok == false.
func (c *Client) Resolve(ticker string, typ folio.AssetType) (price decimal.Decimal, ok bool) {
	if typ.FixedPrice() {
		return decimal.NewFromInt(1), true
	}

	params := url.Values{}
	var path string
	switch typ {
	case folio.Stock, folio.ETF:
		params.Set("function", "GLOBAL_QUOTE")
		params.Set("symbol", ticker)
		path = quotePricePath
	case folio.Crypto:
		params.Set("function", "CURRENCY_EXCHANGE_RATE")
		params.Set("from_currency", strings.ToUpper(ticker))
		params.Set("to_currency", "USD")
		path = exchangeRatePath
	default:
		log.Printf("alphavantage: unsupported asset type %q for %s", typ, ticker)
		return decimal.Decimal{}, false
	}
	params.Set("apikey", c.apiKey)

	var jobj any
	if err := jwget(c.httpClient, c.baseURL+"?"+params.Encode(), &jobj); err != nil {
		log.Printf("alphavantage: cannot fetch price for %s (%s): %v", ticker, typ, err)
		return decimal.Decimal{}, false
	}

	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		log.Printf("alphavantage: unexpected payload for %s (%s): %v", ticker, typ, err)
		return decimal.Decimal{}, false
	}

	// AlphaVantage serializes its numbers as JSON strings.
	s, isString := jval.(string)
	if !isString {
		log.Printf("alphavantage: unexpected payload for %s (%s): price is %T, not a string", ticker, typ, jval)
		return decimal.Decimal{}, false
	}
	price, err = decimal.NewFromString(s)
	if err != nil {
		log.Printf("alphavantage: cannot parse price %q for %s (%s): %v", s, ticker, typ, err)
		return decimal.Decimal{}, false
	}
	return price, true
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
