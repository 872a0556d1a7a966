package polygon

import (
	"encoding/json"
	"fmt"
	"strconv"

	"stockfeed/internal/provider"
)

const statusOK = "OK"

// tickerRaw is one entry of /v3/reference/tickers.
type tickerRaw struct {
	Ticker          string `json:"ticker"`
	Name            string `json:"name"`
	PrimaryExchange string `json:"primary_exchange"`
	Type            string `json:"type"`
	Active          *bool  `json:"active"`
}

func (r tickerRaw) toRef() provider.TickerRef {
	return provider.TickerRef{
		Symbol:      r.Ticker,
		DisplayName: r.Name,
		Exchange:    r.PrimaryExchange,
		AssetType:   r.Type,
		Active:      r.Active,
	}
}

type tickerSearchResponse struct {
	Status    string      `json:"status"`
	RequestID string      `json:"request_id"`
	Count     int         `json:"count"`
	Results   []tickerRaw `json:"results"`
}

type tickerDetailResponse struct {
	Status    string     `json:"status"`
	RequestID string     `json:"request_id"`
	Results   *tickerRaw `json:"results"`
}

// barRaw is an aggregate bar as Polygon encodes it. Ticker must stay mapped:
// encoding/json matches keys case-insensitively and "T" would otherwise land
// in Timestamp.
type barRaw struct {
	Ticker       string    `json:"T"`
	Timestamp    flexInt64 `json:"t"`
	Open         float64   `json:"o"`
	High         float64   `json:"h"`
	Low          float64   `json:"l"`
	Close        float64   `json:"c"`
	Volume       *float64  `json:"v"`
	VWAP         *float64  `json:"vw"`
	Transactions *int64    `json:"n"`
}

func (b barRaw) toBar() provider.DailyBar {
	return provider.DailyBar{
		Open:            b.Open,
		High:            b.High,
		Low:             b.Low,
		Close:           b.Close,
		Volume:          b.Volume,
		VWAP:            b.VWAP,
		TimestampMillis: int64(b.Timestamp),
	}
}

type aggregatesResponse struct {
	Ticker       string   `json:"ticker"`
	Status       string   `json:"status"`
	RequestID    string   `json:"request_id"`
	ResultsCount int      `json:"resultsCount"`
	Adjusted     bool     `json:"adjusted"`
	Results      []barRaw `json:"results"`
}

type publisherRaw struct {
	Name string `json:"name"`
}

type newsRaw struct {
	Title        string       `json:"title"`
	Author       string       `json:"author"`
	PublishedUTC string       `json:"published_utc"`
	ArticleURL   string       `json:"article_url"`
	ImageURL     string       `json:"image_url"`
	Description  string       `json:"description"`
	Publisher    publisherRaw `json:"publisher"`
}

func (n newsRaw) toItem() provider.NewsItem {
	author := n.Author
	if author == "" {
		author = n.Publisher.Name
	}
	return provider.NewsItem{
		Title:       n.Title,
		Author:      author,
		PublishedAt: n.PublishedUTC,
		URL:         n.ArticleURL,
		ImageURL:    n.ImageURL,
		Summary:     n.Description,
	}
}

type newsResponse struct {
	Status    string    `json:"status"`
	RequestID string    `json:"request_id"`
	Count     int       `json:"count"`
	Results   []newsRaw `json:"results"`
}

// flexInt64 accepts an integer, a float (including exponent form) or a
// numeric string. Timestamps occasionally arrive as 1.7046e+12.
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = flexInt64(int64(v))
		return nil
	}

	var i int64
	if err := json.Unmarshal(data, &i); err == nil {
		*f = flexInt64(i)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = flexInt64(int64(v))
		return nil
	}

	return fmt.Errorf("cannot parse as int64: %s", string(data))
}
