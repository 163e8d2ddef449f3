// Package search wraps the address-search upstream. One query fans out to
// the road-address and parcel-address categories concurrently and merges the
// two result lists, deduplicated by parcel identifier.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"landgate/internal/platform/config"
	"landgate/pkg/platform/sentinel"
)

const (
	categoryRoad   = "road"
	categoryParcel = "parcel"

	resultLimit = 10
)

// Point is a WGS84 coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Result is one address match. ID is the parcel identifier of the matched
// lot, usable directly against the report endpoints.
type Result struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	RoadAddress   string `json:"roadAddress"`
	ParcelAddress string `json:"parcelAddress"`
	Point         Point  `json:"point"`
}

// Client queries the address-search upstream.
type Client struct {
	baseURL string
	key     string
	httpc   *http.Client
	log     *slog.Logger
}

// NewClient builds a search client from config.
func NewClient(cfg config.Server, log *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.VWorldSearchURL,
		key:     cfg.VWorldKey,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// upstream response envelope; coordinates arrive as strings.
type searchResponse struct {
	Response struct {
		Status string `json:"status"`
		Result struct {
			Items []searchItem `json:"items"`
		} `json:"result"`
	} `json:"response"`
}

type searchItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Point struct {
		X string `json:"x"`
		Y string `json:"y"`
	} `json:"point"`
	Address struct {
		Road   string `json:"road"`
		Parcel string `json:"parcel"`
	} `json:"address"`
}

// Search runs both category searches and merges the results. Road-address
// matches come first; a parcel seen in both categories keeps its first entry.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if c.key == "" {
		return nil, sentinel.ErrMissingCredential
	}

	var road, parcel []Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		road, err = c.searchCategory(gctx, query, categoryRoad)
		return err
	})
	g.Go(func() error {
		var err error
		parcel, err = c.searchCategory(gctx, query, categoryParcel)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(road)+len(parcel))
	merged := make([]Result, 0, len(road)+len(parcel))
	for _, r := range append(road, parcel...) {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		merged = append(merged, r)
	}
	return merged, nil
}

func (c *Client) searchCategory(ctx context.Context, query, category string) ([]Result, error) {
	params := url.Values{
		"service":     {"search"},
		"request":     {"search"},
		"version":     {"2.0"},
		"format":      {"json"},
		"errorformat": {"json"},
		"type":        {"address"},
		"category":    {category},
		"size":        {strconv.Itoa(resultLimit)},
		"query":       {query},
		"key":         {c.key},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("search %s: %w", category, sentinel.ErrTimeout)
		}
		return nil, fmt.Errorf("search %s: %w: %v", category, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search %s: status %d: %w", category, resp.StatusCode, sentinel.ErrUpstreamStatus)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search body: %w", sentinel.ErrUnavailable)
	}

	var env searchResponse
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("search %s: %w: %v", category, sentinel.ErrBadUpstream, err)
	}

	switch env.Response.Status {
	case "OK":
	case "NOT_FOUND":
		// A category with no matches is a valid empty result.
		return nil, nil
	default:
		return nil, fmt.Errorf("search %s: status %q: %w", category, env.Response.Status, sentinel.ErrUpstreamStatus)
	}

	results := make([]Result, 0, len(env.Response.Result.Items))
	for _, item := range env.Response.Result.Items {
		x, _ := strconv.ParseFloat(item.Point.X, 64)
		y, _ := strconv.ParseFloat(item.Point.Y, 64)
		results = append(results, Result{
			ID:            item.ID,
			Title:         item.Title,
			RoadAddress:   item.Address.Road,
			ParcelAddress: item.Address.Parcel,
			Point:         Point{X: x, Y: y},
		})
	}
	return results, nil
}
