// Package geo wraps the VWorld WFS feature service behind typed calls and
// provides the planar predicates used by the road connectivity analyzer.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"landgate/internal/platform/config"
	"landgate/pkg/domain"
	"landgate/pkg/platform/sentinel"
)

// Well-known VWorld layers used by this service.
const (
	LayerCadastral = "lp_pa_cbnd_bubun" // continuous cadastral map, parcel polygons
	LayerRoad      = "lt_l_upis_uq151"  // urban-planning road facility
)

// Feature is one decoded member of a WFS feature collection.
type Feature struct {
	Geometry   orb.Geometry
	Properties geojson.Properties
}

// Client issues WFS GetFeature calls. It holds no state beyond its wiring; a
// zero-feature result is valid and never an error.
type Client struct {
	baseURL string
	key     string
	domain  string
	httpc   *http.Client
	log     *slog.Logger
}

// NewClient builds a WFS client from config.
func NewClient(cfg config.Server, log *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.VWorldWFSURL,
		key:     cfg.VWorldKey,
		domain:  cfg.VWorldDomain,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// Query selects features from one layer. Exactly one of PNU, BBox or
// CQLFilter must be set; FetchRaw validates nothing beyond the credential and
// leaves selector validation to callers (the proxy handler enforces it).
type Query struct {
	Layer        string
	PNU          string
	BBox         string
	CQLFilter    string
	SRSName      string
	PropertyName string
	MaxFeatures  int
}

// FetchRaw performs one GetFeature call and returns the raw JSON body.
// An XML body (VWorld reports errors as XML regardless of OUTPUT) surfaces as
// sentinel.ErrBadUpstream.
func (c *Client) FetchRaw(ctx context.Context, q Query) (json.RawMessage, error) {
	if c.key == "" {
		return nil, sentinel.ErrMissingCredential
	}

	params := url.Values{}
	params.Set("SERVICE", "WFS")
	params.Set("REQUEST", "GetFeature")
	params.Set("TYPENAME", q.Layer)
	params.Set("OUTPUT", "application/json")
	params.Set("VERSION", "1.1.0")
	params.Set("KEY", c.key)
	params.Set("DOMAIN", c.domain)

	switch {
	case q.PNU != "":
		params.Set("MAXFEATURES", "1")
		params.Set("FILTER",
			"<Filter><PropertyIsEqualTo><PropertyName>pnu</PropertyName><Literal>"+q.PNU+"</Literal></PropertyIsEqualTo></Filter>")
	case q.CQLFilter != "":
		params.Set("CQL_FILTER", q.CQLFilter)
	case q.BBox != "":
		params.Set("BBOX", q.BBox)
		srs := q.SRSName
		if srs == "" {
			srs = "EPSG:4326"
		}
		params.Set("SRSNAME", srs)
		if q.PropertyName != "" {
			params.Set("PROPERTYNAME", q.PropertyName)
		}
	}
	if q.MaxFeatures > 0 {
		params.Set("MAXFEATURES", strconv.Itoa(q.MaxFeatures))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build wfs request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("wfs %s: %w", q.Layer, sentinel.ErrTimeout)
		}
		return nil, fmt.Errorf("wfs %s: %w: %v", q.Layer, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read wfs body: %w: %v", sentinel.ErrUnavailable, err)
	}

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "<") {
		c.log.WarnContext(ctx, "wfs returned xml instead of json",
			"layer", q.Layer, "body_prefix", clip(trimmed, 120))
		return nil, fmt.Errorf("wfs %s: %w", q.Layer, sentinel.ErrBadUpstream)
	}
	return json.RawMessage(body), nil
}

// FetchByParcel fetches the single feature matching a PNU on the given layer.
// Returns nil (not an error) when the layer has no matching feature.
func (c *Client) FetchByParcel(ctx context.Context, layer string, id domain.ParcelID) (*Feature, error) {
	raw, err := c.FetchRaw(ctx, Query{Layer: layer, PNU: id.String()})
	if err != nil {
		return nil, err
	}
	features, err := decodeFeatures(raw)
	if err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return nil, nil
	}
	return &features[0], nil
}

// FetchByBBox fetches all features of the layer intersecting the bbox
// ("minx,miny,maxx,maxy", EPSG:4326).
func (c *Client) FetchByBBox(ctx context.Context, layer, bbox string) ([]Feature, error) {
	raw, err := c.FetchRaw(ctx, Query{Layer: layer, BBox: bbox})
	if err != nil {
		return nil, err
	}
	return decodeFeatures(raw)
}

// FetchByFilter fetches all features matching a CQL expression.
func (c *Client) FetchByFilter(ctx context.Context, layer, cql string) ([]Feature, error) {
	raw, err := c.FetchRaw(ctx, Query{Layer: layer, CQLFilter: cql})
	if err != nil {
		return nil, err
	}
	return decodeFeatures(raw)
}

func decodeFeatures(raw json.RawMessage) ([]Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", sentinel.ErrBadUpstream)
	}
	features := make([]Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		features = append(features, Feature{Geometry: f.Geometry, Properties: f.Properties})
	}
	return features, nil
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
