package registry

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"landgate/internal/platform/config"
	"landgate/pkg/platform/sentinel"
)

// Endpoints holds the base URLs of the upstream registries. Split out so
// tests can point every fetcher at a local server.
type Endpoints struct {
	LandUse    string // NSOLandUseInfoService: plans, regulations, prices
	Building   string // BldRgstService_v2: building ledger
	Mountain   string // ForestInfoService: mountain designations
	Culture    string // cultural heritage search
	Commercial string // commercial district store API (JSON)
	Permit     string // ArchPmsService_v2: building permits
	Unsold     string // MIFHService: unsold housing
}

// DefaultEndpoints returns the production registry endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		LandUse:    "https://apis.data.go.kr/1613000/NSOLandUseInfoService",
		Building:   "https://apis.data.go.kr/1613000/BldRgstService_v2",
		Mountain:   "https://apis.data.go.kr/1400000/ForestInfoService",
		Culture:    "https://www.cha.go.kr/cha/SearchKindOpenapi.do",
		Commercial: "https://apis.data.go.kr/B553077/api/open/sdsc2",
		Permit:     "https://apis.data.go.kr/1613000/ArchPmsService_v2",
		Unsold:     "https://apis.data.go.kr/1613000/MIFHService",
	}
}

// Client issues registry calls. It is safe for concurrent use; all state is
// read-only wiring.
type Client struct {
	endpoints Endpoints
	dataKey   string
	tojiKey   string
	httpc     *http.Client
	log       *slog.Logger
}

// NewClient builds a registry client from config.
func NewClient(cfg config.Server, eps Endpoints, log *slog.Logger) *Client {
	return &Client{
		endpoints: eps,
		dataKey:   cfg.DataGoKRKey,
		tojiKey:   cfg.TojiEumKey,
		httpc:     &http.Client{Timeout: config.RegistryCallTimeout},
		log:       log,
	}
}

// resultHeader is the embedded status block every registry response carries,
// whether the root element is <response> or <result>.
type resultHeader struct {
	Code string `xml:"resultCode" json:"resultCode"`
	Msg  string `xml:"resultMsg" json:"resultMsg"`
}

const resultCodeOK = "00"

type xmlEnvelope[T any] struct {
	Header resultHeader `xml:"header"`
	Items  []T          `xml:"body>items>item"`
}

type jsonEnvelope[T any] struct {
	Header resultHeader `json:"header"`
	Body   struct {
		Items []T `json:"items"`
	} `json:"body"`
}

// call performs one bounded registry request and returns the raw body. A
// missing or masked key is reported without touching the network: the caller
// falls back exactly as it would for a transport failure.
func (c *Client) call(ctx context.Context, endpoint, key string, params url.Values) ([]byte, error) {
	if key == "" || strings.Contains(key, "********") {
		return nil, sentinel.ErrMissingCredential
	}

	// Keys are often distributed pre-encoded; decode once so the query
	// encoder does not double-encode them.
	if decoded, err := url.QueryUnescape(key); err == nil {
		key = decoded
	}
	params.Set("serviceKey", key)

	ctx, cancel := context.WithTimeout(ctx, config.RegistryCallTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build registry request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w", endpoint, sentinel.ErrTimeout)
		}
		return nil, fmt.Errorf("%s: %w: %v", endpoint, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: status %d: %w", endpoint, resp.StatusCode, sentinel.ErrUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read registry body: %w", sentinel.ErrUnavailable)
	}
	return body, nil
}

// fetchXMLItems calls one structured-markup registry operation and returns
// its item list. Single-item bodies decode to a one-element list. A non-"00"
// embedded result code is treated identically to a transport failure.
func fetchXMLItems[T any](ctx context.Context, c *Client, endpoint, key string, params url.Values) ([]T, error) {
	params.Set("format", "xml")

	body, err := c.call(ctx, endpoint, key, params)
	if err != nil {
		return nil, err
	}

	var env xmlEnvelope[T]
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", endpoint, sentinel.ErrBadUpstream, err)
	}
	if env.Header.Code != resultCodeOK {
		return nil, fmt.Errorf("%s: result %q (%s): %w",
			endpoint, env.Header.Code, env.Header.Msg, sentinel.ErrUpstreamStatus)
	}
	return env.Items, nil
}

// fetchJSONItems is the JSON twin of fetchXMLItems for registries that only
// speak JSON.
func fetchJSONItems[T any](ctx context.Context, c *Client, endpoint, key string, params url.Values) ([]T, error) {
	params.Set("type", "json")

	body, err := c.call(ctx, endpoint, key, params)
	if err != nil {
		return nil, err
	}

	var env jsonEnvelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", endpoint, sentinel.ErrBadUpstream, err)
	}
	if env.Header.Code != resultCodeOK {
		return nil, fmt.Errorf("%s: result %q (%s): %w",
			endpoint, env.Header.Code, env.Header.Msg, sentinel.ErrUpstreamStatus)
	}
	return env.Body.Items, nil
}

// fallbackWarn logs why a source degraded; the caller still gets a complete
// record set.
func (c *Client) fallbackWarn(ctx context.Context, source string, err error) {
	c.log.WarnContext(ctx, "registry source degraded to fallback",
		"source", source,
		"error", err,
	)
}
