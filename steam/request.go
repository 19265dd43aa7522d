package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"steambot/setting"
)

const (
	APIBaseURL   = "https://api.steampowered.com"
	StoreBaseURL = "https://store.steampowered.com"

	defaultTimeout = 5 * time.Second
)

type ResponseType int

const (
	ResponseJSON ResponseType = iota
	ResponseBinary
)

type Response struct {
	Status int
	Data   []byte
}

// Getter is the HTTP capability the plugin needs.
type Getter interface {
	Get(ctx context.Context, rawURL string, opts ...RequestOption) (*Response, error)
}

type requestOptions struct {
	baseURL      string
	responseType ResponseType
	params       url.Values
}

type RequestOption func(*requestOptions)

// WithBaseURL replaces the base url prefixed to relative paths. "" sends
// the url as given.
func WithBaseURL(baseURL string) RequestOption {
	return func(o *requestOptions) {
		o.baseURL = baseURL
	}
}

func WithResponseType(t ResponseType) RequestOption {
	return func(o *requestOptions) {
		o.responseType = t
	}
}

func WithParams(params url.Values) RequestOption {
	return func(o *requestOptions) {
		o.params = params
	}
}

// Requester is a Getter that follows the steam.* settings on every call:
// timeout, HTTP proxy and the api/store/common reverse proxies.
type Requester struct {
	settings *setting.Store
	client   *http.Client
}

func NewRequester(settings *setting.Store) *Requester {
	r := &Requester{settings: settings}
	r.client = &http.Client{
		Transport: &http.Transport{
			Proxy: r.proxy,
		},
	}
	return r
}

func (r *Requester) proxy(req *http.Request) (*url.URL, error) {
	proxy := strings.TrimSpace(r.settings.String("steam.proxy"))
	if proxy == "" {
		return http.ProxyFromEnvironment(req)
	}
	return url.Parse(proxy)
}

func (r *Requester) timeout() time.Duration {
	seconds := r.settings.Float("steam.timeout")
	if seconds <= 0 {
		return defaultTimeout
	}
	return time.Duration(seconds * float64(time.Second))
}

func buildOptions(opts []RequestOption) requestOptions {
	o := requestOptions{baseURL: APIBaseURL}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ResolveURL applies the base url, query params and reverse proxies.
func (r *Requester) ResolveURL(rawURL string, opts ...RequestOption) (string, error) {
	return r.resolve(rawURL, buildOptions(opts))
}

func (r *Requester) resolve(rawURL string, o requestOptions) (string, error) {
	target := rawURL
	if o.baseURL != "" && !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		target = strings.TrimSuffix(o.baseURL, "/") + "/" + strings.TrimPrefix(rawURL, "/")
	}

	if len(o.params) > 0 {
		u, err := url.Parse(target)
		if err != nil {
			return "", fmt.Errorf("invalid url %q: %w", target, err)
		}
		q := u.Query()
		for k, values := range o.params {
			for _, v := range values {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
		target = u.String()
	}

	if apiProxy := strings.TrimSpace(r.settings.String("steam.apiProxy")); apiProxy != "" && strings.HasPrefix(target, APIBaseURL) {
		target = strings.TrimSuffix(apiProxy, "/") + strings.TrimPrefix(target, APIBaseURL)
	}
	if storeProxy := strings.TrimSpace(r.settings.String("steam.storeProxy")); storeProxy != "" && strings.HasPrefix(target, StoreBaseURL) {
		target = strings.TrimSuffix(storeProxy, "/") + strings.TrimPrefix(target, StoreBaseURL)
	}
	if commonProxy := strings.TrimSpace(r.settings.String("steam.commonProxy")); commonProxy != "" {
		target = strings.ReplaceAll(commonProxy, "{{url}}", target)
	}
	return target, nil
}

func (r *Requester) Get(ctx context.Context, rawURL string, opts ...RequestOption) (*Response, error) {
	o := buildOptions(opts)
	target, err := r.resolve(rawURL, o)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	if o.responseType == ResponseJSON {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %s", rawURL, resp.Status)
	}
	return &Response{Status: resp.StatusCode, Data: body}, nil
}

// GetJSON decodes the JSON body of a GET into out.
func GetJSON(ctx context.Context, getter Getter, rawURL string, out any, opts ...RequestOption) error {
	resp, err := getter.Get(ctx, rawURL, append(opts, WithResponseType(ResponseJSON))...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("error unmarshalling %s: %w", rawURL, err)
	}
	return nil
}
