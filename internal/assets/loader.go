package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/draftgate/internal/cache"
	"github.com/ppiankov/draftgate/internal/logging"
	"github.com/ppiankov/draftgate/internal/model"
	"github.com/ppiankov/draftgate/internal/util"
	"github.com/ppiankov/draftgate/internal/worker"
)

const (
	// maxNamesPerRequest is the MediaWiki API limit for multi-value parameters
	maxNamesPerRequest = 50
	maxBodyBytes       = 2 << 20
)

// Loader fetches icon paths with rate limiting, robots.txt checks and an
// in-memory cache. It is safe for concurrent use.
type Loader struct {
	apiURL     string
	userAgent  string
	httpClient *http.Client
	limiter    *worker.Limiter
	robots     *util.RobotsChecker // nil when robots.txt is not consulted
	cache      *cache.MemoryCache
	ttl        time.Duration
	logger     logging.Logger
}

// NewLoader creates a loader from configuration
func NewLoader(cfg model.AssetsConfig, logger logging.Logger) *Loader {
	client := util.NewHTTPClient(cfg.Timeout, cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy)

	l := &Loader{
		apiURL:     cfg.APIURL,
		userAgent:  cfg.UserAgent,
		httpClient: client,
		limiter:    worker.NewLimiter(cfg.RequestsPerSecond, cfg.BurstSize),
		cache:      cache.NewMemoryCache(cfg.CacheTTL, 2*cfg.CacheTTL+time.Minute),
		ttl:        cfg.CacheTTL,
		logger:     logging.OrNop(logger),
	}
	if cfg.RespectRobots {
		l.robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout, client)
	}
	return l
}

// Load returns the icons it could obtain. It never fails: network, robots
// and decoding problems are logged at debug level and the affected names are
// left out.
func (l *Loader) Load(ctx context.Context, names []string) map[string]Icon {
	icons := make(map[string]Icon)

	var missing []string
	for _, name := range normalizeNames(names) {
		if data, ok := l.cache.Get(cache.Key("icon", name)); ok {
			var icon Icon
			if json.Unmarshal(data, &icon) == nil {
				icons[name] = icon
				continue
			}
		}
		missing = append(missing, name)
	}

	for start := 0; start < len(missing); start += maxNamesPerRequest {
		end := start + maxNamesPerRequest
		if end > len(missing) {
			end = len(missing)
		}

		fetched, err := l.fetch(ctx, missing[start:end])
		if err != nil {
			l.logger.Debug("Icon fetch failed", logging.Int("names", end-start), logging.Err(err))
			continue
		}

		for name, icon := range fetched {
			icons[name] = icon
			if data, err := json.Marshal(icon); err == nil {
				l.cache.Set(cache.Key("icon", name), data, l.ttl)
			}
		}
	}

	return icons
}

// LoadAsync loads icons in the background and hands the result to done.
// It returns immediately; done may never see some names.
func (l *Loader) LoadAsync(ctx context.Context, names []string, done func(map[string]Icon)) {
	go func() {
		icons := l.Load(ctx, names)
		if done != nil {
			done(icons)
		}
	}()
}

// RequestURL builds the codexicons query for a set of names
func (l *Loader) RequestURL(names []string) (string, error) {
	u, err := url.Parse(l.apiURL)
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}

	q := u.Query()
	q.Set("action", "query")
	q.Set("list", "codexicons")
	q.Set("format", "json")
	q.Set("origin", "*")
	q.Set("names", strings.Join(names, "|"))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

type codexResponse struct {
	Query struct {
		CodexIcons map[string]json.RawMessage `json:"codexicons"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

func (l *Loader) fetch(ctx context.Context, names []string) (map[string]Icon, error) {
	target, err := l.RequestURL(names)
	if err != nil {
		return nil, err
	}

	if l.robots != nil {
		allowed, delay, err := l.robots.CanFetch(ctx, target)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("disallowed by robots.txt: %s", target)
		}
		if delay > 0 {
			l.limiter.SetHostRate(hostOf(target), float64(time.Second)/float64(delay), 1)
		}
	}

	if err := l.limiter.Wait(ctx, target); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var parsed codexResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("api error %s: %s", parsed.Error.Code, parsed.Error.Info)
	}

	icons := make(map[string]Icon, len(parsed.Query.CodexIcons))
	for name, raw := range parsed.Query.CodexIcons {
		var icon Icon
		if err := json.Unmarshal(raw, &icon); err != nil {
			l.logger.Debug("Icon skipped", logging.String("name", name), logging.Err(err))
			continue
		}
		icons[name] = icon
	}

	l.logger.Debug("Icons fetched", logging.Int("requested", len(names)), logging.Int("received", len(icons)))
	return icons, nil
}

// normalizeNames trims, de-duplicates and sorts icon names
func normalizeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
