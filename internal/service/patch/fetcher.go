// Package patch discovers the current game patch from the official patch-notes listing.
package patch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/wildrift-guide-go/internal/constants"
	"github.com/kapu/wildrift-guide-go/internal/service/cache"
	"github.com/kapu/wildrift-guide-go/internal/util"
	guideerrors "github.com/kapu/wildrift-guide-go/pkg/errors"
	"go.uber.org/zap"
)

var (
	hrefPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)wild-rift-patch-notes-(\d+)-(\d+)([a-z]?)`),
		regexp.MustCompile(`(?i)patch-notes-(\d+)-(\d+)([a-z]?)`),
		regexp.MustCompile(`(?i)patch-(\d+)-(\d+)([a-z]?)`),
	}
	versionPattern = regexp.MustCompile(`^\d+\.\d+[a-z]?$`)
)

var (
	// ErrNoPatchFound means the listing page carried no recognisable patch-notes link.
	ErrNoPatchFound = errors.New("no patch notes link found")
	// ErrCircuitOpen is returned without a request while the listing keeps failing.
	ErrCircuitOpen = errors.New("patch listing temporarily disabled after repeated failures")
)

// Version is a major.minor[letter] patch label such as 6.2b.
type Version struct {
	Major  int
	Minor  int
	Letter string
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d%s", v.Major, v.Minor, v.Letter)
}

// Less orders by major, minor, then letter ("" < "a" < "b").
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Letter < o.Letter
}

type Info struct {
	Version string `json:"version"`
	Title   string `json:"title"`
	URL     string `json:"url"`
}

// IsValidVersion reports whether s looks like 6.2 or 6.2b.
func IsValidVersion(s string) bool {
	return versionPattern.MatchString(s)
}

type Config struct {
	URL       string
	Timeout   time.Duration
	UserAgent string
	CacheTTL  time.Duration
	// FailureThreshold consecutive failures stop requests for Cooldown.
	FailureThreshold int
	Cooldown         time.Duration
	Logger           *zap.Logger
}

// Fetcher caches the last successful lookup for CacheTTL.
type Fetcher struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	cache      *cache.TTLCache[string, Info]
	breaker    *util.CircuitBreaker
	logger     *zap.Logger
}

func NewFetcher(cfg Config) *Fetcher {
	if cfg.URL == "" {
		cfg.URL = constants.PatchSource.URL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.PatchSource.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = constants.PatchSource.UserAgent
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = constants.CacheTTL.Patch
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = constants.PatchSource.FailureThreshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = constants.PatchSource.Cooldown
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.URL,
		userAgent:  cfg.UserAgent,
		cache:      cache.NewTTLCache[string, Info](cfg.CacheTTL, nil),
		breaker:    util.NewCircuitBreaker(cfg.FailureThreshold, cfg.Cooldown, cfg.Logger),
		logger:     cfg.Logger,
	}
}

// Latest returns the newest patch linked from the listing page.
func (f *Fetcher) Latest(ctx context.Context) (Info, error) {
	if info, ok := f.cache.Get(f.baseURL); ok {
		return info, nil
	}
	if !f.breaker.CanExecute() {
		return Info{}, ErrCircuitOpen
	}

	info, err := f.fetch(ctx)
	if err != nil {
		f.breaker.RecordFailure()
		return Info{}, err
	}
	f.breaker.RecordSuccess()
	f.cache.Set(f.baseURL, info)
	f.logger.Info("Latest patch discovered", zap.String("version", info.Version), zap.String("url", info.URL))
	return info, nil
}

func (f *Fetcher) fetch(ctx context.Context) (Info, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL, nil)
	if err != nil {
		return Info{}, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return Info{}, guideerrors.NewServiceError("patch listing request failed", "patch", "fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Info{}, guideerrors.NewAPIError(
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
			resp.StatusCode,
			map[string]any{"url": f.baseURL},
		)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Info{}, guideerrors.NewServiceError("failed to parse patch listing", "patch", "parse", err)
	}

	info, ok := f.pickLatest(doc)
	if !ok {
		return Info{}, ErrNoPatchFound
	}
	return info, nil
}

// Current returns the latest version or fallback when the listing cannot be read.
func (f *Fetcher) Current(ctx context.Context, fallback string) string {
	info, err := f.Latest(ctx)
	if err != nil {
		f.logger.Warn("Patch lookup failed, using configured label", zap.String("fallback", fallback), zap.Error(err))
		return fallback
	}
	return info.Version
}

func (f *Fetcher) pickLatest(doc *goquery.Document) (Info, bool) {
	var (
		best     Version
		bestHref string
		found    bool
	)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		v, ok := ParseHref(href)
		if !ok {
			return
		}
		if !found || best.Less(v) {
			best, bestHref, found = v, href, true
		}
	})
	if !found {
		return Info{}, false
	}
	return Info{
		Version: best.String(),
		Title:   "Wild Rift Patch " + best.String(),
		URL:     f.resolve(bestHref),
	}, true
}

func (f *Fetcher) resolve(href string) string {
	base, err := url.Parse(f.baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// ParseHref extracts the highest patch version mentioned in a link.
func ParseHref(href string) (Version, bool) {
	var (
		best  Version
		found bool
	)
	for _, re := range hrefPatterns {
		for _, m := range re.FindAllStringSubmatch(href, -1) {
			major, err1 := strconv.Atoi(m[1])
			minor, err2 := strconv.Atoi(m[2])
			if err1 != nil || err2 != nil {
				continue
			}
			v := Version{Major: major, Minor: minor, Letter: strings.ToLower(m[3])}
			if !found || best.Less(v) {
				best, found = v, true
			}
		}
	}
	return best, found
}
