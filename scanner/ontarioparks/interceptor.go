package ontarioparks

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"campscan/models"
	"campscan/utils"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// endpointTokens filter background responses down to the platform's
// availability data calls. Platform-specific; adjust here if the upstream
// page structure changes.
var endpointTokens = []string{"avail", "camp", "inventory", "site", "unit"}

// Key synonyms observed in the platform's JSON payloads.
var (
	siteKeys      = []string{"unitName", "siteName", "site", "name"}
	statusKeys    = []string{"status", "availability", "available", "isAvailable"}
	arrivalKeys   = []string{"startDate", "arrivalDate", "arrival", "date"}
	departureKeys = []string{"endDate", "departureDate", "departure"}
	priceKeys     = []string{"price", "rate", "amount", "totalPrice"}
)

const maxRawDetail = 400

// Interceptor captures availability rows from background JSON responses.
// Candidates are buffered under a mutex and drained by the orchestrator on
// its own schedule, so a response arriving mid-wait is never lost.
type Interceptor struct {
	logger *utils.Logger

	mu      sync.Mutex
	pending map[network.RequestID]string
	buf     []models.RawCandidate
	seq     int
}

// NewInterceptor creates an Interceptor
func NewInterceptor(logger *utils.Logger) *Interceptor {
	return &Interceptor{
		logger:  logger,
		pending: make(map[network.RequestID]string),
	}
}

// Attach registers the CDP listeners on ctx. Must be called before
// navigation; the listeners live for the lifetime of the scan context.
func (i *Interceptor) Attach(ctx context.Context) {
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		switch ev := ev.(type) {
		case *network.EventResponseReceived:
			if !matchesDataEndpoint(ev.Response.URL) {
				return
			}
			if !strings.Contains(strings.ToLower(ev.Response.MimeType), "json") {
				return
			}
			i.mu.Lock()
			i.pending[ev.RequestID] = ev.Response.URL
			i.mu.Unlock()
		case *network.EventLoadingFinished:
			i.mu.Lock()
			respURL, ok := i.pending[ev.RequestID]
			delete(i.pending, ev.RequestID)
			i.mu.Unlock()
			if !ok {
				return
			}
			// Body fetch goes through the CDP executor; do it off the
			// event loop so navigation never blocks on us.
			go i.capture(ctx, ev.RequestID, respURL)
		}
	})
}

func (i *Interceptor) capture(ctx context.Context, id network.RequestID, respURL string) {
	c := chromedp.FromContext(ctx)
	if c == nil || c.Target == nil {
		return
	}
	body, err := network.GetResponseBody(id).Do(cdp.WithExecutor(ctx, c.Target))
	if err != nil {
		i.logger.Debug("Response body unavailable for %s: %v", respURL, err)
		return
	}

	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		i.logger.Debug("Non-JSON body from %s, dropping", respURL)
		return
	}

	rows := extractRows(payload)
	if len(rows) == 0 {
		return
	}

	i.mu.Lock()
	for _, fields := range rows {
		i.seq++
		i.buf = append(i.buf, models.RawCandidate{
			Origin: models.OriginNetwork,
			Fields: fields,
			Seq:    i.seq,
		})
	}
	i.mu.Unlock()

	i.logger.Debug("Intercepted %d rows from %s", len(rows), respURL)
}

// Drain returns buffered candidates in arrival order and clears the buffer.
func (i *Interceptor) Drain() []models.RawCandidate {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.buf
	i.buf = nil
	return out
}

func matchesDataEndpoint(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, token := range endpointTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// extractRows walks a decoded JSON payload at any depth and pulls out every
// object that carries both a site-ish name key and a status-ish key.
func extractRows(data interface{}) []map[string]string {
	var rows []map[string]string
	walkJSON(data, func(node map[string]interface{}) {
		site := firstField(node, siteKeys)
		status := firstField(node, statusKeys)
		if site == "" || status == "" {
			return
		}

		fields := map[string]string{
			"site":   site,
			"status": status,
		}
		if v := firstField(node, arrivalKeys); v != "" {
			fields["arrival"] = v
		}
		if v := firstField(node, departureKeys); v != "" {
			fields["departure"] = v
		}
		if v := firstField(node, priceKeys); v != "" {
			fields["price"] = v
		}
		if raw, err := json.Marshal(node); err == nil {
			detail := string(raw)
			if len(detail) > maxRawDetail {
				detail = detail[:maxRawDetail]
			}
			fields["raw"] = detail
		}
		rows = append(rows, fields)
	})
	return rows
}

func walkJSON(data interface{}, visit func(map[string]interface{})) {
	switch node := data.(type) {
	case map[string]interface{}:
		visit(node)
		for _, v := range node {
			walkJSON(v, visit)
		}
	case []interface{}:
		for _, item := range node {
			walkJSON(item, visit)
		}
	}
}

// firstField looks node up by each key in order, case-insensitively, and
// stringifies the first scalar hit.
func firstField(node map[string]interface{}, keys []string) string {
	for _, key := range keys {
		lowerKey := strings.ToLower(key)
		for k, v := range node {
			if strings.ToLower(k) != lowerKey {
				continue
			}
			switch val := v.(type) {
			case string:
				if s := strings.TrimSpace(val); s != "" {
					return s
				}
			case bool:
				if val {
					return "true"
				}
				return "false"
			case float64:
				return strconv.FormatFloat(val, 'f', -1, 64)
			}
		}
	}
	return ""
}
