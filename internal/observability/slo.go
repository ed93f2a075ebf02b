package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/yungbote/cleanarch-backend/internal/platform/envutil"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

type rollingSum struct {
	values []float64
	idx    int
	total  float64
}

func newRollingSum(size int) *rollingSum {
	if size < 1 {
		size = 1
	}
	return &rollingSum{values: make([]float64, size)}
}

func (r *rollingSum) add(v float64) {
	r.total += v - r.values[r.idx]
	r.values[r.idx] = v
	r.idx++
	if r.idx >= len(r.values) {
		r.idx = 0
	}
}

// SLOConfig is read from SLO_* environment variables.
type SLOConfig struct {
	Interval         time.Duration
	Window           time.Duration
	AvailTarget      float64
	LatencyTarget    float64
	UnitOfWorkTarget float64
	AlertWebhook     string
	AlertOwner       string
	AlertMinInterval time.Duration
	BurnWarn         float64
	BurnCrit         float64
}

func LoadSLOConfig() SLOConfig {
	return SLOConfig{
		Interval:         envutil.Duration("SLO_EVAL_INTERVAL", time.Minute),
		Window:           envutil.Duration("SLO_WINDOW", 24*time.Hour),
		AvailTarget:      clamp01(envFloat("SLO_API_AVAIL_TARGET", 0.995)),
		LatencyTarget:    clamp01(envFloat("SLO_API_LATENCY_TARGET", 0.95)),
		UnitOfWorkTarget: clamp01(envFloat("SLO_UOW_SUCCESS_TARGET", 0.99)),
		AlertWebhook:     envutil.String("SLO_ALERT_WEBHOOK_URL", ""),
		AlertOwner:       envutil.String("SLO_ALERT_OWNER", ""),
		AlertMinInterval: envutil.Duration("SLO_ALERT_MIN_INTERVAL", 15*time.Minute),
		BurnWarn:         envFloat("SLO_ALERT_BURN_RATE_WARN", 2),
		BurnCrit:         envFloat("SLO_ALERT_BURN_RATE_CRIT", 10),
	}
}

// SLOEvaluator turns the raw request and transaction counters into rolling
// compliance, error budget and burn rate gauges.
type SLOEvaluator struct {
	metrics     *Metrics
	log         *logger.Logger
	cfg         SLOConfig
	windowLabel string
	client      *http.Client

	apiTotal *rollingSum
	apiError *rollingSum
	apiGood  *rollingSum
	uowTotal *rollingSum
	uowError *rollingSum

	prev counterSnapshot

	alertMu    sync.Mutex
	lastAlerts map[string]time.Time
}

type counterSnapshot struct {
	apiTotal, apiError, apiGood float64
	uowTotal, uowError          float64
}

func (m *Metrics) StartSLOEvaluator(ctx context.Context, log *logger.Logger) {
	if m == nil || !envutil.Bool("SLO_ENABLED", false) {
		return
	}
	eval := NewSLOEvaluator(m, log, LoadSLOConfig())
	go eval.run(ctx)
	if log != nil {
		log.Info("SLO evaluator started", "window", eval.windowLabel, "interval", eval.cfg.Interval.String())
	}
}

func NewSLOEvaluator(m *Metrics, log *logger.Logger, cfg SLOConfig) *SLOEvaluator {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Window < cfg.Interval {
		cfg.Window = cfg.Interval
	}
	size := int(cfg.Window / cfg.Interval)
	return &SLOEvaluator{
		metrics:     m,
		log:         log,
		cfg:         cfg,
		windowLabel: formatWindowLabel(cfg.Window),
		client:      &http.Client{Timeout: 5 * time.Second},
		apiTotal:    newRollingSum(size),
		apiError:    newRollingSum(size),
		apiGood:     newRollingSum(size),
		uowTotal:    newRollingSum(size),
		uowError:    newRollingSum(size),
		lastAlerts:  map[string]time.Time{},
	}
}

func (e *SLOEvaluator) run(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.evaluate()
		}
	}
}

func (e *SLOEvaluator) evaluate() {
	if e.metrics == nil {
		return
	}
	cur := e.metrics.snapshot()

	e.apiTotal.add(delta(cur.apiTotal, e.prev.apiTotal))
	e.apiError.add(delta(cur.apiError, e.prev.apiError))
	e.apiGood.add(delta(cur.apiGood, e.prev.apiGood))
	e.uowTotal.add(delta(cur.uowTotal, e.prev.uowTotal))
	e.uowError.add(delta(cur.uowError, e.prev.uowError))
	e.prev = cur

	e.evalSLO("api_availability", e.apiTotal.total, e.apiError.total, e.cfg.AvailTarget)
	e.evalSLO("api_latency", e.apiTotal.total, e.apiTotal.total-e.apiGood.total, e.cfg.LatencyTarget)
	e.evalSLO("unit_of_work_success", e.uowTotal.total, e.uowError.total, e.cfg.UnitOfWorkTarget)
}

func (e *SLOEvaluator) evalSLO(name string, total, bad, target float64) {
	if total <= 0 {
		e.metrics.setSLO(name, e.windowLabel, 1, 1, 0)
		return
	}
	sli := clamp01(1 - bad/total)
	burn := 0.0
	if target < 1 {
		burn = (1 - sli) / (1 - target)
	}
	budget := clamp01(1 - burn)
	e.metrics.setSLO(name, e.windowLabel, sli, budget, burn)

	if e.cfg.AlertWebhook == "" || e.cfg.AlertOwner == "" {
		return
	}
	severity := ""
	if burn >= e.cfg.BurnCrit {
		severity = "critical"
	} else if burn >= e.cfg.BurnWarn {
		severity = "warning"
	}
	if severity == "" {
		return
	}
	key := name + ":" + severity
	e.alertMu.Lock()
	last := e.lastAlerts[key]
	if !last.IsZero() && time.Since(last) < e.cfg.AlertMinInterval {
		e.alertMu.Unlock()
		return
	}
	e.lastAlerts[key] = time.Now()
	e.alertMu.Unlock()
	e.sendAlert(name, severity, sli, target, burn, budget)
}

func (e *SLOEvaluator) sendAlert(name, severity string, sli, target, burn, budget float64) {
	body, _ := json.Marshal(map[string]any{
		"title":                  "SLO burn rate alert",
		"severity":               severity,
		"owner":                  e.cfg.AlertOwner,
		"slo":                    name,
		"window":                 e.windowLabel,
		"sli":                    sli,
		"target":                 target,
		"burn_rate":              burn,
		"error_budget_remaining": budget,
		"timestamp":              time.Now().UTC().Format(time.RFC3339),
	})
	req, err := http.NewRequest(http.MethodPost, e.cfg.AlertWebhook, bytes.NewReader(body))
	if err != nil {
		e.warn("slo alert request build failed", "error", err, "slo", name)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.client.Do(req)
	if err != nil {
		e.warn("slo alert post failed", "error", err, "slo", name)
		return
	}
	_ = resp.Body.Close()
	if e.log != nil {
		e.log.Info("slo alert sent", "slo", name, "severity", severity, "status", resp.StatusCode)
	}
}

func (e *SLOEvaluator) warn(msg string, kv ...any) {
	if e.log != nil {
		e.log.Warn(msg, kv...)
	}
}

// delta treats a counter that went backwards as a process restart.
func delta(current, prev float64) float64 {
	if current < prev {
		return current
	}
	return current - prev
}

func envFloat(key string, def float64) float64 {
	raw := envutil.String(key, "")
	if raw == "" {
		return def
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return def
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func formatWindowLabel(window time.Duration) string {
	if window >= 24*time.Hour && window%(24*time.Hour) == 0 {
		return strconv.Itoa(int(window/(24*time.Hour))) + "d"
	}
	if window >= time.Hour {
		return strconv.Itoa(int(window.Hours())) + "h"
	}
	return strconv.Itoa(int(window.Minutes())) + "m"
}
