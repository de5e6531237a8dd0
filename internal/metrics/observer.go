package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"spl-ac-seq-parse/internal/logic/core"
)

// PrometheusObserver 把解析流程的诊断事件转为 Prometheus 计数
type PrometheusObserver struct {
	fetchAttempts *prometheus.CounterVec
	fetchFailures *prometheus.CounterVec
	skipped       *prometheus.CounterVec
	emitted       prometheus.Counter
}

// NewPrometheusObserver 在 reg 上注册全部指标；重复注册返回错误
func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	o := &PrometheusObserver{
		fetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_attempts_total",
			Help:      "getTransaction requests issued, labelled by 1-based attempt number.",
		}, []string{"attempt"}),
		fetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      "getTransaction requests that failed or returned no transaction.",
		}, []string{"attempt"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instructions_skipped_total",
			Help:      "Inner instructions that produced no change-log event.",
		}, []string{"reason"}),
		emitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sequences_emitted_total",
			Help:      "Change-log sequence numbers extracted.",
		}),
	}
	for _, c := range []prometheus.Collector{o.fetchAttempts, o.fetchFailures, o.skipped, o.emitted} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func attemptLabel(attempt int) string {
	switch {
	case attempt <= 1:
		return "1"
	case attempt == 2:
		return "2"
	case attempt == 3:
		return "3"
	default:
		return "4+"
	}
}

func (o *PrometheusObserver) OnFetchAttempt(_ string, attempt int) {
	o.fetchAttempts.WithLabelValues(attemptLabel(attempt)).Inc()
}

func (o *PrometheusObserver) OnFetchFailure(_ string, attempt int, _ error) {
	o.fetchFailures.WithLabelValues(attemptLabel(attempt)).Inc()
}

func (o *PrometheusObserver) OnInstructionSkipped(_ string, _, _ uint16, reason core.SkipReason, _ error) {
	o.skipped.WithLabelValues(string(reason)).Inc()
}

func (o *PrometheusObserver) OnSequenceEmitted(string, core.ChangeLog) {
	o.emitted.Inc()
}
