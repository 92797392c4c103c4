package services

import "github.com/prometheus/client_golang/prometheus"

const (
	fallbackRules = "rules"
	fallbackParse = "parse"
	fallbackChat  = "chat"
)

// fallbacks counts degraded answers by kind.
var fallbacks = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "assistant_fallbacks_total",
		Help: "Total number of answers served from fallback content.",
	},
	[]string{"kind"},
)

func init() {
	prometheus.MustRegister(fallbacks)
}
