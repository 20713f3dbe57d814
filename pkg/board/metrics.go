package board

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stickies",
		Name:      "mutations_total",
		Help:      "Store mutations applied, by operation.",
	}, []string{"op"})

	savesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stickies",
		Name:      "saves_total",
		Help:      "Collection writes, by storage tier and result.",
	}, []string{"tier", "result"})

	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stickies",
		Name:      "loads_total",
		Help:      "Collection loads, by the tier that served them.",
	}, []string{"tier"})

	backupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stickies",
		Name:      "backups_total",
		Help:      "Backups attempted, by result.",
	}, []string{"result"})

	pendingSave = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "stickies",
		Name:      "pending_save",
		Help:      "1 while a debounced save is waiting to fire.",
	})
)
