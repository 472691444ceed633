package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ModeShort    = "short"
	ModeExtended = "extended"
)

var (
	// AdviceTotal: сколько раз бот показал советы по посещаемости.
	AdviceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "advice_total",
		Help:      "Bunk/need advice renderings by mode.",
	}, []string{"mode"})

	SubjectsImported = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "subjects_imported_total",
		Help:      "Subjects saved from uploaded xlsx files.",
	})

	// DoNotBunkTotal считает случаи, когда посещаемость уже на пороге или ниже.
	DoNotBunkTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance",
		Name:      "do_not_bunk_total",
		Help:      "Advice renderings where attendance is at or below the minimum.",
	})
)

func Mode(extended bool) string {
	if extended {
		return ModeExtended
	}
	return ModeShort
}
