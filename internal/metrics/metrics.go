package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shareit_bookings_created_total",
		Help: "Total number of bookings successfully created.",
	})

	BookingsDecidedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shareit_bookings_decided_total",
		Help: "Total number of booking approve/reject decisions, by outcome.",
	},
		[]string{"status"},
	)

	CommentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shareit_comments_created_total",
		Help: "Total number of item comments successfully created.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shareit_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)
)
