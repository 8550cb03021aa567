package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total orders successfully created",
		},
	)

	ticketsCheckedIn = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_checked_in_total",
			Help: "Total successful ticket check-ins",
		},
	)

	refundsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refunds_processed_total",
			Help: "Total refund requests processed",
		},
		[]string{"decision"},
	)

	ticketsSold = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tickets_sold",
			Help: "Current sold counter per ticket type",
		},
		[]string{"ticket_type_id"},
	)
)

func RecordOrderCreated() {
	ordersCreated.Inc()
}

func RecordCheckIn() {
	ticketsCheckedIn.Inc()
}

func RecordRefundDecision(decision string) {
	refundsProcessed.WithLabelValues(decision).Inc()
}

func SetTicketsSold(ticketTypeID string, sold float64) {
	ticketsSold.WithLabelValues(ticketTypeID).Set(sold)
}
