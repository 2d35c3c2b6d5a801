// Package metrics collects Prometheus counters for the API and exposes them
// on a dedicated listener, kept off the main application port.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates application counters. A nil *Collector is valid and
// records nothing, so handlers never need to guard metric calls.
type Collector struct {
	registry *prometheus.Registry

	registrations prometheus.Counter
	verifications prometheus.Counter
	logins        *prometheus.CounterVec
	emailsSent    prometheus.Counter
	emailFailures prometheus.Counter
	tripsCreated  prometheus.Counter
	itineraries   prometheus.Counter
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	collector := &Collector{
		registry: registry,
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goplanner_registrations_total",
			Help: "Accepted registration requests.",
		}),
		verifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goplanner_verifications_total",
			Help: "Successful email verifications.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "goplanner_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		emailsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goplanner_emails_sent_total",
			Help: "Notification emails handed to the dispatcher.",
		}),
		emailFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goplanner_email_failures_total",
			Help: "Notification dispatch failures.",
		}),
		tripsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goplanner_trips_created_total",
			Help: "Trips created.",
		}),
		itineraries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goplanner_itineraries_generated_total",
			Help: "Itineraries generated (remote or fallback).",
		}),
	}

	registry.MustRegister(
		collector.registrations,
		collector.verifications,
		collector.logins,
		collector.emailsSent,
		collector.emailFailures,
		collector.tripsCreated,
		collector.itineraries,
	)
	return collector
}

// Handler serves the collector's registry in the Prometheus text format.
func (collector *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(collector.registry, promhttp.HandlerOpts{})
}

func (collector *Collector) RecordRegistration() {
	if collector == nil {
		return
	}
	collector.registrations.Inc()
}

func (collector *Collector) RecordVerification() {
	if collector == nil {
		return
	}
	collector.verifications.Inc()
}

func (collector *Collector) RecordLogin(success bool) {
	if collector == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	collector.logins.WithLabelValues(outcome).Inc()
}

func (collector *Collector) RecordEmailSent() {
	if collector == nil {
		return
	}
	collector.emailsSent.Inc()
}

func (collector *Collector) RecordEmailFailure() {
	if collector == nil {
		return
	}
	collector.emailFailures.Inc()
}

func (collector *Collector) RecordTripCreated() {
	if collector == nil {
		return
	}
	collector.tripsCreated.Inc()
}

func (collector *Collector) RecordItineraryGenerated() {
	if collector == nil {
		return
	}
	collector.itineraries.Inc()
}
