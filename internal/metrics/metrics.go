// Package metrics holds the Prometheus counters for proposal and invitation outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "confsite"

// Invitation outcomes recorded by InvitationOutcome.
const (
	OutcomeInvited   = "invited"
	OutcomeSelf      = "self_invite"
	OutcomeDuplicate = "duplicate"
	OutcomeNotFound  = "not_found"
)

// Metrics is the set of application counters. A nil *Metrics records nothing.
type Metrics struct {
	registry            *prometheus.Registry
	proposalsSubmitted  *prometheus.CounterVec
	validationFailures  *prometheus.CounterVec
	speakerInvitations  *prometheus.CounterVec
	invitationEmailFail prometheus.Counter
}

// New registers the counters, plus the Go and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		proposalsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proposals_submitted_total",
			Help:      "Proposals stored, by variant.",
		}, []string{"variant"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proposal_validation_failures_total",
			Help:      "Proposal submissions rejected by validation, by variant.",
		}, []string{"variant"}),
		speakerInvitations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "speaker_invitations_total",
			Help:      "Speaker invitation attempts, by outcome.",
		}, []string{"outcome"}),
		invitationEmailFail: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invitation_emails_failed_total",
			Help:      "Invitation emails that could not be sent after the invitation was stored.",
		}),
	}
	m.registry.MustRegister(
		m.proposalsSubmitted,
		m.validationFailures,
		m.speakerInvitations,
		m.invitationEmailFail,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ProposalSubmitted(variant string) {
	if m == nil {
		return
	}
	m.proposalsSubmitted.WithLabelValues(variant).Inc()
}

func (m *Metrics) ValidationFailed(variant string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(variant).Inc()
}

func (m *Metrics) InvitationOutcome(outcome string) {
	if m == nil {
		return
	}
	m.speakerInvitations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) InvitationEmailFailed() {
	if m == nil {
		return
	}
	m.invitationEmailFail.Inc()
}
