package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SigningMetrics defines the interface for recording the custodial signing
// service's business-level events: client/user lifecycle counts,
// authentication outcomes, and signing latency.
type SigningMetrics interface {
	// RecordClientCreated increments the client-creation counter.
	RecordClientCreated(ctx context.Context)

	// RecordUserRegistered increments the user-registration counter.
	RecordUserRegistered(ctx context.Context)

	// RecordUserRevoked increments the user-revocation counter.
	RecordUserRevoked(ctx context.Context)

	// RecordSigningRequest increments the signing-request counter, labeled
	// by outcome ("success" or "error").
	RecordSigningRequest(ctx context.Context, outcome string)

	// RecordSigningDuration records how long a sign operation took.
	RecordSigningDuration(ctx context.Context, duration time.Duration)

	// RecordAuthenticationFailure increments the authentication-failure
	// counter, labeled by reason ("missing_header", "malformed_header",
	// "bad_signature", "unknown_api_key", "storage_error").
	RecordAuthenticationFailure(ctx context.Context, reason string)
}

// signingMetrics implements SigningMetrics using OpenTelemetry instruments.
type signingMetrics struct {
	clientsCreatedTotal       metric.Int64Counter
	usersRegisteredTotal      metric.Int64Counter
	usersRevokedTotal         metric.Int64Counter
	signingRequestsTotal      metric.Int64Counter
	signingDurationSeconds    metric.Float64Histogram
	authenticationFailuresTotal metric.Int64Counter
}

// NewSigningMetrics creates a SigningMetrics implementation using the given
// meter provider. namespace prefixes every instrument name (e.g.
// "signvault").
func NewSigningMetrics(meterProvider metric.MeterProvider, namespace string) (SigningMetrics, error) {
	meter := meterProvider.Meter(namespace)

	clientsCreatedTotal, err := meter.Int64Counter(
		fmt.Sprintf("%s_clients_created_total", namespace),
		metric.WithDescription("Total number of clients created"),
		metric.WithUnit("{client}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create clients_created_total counter: %w", err)
	}

	usersRegisteredTotal, err := meter.Int64Counter(
		fmt.Sprintf("%s_users_registered_total", namespace),
		metric.WithDescription("Total number of user signing identities registered"),
		metric.WithUnit("{user}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create users_registered_total counter: %w", err)
	}

	usersRevokedTotal, err := meter.Int64Counter(
		fmt.Sprintf("%s_users_revoked_total", namespace),
		metric.WithDescription("Total number of user signing identities revoked"),
		metric.WithUnit("{user}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create users_revoked_total counter: %w", err)
	}

	signingRequestsTotal, err := meter.Int64Counter(
		fmt.Sprintf("%s_signing_requests_total", namespace),
		metric.WithDescription("Total number of sign-message requests, labeled by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create signing_requests_total counter: %w", err)
	}

	signingDurationSeconds, err := meter.Float64Histogram(
		fmt.Sprintf("%s_signing_duration_seconds", namespace),
		metric.WithDescription("Duration of sign-message operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create signing_duration_seconds histogram: %w", err)
	}

	authenticationFailuresTotal, err := meter.Int64Counter(
		fmt.Sprintf("%s_authentication_failures_total", namespace),
		metric.WithDescription("Total number of request authentication failures, labeled by reason"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create authentication_failures_total counter: %w", err)
	}

	return &signingMetrics{
		clientsCreatedTotal:         clientsCreatedTotal,
		usersRegisteredTotal:        usersRegisteredTotal,
		usersRevokedTotal:           usersRevokedTotal,
		signingRequestsTotal:        signingRequestsTotal,
		signingDurationSeconds:      signingDurationSeconds,
		authenticationFailuresTotal: authenticationFailuresTotal,
	}, nil
}

func (s *signingMetrics) RecordClientCreated(ctx context.Context) {
	s.clientsCreatedTotal.Add(ctx, 1)
}

func (s *signingMetrics) RecordUserRegistered(ctx context.Context) {
	s.usersRegisteredTotal.Add(ctx, 1)
}

func (s *signingMetrics) RecordUserRevoked(ctx context.Context) {
	s.usersRevokedTotal.Add(ctx, 1)
}

func (s *signingMetrics) RecordSigningRequest(ctx context.Context, outcome string) {
	s.signingRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (s *signingMetrics) RecordSigningDuration(ctx context.Context, duration time.Duration) {
	s.signingDurationSeconds.Record(ctx, duration.Seconds())
}

func (s *signingMetrics) RecordAuthenticationFailure(ctx context.Context, reason string) {
	s.authenticationFailuresTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// NoOpSigningMetrics is a no-op implementation of SigningMetrics for when
// metrics are disabled.
type NoOpSigningMetrics struct{}

// NewNoOpSigningMetrics creates a no-op SigningMetrics implementation.
func NewNoOpSigningMetrics() SigningMetrics {
	return &NoOpSigningMetrics{}
}

func (n *NoOpSigningMetrics) RecordClientCreated(ctx context.Context)          {}
func (n *NoOpSigningMetrics) RecordUserRegistered(ctx context.Context)         {}
func (n *NoOpSigningMetrics) RecordUserRevoked(ctx context.Context)            {}
func (n *NoOpSigningMetrics) RecordSigningRequest(ctx context.Context, outcome string) {}
func (n *NoOpSigningMetrics) RecordSigningDuration(ctx context.Context, duration time.Duration) {}
func (n *NoOpSigningMetrics) RecordAuthenticationFailure(ctx context.Context, reason string)    {}
