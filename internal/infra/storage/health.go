package storage

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sony/gobreaker/v2"
)

// HealthStatus represents storage reachability.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// BucketLister is the part of *s3.Client the probe needs.
type BucketLister interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

var _ BucketLister = (*s3.Client)(nil)

// HealthReport is the result of one probe.
type HealthReport struct {
	Status    HealthStatus `json:"status"`
	Breaker   string       `json:"breaker"`
	LatencyMs int64        `json:"latency_ms"`
	Error     string       `json:"error,omitempty"`
}

// Prober checks that the storage endpoint answers.
type Prober struct {
	client  BucketLister
	breaker *Breaker
	timeout time.Duration
}

// NewProber creates a Prober.
func NewProber(client BucketLister, breaker *Breaker) *Prober {
	return &Prober{client: client, breaker: breaker, timeout: 5 * time.Second}
}

// Check lists at most one bucket through the breaker.
func (p *Prober) Check(ctx context.Context) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	err := p.breaker.Do("list buckets", func() error {
		_, err := p.client.ListBuckets(ctx, &s3.ListBucketsInput{MaxBuckets: aws.Int32(1)})
		return err
	})

	report := HealthReport{
		Status:    HealthStatusHealthy,
		Breaker:   p.breaker.State().String(),
		LatencyMs: time.Since(start).Milliseconds(),
	}
	switch {
	case err != nil:
		report.Status = HealthStatusUnhealthy
		report.Error = err.Error()
	case p.breaker.State() == gobreaker.StateHalfOpen:
		report.Status = HealthStatusDegraded
	}
	return report
}
