// Package health serves the standard gRPC health service and keeps its
// status in line with Spanner reachability.
package health

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/murkotick/financial-catalog-service/internal/pkg/logging"
)

// ServiceName is reported next to the overall ("") status.
const ServiceName = "financial-catalog"

const defaultPingTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// SpannerPinger runs SELECT 1 in a single-use read-only transaction.
type SpannerPinger struct {
	Client *spanner.Client
}

func (p SpannerPinger) Ping(ctx context.Context) error {
	iter := p.Client.Single().Query(ctx, spanner.Statement{SQL: "SELECT 1"})
	defer iter.Stop()
	_, err := iter.Next()
	return err
}

// Probe flips the health status between SERVING and NOT_SERVING.
type Probe struct {
	server  *health.Server
	pinger  Pinger
	timeout time.Duration
	serving bool
	checked bool
}

func NewProbe(server *health.Server, pinger Pinger) *Probe {
	return &Probe{server: server, pinger: pinger, timeout: defaultPingTimeout}
}

// NewServer returns a gRPC server with the health service registered; it
// starts as NOT_SERVING until the first probe passes.
func NewServer(opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(opts...)
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv, hs
}

// Check pings once and publishes the result. Transitions are logged.
func (p *Probe) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	err := p.pinger.Ping(ctx)
	ok := err == nil

	status := healthpb.HealthCheckResponse_SERVING
	if !ok {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	p.server.SetServingStatus("", status)
	p.server.SetServingStatus(ServiceName, status)

	if !p.checked || ok != p.serving {
		if ok {
			logging.Info("spanner reachable", "status", status.String())
		} else {
			logging.Warn("spanner unreachable", "status", status.String(), "err", err)
		}
	}
	p.checked = true
	p.serving = ok
	return ok
}

// Run checks immediately and then on every tick. On return every service is
// marked NOT_SERVING.
func (p *Probe) Run(ctx context.Context, interval time.Duration) error {
	defer p.server.Shutdown()

	p.Check(ctx)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			p.Check(ctx)
		}
	}
}
