// Package workflows holds the Temporal client plumbing shared by the API
// (which schedules workflows) and the worker (which executes them).
package workflows

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/interceptor"

	"github.com/ghuser/propstack/pkg/logger"
)

// TemporalClient bundles the SDK client with the namespace it was dialed for.
type TemporalClient struct {
	Client    client.Client
	Namespace string
	log       logger.Logger
}

// NewTemporalClient dials the Temporal server with tracing and our logger
// plugged in. Close the client on shutdown.
func NewTemporalClient(ctx context.Context, hostPort, namespace string, log logger.Logger) (*TemporalClient, error) {
	tracing, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: otel.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, fmt.Errorf("create temporal otel interceptor: %w", err)
	}

	c, err := client.Dial(client.Options{
		HostPort:     hostPort,
		Namespace:    namespace,
		Logger:       temporalLogger{log: log},
		Interceptors: []interceptor.ClientInterceptor{tracing},
	})
	if err != nil {
		return nil, fmt.Errorf("dial temporal server at %s: %w", hostPort, err)
	}

	log.Info("temporal client connected", "host_port", hostPort, "namespace", namespace)
	return &TemporalClient{Client: c, Namespace: namespace, log: log}, nil
}

// Close shuts down the underlying SDK client.
func (tc *TemporalClient) Close() {
	tc.Client.Close()
	tc.log.Info("temporal client closed")
}

// temporalLogger satisfies Temporal's log.Logger on top of ours.
type temporalLogger struct {
	log logger.Logger
}

func (l temporalLogger) Debug(msg string, keyvals ...interface{}) { l.log.Debug(msg, keyvals...) }
func (l temporalLogger) Info(msg string, keyvals ...interface{})  { l.log.Info(msg, keyvals...) }
func (l temporalLogger) Warn(msg string, keyvals ...interface{})  { l.log.Warn(msg, keyvals...) }
func (l temporalLogger) Error(msg string, keyvals ...interface{}) { l.log.Error(msg, keyvals...) }
