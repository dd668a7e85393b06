package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName: имя сервиса в health-проверках.
const ServiceName = "trynex.orders"

// NewServer поднимает gRPC-сервер с health и reflection.
func NewServer(tokens TokenParser, log *zap.Logger) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(NewAdminUnaryServerInterceptor(tokens, log)),
		grpc.ChainStreamInterceptor(NewAdminStreamServerInterceptor(tokens, log)),
	)

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(srv, healthSrv)

	reflection.Register(srv)
	return srv, healthSrv
}

type StatusSetter interface {
	SetServingStatus(service string, status grpc_health_v1.HealthCheckResponse_ServingStatus)
}

// WatchReadiness раз в interval вызывает ready и переключает статус ServiceName.
// Возвращается при отмене ctx.
func WatchReadiness(ctx context.Context, hs StatusSetter, ready func() error, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	last := grpc_health_v1.HealthCheckResponse_SERVING
	check := func() {
		next := grpc_health_v1.HealthCheckResponse_SERVING
		if err := ready(); err != nil {
			next = grpc_health_v1.HealthCheckResponse_NOT_SERVING
			if last != next {
				log.Warn("readiness check failed", zap.Error(err))
			}
		}
		if next != last {
			log.Info("health status changed", zap.String("status", next.String()))
		}
		hs.SetServingStatus(ServiceName, next)
		last = next
	}

	check()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			check()
		}
	}
}
