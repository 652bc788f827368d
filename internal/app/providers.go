package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/objgate/server/internal/infra/httpclient"
	"github.com/objgate/server/internal/infra/storage"
	"github.com/objgate/server/internal/module/bucket"
	"github.com/objgate/server/internal/module/object"
	"github.com/objgate/server/internal/module/presign"
	"github.com/objgate/server/internal/shared/config"
	"github.com/objgate/server/internal/shared/logger"
	"github.com/objgate/server/internal/shared/metrics"
)

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideLogger,
	ProvideZapLogger,
	ProvideRegistry,
	ProvideMetrics,
	ProvideS3Client,
	ProvideBreaker,
	ProvideProber,
	ProvideHTTPClientFactory,
)

// ProvideLogger creates the logger used by HTTP middleware.
func ProvideLogger(cfg *config.Config) *logger.Logger {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// ProvideZapLogger creates the zap logger handed to module services.
func ProvideZapLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	zapLog, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init zap logger: %w", err)
	}
	return zapLog, func() { _ = zapLog.Sync() }, nil
}

// ProvideRegistry creates the prometheus registry served on the metrics path.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a metrics instance.
func ProvideMetrics(cfg *config.Config, reg *prometheus.Registry) *metrics.Metrics {
	return metrics.New(cfg.Metrics.Namespace, reg)
}

// ProvideS3Client creates the S3 client.
func ProvideS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	return storage.NewS3Client(ctx, cfg.Storage)
}

// ProvideBreaker creates the circuit breaker for direct storage calls.
func ProvideBreaker(cfg *config.Config, m *metrics.Metrics) *storage.Breaker {
	return storage.NewBreaker("storage", cfg.Breaker, m)
}

// ProvideProber creates the storage health probe.
func ProvideProber(client *s3.Client, breaker *storage.Breaker) *storage.Prober {
	return storage.NewProber(client, breaker)
}

// ProvideHTTPClientFactory creates the per-transfer HTTP client factory.
func ProvideHTTPClientFactory(cfg *config.Config) func() *http.Client {
	return httpclient.Factory(cfg.HTTPClient)
}

// ===== Presign Providers =====

// PresignSet provides presigned transfer dependencies.
var PresignSet = wire.NewSet(
	ProvidePresignBackend,
	ProvideSigner,
	ProvideExecutor,
	ProvidePresignService,
	wire.Bind(new(presign.ServiceInterface), new(*presign.Service)),
	ProvidePresignHandler,
)

// ProvidePresignBackend selects the signing backend for the configured driver.
func ProvidePresignBackend(cfg *config.Config, client *s3.Client) (presign.Backend, error) {
	if cfg.Storage.Driver == config.DriverMinio {
		mc, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
		return presign.NewMinioBackend(mc), nil
	}
	return presign.NewS3Backend(client), nil
}

// ProvideSigner creates the URL signer.
func ProvideSigner(cfg *config.Config, backend presign.Backend, zapLog *zap.Logger, m *metrics.Metrics) *presign.Signer {
	return presign.NewSigner(backend, presign.SignerConfig{Expiry: cfg.Presign.URLExpiry}, zapLog, m)
}

// ProvideExecutor creates the transfer executor.
func ProvideExecutor(newClient func() *http.Client, zapLog *zap.Logger, m *metrics.Metrics) *presign.Executor {
	return presign.NewExecutor(newClient, zapLog, m)
}

// ProvidePresignService creates the presigned flow service.
func ProvidePresignService(cfg *config.Config, signer *presign.Signer, executor *presign.Executor, zapLog *zap.Logger) *presign.Service {
	return presign.NewService(signer, executor, presign.ServiceConfig{StrictStatus: cfg.Presign.StrictStatus}, zapLog)
}

// ProvidePresignHandler creates the presign HTTP handler.
func ProvidePresignHandler(cfg *config.Config, svc presign.ServiceInterface) *presign.Handler {
	return presign.NewHandler(svc, cfg.Server.MaxUploadSize)
}

// ===== Bucket Providers =====

// BucketSet provides bucket module dependencies.
var BucketSet = wire.NewSet(
	ProvideBucketService,
	wire.Bind(new(bucket.ServiceInterface), new(*bucket.Service)),
	bucket.NewHandler,
)

// ProvideBucketService creates the bucket service.
func ProvideBucketService(cfg *config.Config, client *s3.Client, breaker *storage.Breaker, zapLog *zap.Logger) *bucket.Service {
	return bucket.NewService(client, breaker, cfg.Storage.Region, zapLog)
}

// ===== Object Providers =====

// ObjectSet provides object module dependencies.
var ObjectSet = wire.NewSet(
	ProvideObjectService,
	wire.Bind(new(object.ServiceInterface), new(*object.Service)),
	ProvideObjectHandler,
)

// ProvideObjectService creates the object service.
func ProvideObjectService(client *s3.Client, breaker *storage.Breaker, zapLog *zap.Logger) *object.Service {
	return object.NewService(client, breaker, zapLog)
}

// ProvideObjectHandler creates the object HTTP handler.
func ProvideObjectHandler(cfg *config.Config, svc object.ServiceInterface) *object.Handler {
	return object.NewHandler(svc, cfg.Server.MaxUploadSize)
}

// AppSet is the complete provider set.
var AppSet = wire.NewSet(
	InfraSet,
	PresignSet,
	BucketSet,
	ObjectSet,
)
