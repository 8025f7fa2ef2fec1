package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/google/uuid"

	grpcHandler "github.com/anthanhphan/go-bucket-topology/internal/topology/adapter/inbound/grpc"
	httpHandler "github.com/anthanhphan/go-bucket-topology/internal/topology/adapter/inbound/http"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/adapter/outbound/controlplane"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/adapter/outbound/docparser"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/adapter/outbound/nodeclient"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/config"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/service"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg      *config.Config
	provider *service.Provider
	manager  *service.ClientManager
	changes  *service.ChanSubscriber
	server   *httpHandler.Server
	health   *grpcHandler.HealthReporter
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Configuration provider
	clientID := uuid.NewString()
	var creds *domain.Credentials
	if cfg.ControlPlane.Username != "" {
		creds = &domain.Credentials{
			Username: cfg.ControlPlane.Username,
			Password: cfg.ControlPlane.Password,
		}
	}
	provider, err := service.NewProvider(service.ProviderConfig{
		Endpoints:               cfg.ControlPlane.Endpoints,
		Credentials:             creds,
		FetchTimeout:            cfg.ControlPlane.FetchTimeout(),
		BreakerFailureThreshold: cfg.ControlPlane.BreakerFailureThreshold,
		BreakerOpenTimeout:      cfg.ControlPlane.BreakerOpenTimeout(),
		Watcher: service.WatcherConfig{
			MaxContentLength: cfg.Stream.MaxContentLength,
			ReconnectMin:     cfg.Stream.ReconnectMin(),
			ReconnectMax:     cfg.Stream.ReconnectMax(),
		},
	}, controlplane.NewHTTPControlPlane(nil, clientID), docparser.New())
	if err != nil {
		return nil, fmt.Errorf("failed to init configuration provider: %w", err)
	}

	// 4. Client manager
	startupTimeout := cfg.ControlPlane.FetchTimeout() * time.Duration(len(cfg.ControlPlane.Endpoints)+1)
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	factory := nodeclient.NewRedisFactory(nodeclient.FactoryConfig{
		DialTimeout: cfg.Client.DialTimeout(),
		MaxRetries:  cfg.Client.MaxRetries,
	})
	manager, err := service.NewClientManager(ctx, service.ManagerConfig{
		Username:      cfg.ControlPlane.Username,
		Password:      cfg.ControlPlane.Password,
		Bucket:        cfg.Client.Bucket,
		PreferredPort: domain.PortRole(cfg.Client.PreferredPort),
		RetireGrace:   cfg.Client.RetireGrace(),
		RetireWorkers: cfg.Client.RetireWorkers,
	}, provider, factory)
	if err != nil {
		provider.Shutdown()
		return nil, fmt.Errorf("failed to init client manager: %w", err)
	}

	changes := service.NewChanSubscriber()
	if err := provider.Subscribe(ctx, cfg.Client.Bucket, changes); err != nil {
		manager.Shutdown()
		provider.Shutdown()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", cfg.Client.Bucket, err)
	}

	// 5. Admin servers
	a := &App{
		cfg:      cfg,
		provider: provider,
		manager:  manager,
		changes:  changes,
		server:   httpHandler.NewServer(cfg.Admin.HTTPAddr, provider, manager),
		health:   grpcHandler.NewHealthReporter(cfg.Admin.GRPCAddr),
	}
	a.health.MarkNotServing(cfg.Client.Bucket)
	if err := a.warmClient(ctx); err != nil {
		logger.Warnw("Initial client build failed", "bucket", cfg.Client.Bucket, "error", err.Error())
	}

	logger.Infow("Topology agent initialized",
		"client_id", clientID, "bucket", cfg.Client.Bucket, "nodes", len(manager.Topology().Nodes))
	return a, nil
}

func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.warmClients(ctx)

	logger.Infow("Admin HTTP server starting", "addr", a.cfg.Admin.HTTPAddr)
	serverErrCh := make(chan error, 2)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- fmt.Errorf("http server failed: %w", err)
		}
	}()
	go func() {
		if err := a.health.Start(); err != nil {
			serverErrCh <- fmt.Errorf("grpc health server failed: %w", err)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = err
		logger.Errorw("Admin server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down topology agent")
	cancel()
	a.health.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		logger.Errorw("Admin HTTP shutdown error", "error", err.Error())
		runErr = errors.Join(runErr, err)
	}

	a.provider.Unsubscribe(a.cfg.Client.Bucket, a.changes)
	a.manager.Shutdown()
	a.provider.Shutdown()
	return runErr
}

// warmClients rebuilds the plain client after every topology change so the
// first request after a rebalance does not pay for the connect.
func (a *App) warmClients(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-a.changes.C():
			buildCtx, cancel := context.WithTimeout(ctx, max(a.cfg.Client.DialTimeout()*2, time.Second))
			err := a.warmClient(buildCtx)
			cancel()
			if err != nil {
				logger.Warnw("Failed to rebuild client after topology change",
					"bucket", a.manager.Bucket(), "nodes", len(t.Nodes), "error", err.Error())
			}
		}
	}
}

// warmClient builds the plain client and reports the bucket serving only if
// that worked.
func (a *App) warmClient(ctx context.Context) error {
	bucket := a.manager.Bucket()
	if _, err := a.manager.GetClient(ctx); err != nil {
		a.health.MarkNotServing(bucket)
		return err
	}
	a.health.MarkServing(bucket)
	return nil
}
