package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/cache"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/outbox"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/bundle_views"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/get_product"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/get_quote"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/list_products"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/queries/product_views"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/repo"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/change_status"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/create_product"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_bundles"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_documents"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_fees"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_lifecycle"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_limits"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_localizations"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/manage_pricing"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/shared"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/update_product"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/wizard"
	"github.com/murkotick/financial-catalog-service/internal/config"
	"github.com/murkotick/financial-catalog-service/internal/pkg/clock"
	committer "github.com/murkotick/financial-catalog-service/internal/pkg/committer"
	"github.com/murkotick/financial-catalog-service/internal/pkg/logging"
	"github.com/murkotick/financial-catalog-service/internal/pkg/viewcache"
	"github.com/murkotick/financial-catalog-service/internal/transport/grpc/health"
	httpcatalog "github.com/murkotick/financial-catalog-service/internal/transport/http/catalog"
	"github.com/murkotick/financial-catalog-service/internal/transport/http/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Error("load config", "err", err)
		os.Exit(1)
	}
	logging.InitLogger(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error("server exited", "err", err)
		os.Exit(1)
	}
	logging.Info("server stopped")
}

func run(ctx context.Context, cfg config.Config) error {
	client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return err
	}
	defer client.Close()

	var rdb goredis.UniversalClient
	if cfg.Redis.Addr != "" {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
	}

	clk := clock.RealClock{}
	readModel := queries.NewSpannerReadModel(client)
	cm := committer.NewAdapter(client)
	outboxRepo := repo.NewOutboxRepo()

	var (
		productCache contracts.ProductCache
		viewCache    get_product.ViewCache
	)
	if rdb != nil {
		views := cache.NewProductViews(viewcache.New[dto.ProductDTO](rdb, cfg.Redis.CacheTTL))
		productCache, viewCache = views, views
	}
	w := shared.NewWriter(outboxRepo, cm, clk, productCache)

	products := repo.NewProductRepo()
	pricing := repo.NewPricingRepo()
	fees := repo.NewFeeRepo()
	limits := repo.NewLimitRepo()
	documents := repo.NewDocumentRepo()
	localizations := repo.NewLocalizationRepo()

	cmds := httpcatalog.Commands{
		CreateProduct: create_product.NewInteractor(products, w),
		UpdateProduct: update_product.NewInteractor(products, readModel, w),
		Status:        change_status.NewInteractor(products, readModel, w),
		Pricing:       manage_pricing.NewInteractor(pricing, readModel, w),
		Lifecycle:     manage_lifecycle.NewInteractor(repo.NewLifecycleRepo(), readModel, w),
		Limits:        manage_limits.NewInteractor(limits, readModel, w),
		Documents:     manage_documents.NewInteractor(documents, readModel, w),
		Localizations: manage_localizations.NewInteractor(localizations, readModel, w),
		Fees:          manage_fees.NewInteractor(fees, readModel, w),
		Bundles:       manage_bundles.NewInteractor(repo.NewBundleRepo(), readModel, w),
	}
	qrys := httpcatalog.Queries{
		GetProduct:   get_product.NewHandler(readModel, viewCache),
		ListProducts: list_products.NewHandler(readModel),
		Views:        product_views.NewHandler(readModel),
		Quote:        get_quote.NewHandler(readModel, clk),
		Bundles:      bundle_views.NewHandler(readModel),
	}
	wz := wizard.NewService(wizard.Repos{
		Products:      products,
		Pricing:       pricing,
		Fees:          fees,
		Limits:        limits,
		Documents:     documents,
		Localizations: localizations,
	}, w, cfg.Wizard.SessionTTL)

	var limiters *middleware.Limiters
	if cfg.RateLimit.RPS > 0 {
		limiters = middleware.NewLimiters(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.ClientTTL, clk)
	}
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpcatalog.NewRouter(httpcatalog.NewHandler(cmds, qrys, wz), httpcatalog.RouterOptions{
		Limiters:  limiters,
		JWTSecret: cfg.Auth.JWTSecret,
		Issuer:    cfg.Auth.Issuer,
	})
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	grpcSrv, healthSrv := health.NewServer()
	probe := health.NewProbe(healthSrv, health.SpannerPinger{Client: client})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("http server listening", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		lis, err := net.Listen("tcp", cfg.GRPC.Addr)
		if err != nil {
			return err
		}
		logging.Info("grpc server listening", "addr", cfg.GRPC.Addr)
		return grpcSrv.Serve(lis)
	})
	g.Go(func() error {
		<-ctx.Done()
		logging.Info("shutting down", "timeout", cfg.HTTP.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		stopped := make(chan struct{})
		go func() {
			grpcSrv.GracefulStop()
			close(stopped)
		}()
		err := httpSrv.Shutdown(shutdownCtx)
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcSrv.Stop()
		}
		return err
	})

	g.Go(func() error { return probe.Run(ctx, cfg.Spanner.HealthInterval) })
	g.Go(func() error { return wz.RunSweeper(ctx, cfg.Wizard.SweepInterval) })
	if limiters != nil {
		g.Go(func() error { return limiters.RunJanitor(ctx, cfg.RateLimit.ClientTTL) })
	}

	if rdb != nil && cfg.Outbox.Enabled {
		relay := outbox.NewRelay(
			readModel,
			outboxRepo,
			cm,
			outbox.NewStreamPublisher(rdb, cfg.Redis.Stream, cfg.Redis.StreamMaxLen),
			clk,
			cfg.Outbox.BatchSize,
		)
		g.Go(func() error { return relay.Run(ctx, cfg.Outbox.PollInterval) })
	} else {
		logging.Warn("outbox relay disabled", "redis", cfg.Redis.Addr != "", "enabled", cfg.Outbox.Enabled)
	}

	return g.Wait()
}
