package di

import (
	"database/sql"
	"fmt"
	"time"

	"nftmarket/internal/adapters/inbound/http/controllers"
	httpRouter "nftmarket/internal/adapters/inbound/http/router"
	inmemorycache "nftmarket/internal/adapters/outbound/cache/inmemory"
	rediscache "nftmarket/internal/adapters/outbound/cache/redis"
	"nftmarket/internal/adapters/outbound/docs"
	"nftmarket/internal/adapters/outbound/ipfs"
	"nftmarket/internal/adapters/outbound/mirrornode"
	"nftmarket/internal/adapters/outbound/persistence/postgresql"
	postgresqlmarketplace "nftmarket/internal/adapters/outbound/persistence/postgresql/marketplace"
	postgresqlprofile "nftmarket/internal/adapters/outbound/persistence/postgresql/profile"
	postgresqlshared "nftmarket/internal/adapters/outbound/persistence/postgresql/shared"
	postgresqlsnapshot "nftmarket/internal/adapters/outbound/persistence/postgresql/snapshot"
	portsin "nftmarket/internal/application/ports/in"
	portsout "nftmarket/internal/application/ports/out"
	"nftmarket/internal/application/use_cases"
	"nftmarket/internal/infrastructure/config"
	"nftmarket/internal/infrastructure/httpserver"
	"nftmarket/internal/infrastructure/worker"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type Container struct {
	Database                     *sql.DB
	Redis                        *redis.Client
	Server                       *httpserver.Server
	InitializePersistenceUseCase portsin.InitializePersistenceUseCase
	SnapshotRefresher            *worker.SnapshotRefresher
}

// LedgerOptions configures the mirror node and content gateway side of the service.
type LedgerOptions struct {
	MirrorNodeURL        string
	IPFSGatewayURL       string
	UpstreamHTTPTimeout  time.Duration
	AggregateTimeout     time.Duration
	AggregateMaxPages    int
	AggregateConcurrency int
}

type LedgerServices struct {
	Lookup      portsout.AssetLookupGateway
	Resolver    use_cases.AssetMetadataResolver
	Aggregator  portsin.AggregateOwnedAssetsUseCase
	AssetDetail portsin.GetAssetDetailUseCase
}

func LedgerOptionsFromConfig(cfg config.Config) LedgerOptions {
	return LedgerOptions{
		MirrorNodeURL:        cfg.MirrorNodeURL,
		IPFSGatewayURL:       cfg.IPFSGatewayURL,
		UpstreamHTTPTimeout:  cfg.UpstreamHTTPTimeout,
		AggregateTimeout:     cfg.AggregateTimeout,
		AggregateMaxPages:    cfg.AggregateMaxPages,
		AggregateConcurrency: cfg.AggregateConcurrency,
	}
}

// BuildLedgerServices wires the aggregation pipeline. cache may be nil.
func BuildLedgerServices(opts LedgerOptions, cache portsout.MetadataCache, logger *log.Logger) LedgerServices {
	mirrorGateway := mirrornode.NewGateway(mirrornode.Config{
		BaseURL: opts.MirrorNodeURL,
		Timeout: opts.UpstreamHTTPTimeout,
	})
	contentGateway := ipfs.NewGateway(ipfs.Config{
		Timeout: opts.UpstreamHTTPTimeout,
	})

	resolver := use_cases.NewAssetMetadataResolver(
		mirrorGateway,
		contentGateway,
		cache,
		opts.IPFSGatewayURL,
		logger,
	)
	aggregator := use_cases.NewAggregateOwnedAssetsUseCase(
		mirrorGateway,
		resolver,
		use_cases.AggregateOwnedAssetsConfig{
			MaxPages:    opts.AggregateMaxPages,
			Concurrency: opts.AggregateConcurrency,
			Timeout:     opts.AggregateTimeout,
		},
		logger,
	)

	return LedgerServices{
		Lookup:      mirrorGateway,
		Resolver:    resolver,
		Aggregator:  aggregator,
		AssetDetail: use_cases.NewGetAssetDetailUseCase(resolver),
	}
}

func Build(cfg config.Config, logger *log.Logger) (Container, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}

	databasePool := postgresqlshared.NewDatabasePool(cfg.DatabaseURL, logger)
	probes := []portsout.HealthProbe{postgresqlshared.NewDatabaseProbe(databasePool)}

	cache, redisClient, buildErr := buildMetadataCache(cfg)
	if buildErr != nil {
		_ = databasePool.Close()
		return Container{}, buildErr
	}
	if probe, ok := cache.(portsout.HealthProbe); ok {
		probes = append(probes, probe)
	}
	logger.WithField("type", cfg.MetadataCacheType).Info("metadata cache configured")

	ledger := BuildLedgerServices(LedgerOptionsFromConfig(cfg), cache, logger)

	persistenceGateway := postgresql.NewPersistenceBootstrapGateway(
		cfg.DatabaseURL,
		cfg.DatabaseTarget,
		cfg.MigrationsPath,
		logger,
	)
	initializePersistenceUseCase := use_cases.NewInitializePersistenceUseCase(persistenceGateway)

	listingRepository := postgresqlmarketplace.NewRepository(databasePool)
	profileReadModel := postgresqlprofile.NewReadModel(databasePool)
	snapshotRepository := postgresqlsnapshot.NewRepository(databasePool)
	clock := use_cases.NewSystemClock()
	ids := use_cases.NewUUIDGenerator()

	healthUseCase := use_cases.NewGetHealthUseCase(probes...)
	openAPIUseCase := use_cases.NewGetOpenAPISpecUseCase(docs.NewFileOpenAPISpecReadModel(cfg.OpenAPISpecPath))
	listOwnedAssetsUseCase := use_cases.NewListOwnedAssetsUseCase(ledger.Aggregator)
	getSnapshotUseCase := use_cases.NewGetOwnedAssetSnapshotUseCase(snapshotRepository)
	refreshSnapshotsUseCase := use_cases.NewRefreshOwnedAssetSnapshotsUseCase(
		profileReadModel,
		ledger.Aggregator,
		snapshotRepository,
		clock,
		ids,
		logger,
	)
	listListingsUseCase := use_cases.NewListMarketplaceListingsUseCase(listingRepository)
	createListingUseCase := use_cases.NewCreateListingUseCase(
		ledger.Lookup,
		ledger.Resolver,
		listingRepository,
		clock,
		ids,
	)
	getProfileUseCase := use_cases.NewGetPlayerProfileUseCase(profileReadModel)

	snapshotRefresher := worker.NewSnapshotRefresher(
		cfg.SnapshotRefreshEnabled,
		cfg.SnapshotRefreshInterval,
		refreshSnapshotsUseCase,
		logger,
	)

	router := httpRouter.New(httpRouter.Dependencies{
		HealthController:      controllers.NewHealthController(healthUseCase, logger),
		SwaggerController:     controllers.NewSwaggerController(openAPIUseCase, logger),
		OwnedAssetsController: controllers.NewOwnedAssetsController(listOwnedAssetsUseCase, getSnapshotUseCase, logger),
		AssetsController:      controllers.NewAssetsController(ledger.AssetDetail, logger),
		MarketplaceController: controllers.NewMarketplaceController(listListingsUseCase, createListingUseCase, logger),
		ProfileController:     controllers.NewProfileController(getProfileUseCase, logger),
	})

	return Container{
		Database:                     databasePool,
		Redis:                        redisClient,
		Server:                       httpserver.New(cfg.Address(), router, logger),
		InitializePersistenceUseCase: initializePersistenceUseCase,
		SnapshotRefresher:            snapshotRefresher,
	}, nil
}

func buildMetadataCache(cfg config.Config) (portsout.MetadataCache, *redis.Client, error) {
	switch cfg.MetadataCacheType {
	case config.MetadataCacheNone:
		return nil, nil, nil
	case config.MetadataCacheRedis:
		options, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := redis.NewClient(options)
		return rediscache.NewMetadataCache(client, cfg.MetadataCacheTTL), client, nil
	case config.MetadataCacheInMemory, "":
		return inmemorycache.NewMetadataCache(cfg.MetadataCacheSize, cfg.MetadataCacheTTL), nil, nil
	}

	return nil, nil, fmt.Errorf("unsupported metadata cache type: %s", cfg.MetadataCacheType)
}
