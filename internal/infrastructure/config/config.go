package config

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultPort                     = "8080"
	defaultOpenAPISpec              = "api/openapi.yaml"
	defaultShutdownTimeout          = 10 * time.Second
	defaultDBReadinessTimeout       = 30 * time.Second
	defaultDBReadinessRetryInterval = 2 * time.Second
	defaultMigrationsPath           = "internal/adapters/outbound/persistence/postgresql/migrations"
	defaultMirrorNodeURL            = "https://mainnet-public.mirrornode.hedera.com"
	defaultIPFSGatewayURL           = "https://ipfs.io/ipfs/"
	defaultUpstreamHTTPTimeout      = 10 * time.Second
	defaultAggregateTimeout         = 60 * time.Second
	defaultAggregateMaxPages        = 1000
	defaultAggregateConcurrency     = 8
	defaultMetadataCacheTTL         = 15 * time.Minute
	defaultMetadataCacheSize        = 10000
	defaultSnapshotRefreshInterval  = 5 * time.Minute
)

const (
	MetadataCacheInMemory = "inmemory"
	MetadataCacheRedis    = "redis"
	MetadataCacheNone     = "none"
)

type ConfigError struct {
	Code     string
	Message  string
	Metadata map[string]string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

type Config struct {
	Port                     string
	OpenAPISpecPath          string
	ShutdownTimeout          time.Duration
	DatabaseURL              string
	DatabaseTarget           string
	DBReadinessTimeout       time.Duration
	DBReadinessRetryInterval time.Duration
	MigrationsPath           string

	MirrorNodeURL       string
	IPFSGatewayURL      string
	UpstreamHTTPTimeout time.Duration

	AggregateTimeout     time.Duration
	AggregateMaxPages    int
	AggregateConcurrency int

	MetadataCacheType string
	MetadataCacheTTL  time.Duration
	MetadataCacheSize int
	RedisURL          string

	SnapshotRefreshEnabled  bool
	SnapshotRefreshInterval time.Duration

	LogLevel  string
	LogFormat string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", defaultPort)
	v.SetDefault("openapi_spec_path", defaultOpenAPISpec)
	v.SetDefault("migrations_path", defaultMigrationsPath)
	v.SetDefault("mirror_node_url", defaultMirrorNodeURL)
	v.SetDefault("ipfs_gateway_url", defaultIPFSGatewayURL)
	v.SetDefault("upstream_http_timeout", defaultUpstreamHTTPTimeout.String())
	v.SetDefault("aggregate_timeout", defaultAggregateTimeout.String())
	v.SetDefault("aggregate_max_pages", strconv.Itoa(defaultAggregateMaxPages))
	v.SetDefault("aggregate_concurrency", strconv.Itoa(defaultAggregateConcurrency))
	v.SetDefault("metadata_cache_type", MetadataCacheInMemory)
	v.SetDefault("metadata_cache_ttl", defaultMetadataCacheTTL.String())
	v.SetDefault("metadata_cache_size", strconv.Itoa(defaultMetadataCacheSize))
	v.SetDefault("snapshot_refresh_enabled", "false")
	v.SetDefault("snapshot_refresh_interval", defaultSnapshotRefreshInterval.String())
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	return v
}

func LoadConfig() (Config, *ConfigError) {
	v := newViper()

	databaseURL := strings.TrimSpace(v.GetString("database_url"))
	if databaseURL == "" {
		return Config{}, &ConfigError{
			Code:    "CONFIG_DATABASE_URL_REQUIRED",
			Message: "DATABASE_URL is required",
		}
	}

	databaseTarget, cfgErr := parseDatabaseTarget(databaseURL)
	if cfgErr != nil {
		return Config{}, cfgErr
	}

	mirrorNodeURL, cfgErr := parseHTTPURL(v, "mirror_node_url")
	if cfgErr != nil {
		return Config{}, cfgErr
	}
	ipfsGatewayURL, cfgErr := parseHTTPURL(v, "ipfs_gateway_url")
	if cfgErr != nil {
		return Config{}, cfgErr
	}
	if !strings.HasSuffix(ipfsGatewayURL, "/") {
		ipfsGatewayURL += "/"
	}

	upstreamTimeout, cfgErr := parsePositiveDuration(v, "upstream_http_timeout")
	if cfgErr != nil {
		return Config{}, cfgErr
	}
	aggregateTimeout, cfgErr := parsePositiveDuration(v, "aggregate_timeout")
	if cfgErr != nil {
		return Config{}, cfgErr
	}
	maxPages, cfgErr := parsePositiveInt(v, "aggregate_max_pages")
	if cfgErr != nil {
		return Config{}, cfgErr
	}
	concurrency, cfgErr := parsePositiveInt(v, "aggregate_concurrency")
	if cfgErr != nil {
		return Config{}, cfgErr
	}

	cacheType := strings.ToLower(strings.TrimSpace(v.GetString("metadata_cache_type")))
	switch cacheType {
	case MetadataCacheInMemory, MetadataCacheRedis, MetadataCacheNone:
	default:
		return Config{}, &ConfigError{
			Code:     "CONFIG_METADATA_CACHE_TYPE_INVALID",
			Message:  "METADATA_CACHE_TYPE must be inmemory, redis or none",
			Metadata: map[string]string{"value": cacheType},
		}
	}
	cacheTTL, cfgErr := parsePositiveDuration(v, "metadata_cache_ttl")
	if cfgErr != nil {
		return Config{}, cfgErr
	}
	cacheSize, cfgErr := parsePositiveInt(v, "metadata_cache_size")
	if cfgErr != nil {
		return Config{}, cfgErr
	}
	redisURL := strings.TrimSpace(v.GetString("redis_url"))
	if cacheType == MetadataCacheRedis && redisURL == "" {
		return Config{}, &ConfigError{
			Code:    "CONFIG_REDIS_URL_REQUIRED",
			Message: "REDIS_URL is required when METADATA_CACHE_TYPE is redis",
		}
	}

	refreshEnabled, err := strconv.ParseBool(strings.TrimSpace(v.GetString("snapshot_refresh_enabled")))
	if err != nil {
		return Config{}, &ConfigError{
			Code:    "CONFIG_SNAPSHOT_REFRESH_ENABLED_INVALID",
			Message: "SNAPSHOT_REFRESH_ENABLED must be a boolean",
		}
	}
	refreshInterval, cfgErr := parsePositiveDuration(v, "snapshot_refresh_interval")
	if cfgErr != nil {
		return Config{}, cfgErr
	}

	logFormat := strings.ToLower(strings.TrimSpace(v.GetString("log_format")))
	if logFormat != "text" && logFormat != "json" {
		return Config{}, &ConfigError{
			Code:     "CONFIG_LOG_FORMAT_INVALID",
			Message:  "LOG_FORMAT must be text or json",
			Metadata: map[string]string{"value": logFormat},
		}
	}

	return Config{
		Port:                     strings.TrimSpace(v.GetString("port")),
		OpenAPISpecPath:          strings.TrimSpace(v.GetString("openapi_spec_path")),
		ShutdownTimeout:          defaultShutdownTimeout,
		DatabaseURL:              databaseURL,
		DatabaseTarget:           databaseTarget,
		DBReadinessTimeout:       defaultDBReadinessTimeout,
		DBReadinessRetryInterval: defaultDBReadinessRetryInterval,
		MigrationsPath:           strings.TrimSpace(v.GetString("migrations_path")),
		MirrorNodeURL:            mirrorNodeURL,
		IPFSGatewayURL:           ipfsGatewayURL,
		UpstreamHTTPTimeout:      upstreamTimeout,
		AggregateTimeout:         aggregateTimeout,
		AggregateMaxPages:        maxPages,
		AggregateConcurrency:     concurrency,
		MetadataCacheType:        cacheType,
		MetadataCacheTTL:         cacheTTL,
		MetadataCacheSize:        cacheSize,
		RedisURL:                 redisURL,
		SnapshotRefreshEnabled:   refreshEnabled,
		SnapshotRefreshInterval:  refreshInterval,
		LogLevel:                 strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogFormat:                logFormat,
	}, nil
}

func (c Config) Address() string {
	return ":" + c.Port
}

func envName(key string) string {
	return strings.ToUpper(key)
}

func invalidValue(key string, message string, raw string) *ConfigError {
	return &ConfigError{
		Code:     "CONFIG_" + envName(key) + "_INVALID",
		Message:  envName(key) + " " + message,
		Metadata: map[string]string{"value": raw},
	}
}

func parsePositiveDuration(v *viper.Viper, key string) (time.Duration, *ConfigError) {
	raw := strings.TrimSpace(v.GetString(key))
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return 0, invalidValue(key, "must be a positive duration", raw)
	}
	return parsed, nil
}

func parsePositiveInt(v *viper.Viper, key string) (int, *ConfigError) {
	raw := strings.TrimSpace(v.GetString(key))
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return 0, invalidValue(key, "must be a positive integer", raw)
	}
	return parsed, nil
}

func parseHTTPURL(v *viper.Viper, key string) (string, *ConfigError) {
	raw := strings.TrimSpace(v.GetString(key))
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", invalidValue(key, "must be an absolute http(s) URL", raw)
	}
	return raw, nil
}

func parseDatabaseTarget(databaseURL string) (string, *ConfigError) {
	parsed, err := url.Parse(databaseURL)
	if err != nil {
		return "", &ConfigError{
			Code:    "CONFIG_DATABASE_URL_INVALID",
			Message: "DATABASE_URL is invalid",
		}
	}

	switch parsed.Scheme {
	case "postgres", "postgresql":
	default:
		return "", &ConfigError{
			Code:    "CONFIG_DATABASE_URL_SCHEME_INVALID",
			Message: "DATABASE_URL must use postgres or postgresql scheme",
		}
	}

	if parsed.Host == "" {
		return "", &ConfigError{
			Code:    "CONFIG_DATABASE_URL_HOST_MISSING",
			Message: "DATABASE_URL host is required",
		}
	}

	databaseName := strings.TrimPrefix(parsed.Path, "/")
	if databaseName == "" {
		return "", &ConfigError{
			Code:    "CONFIG_DATABASE_NAME_MISSING",
			Message: "DATABASE_URL database name is required",
		}
	}

	return parsed.Host + "/" + databaseName, nil
}
