package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type (
	Tasks struct {
		OutboxRelayInterval     time.Duration
		OutboxRelayBatch        int
		SettlementSweepInterval time.Duration
		SettlementSweepAge      time.Duration // минимальный возраст зависшего расчета
		SettlementSweepBatch    int
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter burst/refill
		UserRateLimitQPS int           // лимит на пользователя, 0 = выключен
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Ledger struct {
		GRPCHost    string
		CallTimeout time.Duration
	}

	Verification struct {
		PickupTokenSecret string
		PickupTokenTTL    time.Duration // 0 = без ограничения
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topics          KafkaTopics
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	KafkaTopics struct {
		OrderEvents string
		Settlement  string
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		SettlementRequested SettlementRequested
	}

	SettlementRequested struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks        Tasks
		Server       HTTPServer
		Database     Database
		Ledger       Ledger
		Verification Verification
		Kafka        Kafka
	}
)

const minPickupSecretLength = 32

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// LoadDatabase читает только POSTGRES_*: миграциям не нужны Kafka и леджер.
func LoadDatabase() (*Database, error) {
	cfg := databaseFromEnv()
	if err := validateDatabase(&cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return &cfg, nil
}

func databaseFromEnv() Database {
	return Database{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}
}

func loadFromEnv() (*Config, error) {
	relayInterval, err := osGetEnvDuration("BACKGROUND_OUTBOX_RELAY_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	relayBatch, err := osGetInt("BACKGROUND_OUTBOX_RELAY_BATCH")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	sweepInterval, err := osGetEnvDuration("BACKGROUND_SETTLEMENT_SWEEP_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	sweepAge, err := osGetEnvDuration("BACKGROUND_SETTLEMENT_SWEEP_AGE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	sweepBatch, err := osGetInt("BACKGROUND_SETTLEMENT_SWEEP_BATCH")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	settlementRequestedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_SETTLEMENT_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	userRateLimitQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_USER_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	ledgerCallTimeout, err := osGetEnvDuration("LEDGER_CALL_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pickupTokenTTL, err := osGetEnvDuration("PICKUP_TOKEN_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			OutboxRelayInterval:     relayInterval,
			OutboxRelayBatch:        relayBatch,
			SettlementSweepInterval: sweepInterval,
			SettlementSweepAge:      sweepAge,
			SettlementSweepBatch:    sweepBatch,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			UserRateLimitQPS: userRateLimitQPS,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: databaseFromEnv(),
		Ledger: Ledger{
			GRPCHost:    os.Getenv("LEDGER_GRPC_HOST"),
			CallTimeout: ledgerCallTimeout,
		},
		Verification: Verification{
			PickupTokenSecret: os.Getenv("PICKUP_TOKEN_SECRET"),
			PickupTokenTTL:    pickupTokenTTL,
		},
		Kafka: Kafka{
			Brokers: os.Getenv("KAFKA_BROKERS"),
			Topics: KafkaTopics{
				OrderEvents: os.Getenv("KAFKA_TOPIC_ORDER_EVENTS"),
				Settlement:  os.Getenv("KAFKA_TOPIC_SETTLEMENT"),
			},
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				SettlementRequested: SettlementRequested{
					ProcessTimeout: settlementRequestedTimeout,
				},
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.UserRateLimitQPS < 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_USER_QPS must not be negative")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return err
	}

	if cfg.Tasks.OutboxRelayInterval == time.Duration(0) {
		return errors.New("BACKGROUND_OUTBOX_RELAY_INTERVAL is required")
	}
	if cfg.Tasks.OutboxRelayBatch <= 0 {
		return errors.New("BACKGROUND_OUTBOX_RELAY_BATCH must be positive")
	}
	if cfg.Tasks.SettlementSweepInterval == time.Duration(0) {
		return errors.New("BACKGROUND_SETTLEMENT_SWEEP_INTERVAL is required")
	}
	if cfg.Tasks.SettlementSweepAge == time.Duration(0) {
		return errors.New("BACKGROUND_SETTLEMENT_SWEEP_AGE is required")
	}
	if cfg.Tasks.SettlementSweepBatch <= 0 {
		return errors.New("BACKGROUND_SETTLEMENT_SWEEP_BATCH must be positive")
	}

	if cfg.Ledger.GRPCHost == "" {
		return errors.New("LEDGER_GRPC_HOST is required")
	}
	if cfg.Ledger.CallTimeout == time.Duration(0) {
		return errors.New("LEDGER_CALL_TIMEOUT is required")
	}

	if len(cfg.Verification.PickupTokenSecret) < minPickupSecretLength {
		return fmt.Errorf("PICKUP_TOKEN_SECRET must be at least %d bytes", minPickupSecretLength)
	}
	if cfg.Verification.PickupTokenTTL < 0 {
		return errors.New("PICKUP_TOKEN_TTL must not be negative")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topics.OrderEvents == "" {
		return errors.New("KAFKA_TOPIC_ORDER_EVENTS is required")
	}
	if cfg.Kafka.Topics.Settlement == "" {
		return errors.New("KAFKA_TOPIC_SETTLEMENT is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.SettlementRequested.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_SETTLEMENT_PROCESS_TIMEOUT is required")
	}

	return nil
}

func validateDatabase(cfg *Database) error {
	if cfg.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
