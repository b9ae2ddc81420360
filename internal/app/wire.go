//go:build wireinject
// +build wireinject

package app

import (
	"context"

	ledgerGateway "jamii/internal/gateway/grpc/ledger"
	"jamii/internal/handlers/rest/bid_accept_post"
	"jamii/internal/handlers/rest/bid_post"
	"jamii/internal/handlers/rest/bids_get"
	"jamii/internal/handlers/rest/delivery_code_get"
	"jamii/internal/handlers/rest/delivery_post"
	"jamii/internal/handlers/rest/order_get"
	"jamii/internal/handlers/rest/order_post"
	"jamii/internal/handlers/rest/order_status_post"
	"jamii/internal/handlers/rest/orders_get"
	"jamii/internal/handlers/rest/pickup_code_get"
	"jamii/internal/handlers/rest/pickup_post"
	"jamii/internal/handlers/tasks/outbox_relay"
	"jamii/internal/handlers/tasks/settlement_sweep"
	"jamii/internal/pkg/config"
	"jamii/internal/pkg/factory/event_publish"
	"jamii/internal/pkg/kafka"
	"jamii/internal/pkg/validation"
	accountRepo "jamii/internal/repository/account"
	bidRepo "jamii/internal/repository/bid"
	orderRepo "jamii/internal/repository/order"
	outboxRepo "jamii/internal/repository/outbox"
	productRepo "jamii/internal/repository/product"
	bidService "jamii/internal/service/bid"
	orderService "jamii/internal/service/order"
	relayService "jamii/internal/service/relay"
	settlementService "jamii/internal/service/settlement"
	verificationService "jamii/internal/service/verification"
	"jamii/pkg/background"
	"jamii/pkg/delivery_code"
	"jamii/pkg/logger"
	"jamii/pkg/pickup_token"
	"jamii/pkg/querier"
	"jamii/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
)

type Application struct {
	ServiceOrder        ServiceOrder
	ServiceBid          ServiceBid
	ServiceVerification ServiceVerification
	Validator           *validation.Validator
	Querier             *querier.Querier
	BackgroundWorkers   *background.Worker
}

type ServiceOrder interface {
	order_post.Service
	orders_get.Service
	order_get.Service
	order_status_post.Service
}

type ServiceBid interface {
	bid_post.Service
	bids_get.Service
	bid_accept_post.Service
}

type ServiceVerification interface {
	pickup_code_get.Service
	pickup_post.Service
	delivery_code_get.Service
	delivery_post.Service
}

var repositorySet = wire.NewSet(
	provideTxManager,
	provideQuerier,

	orderRepo.New,
	bidRepo.New,
	productRepo.New,
	accountRepo.New,
	outboxRepo.New,

	wire.Bind(new(orderRepo.Querier), new(*querier.Querier)),
	wire.Bind(new(bidRepo.Querier), new(*querier.Querier)),
	wire.Bind(new(productRepo.Querier), new(*querier.Querier)),
	wire.Bind(new(accountRepo.Querier), new(*querier.Querier)),
	wire.Bind(new(outboxRepo.Querier), new(*querier.Querier)),
)

var settlementSet = wire.NewSet(
	provideLedgerGateway,
	settlementService.New,

	wire.Bind(new(settlementService.OrderRepository), new(*orderRepo.Repository)),
	wire.Bind(new(settlementService.AccountRepository), new(*accountRepo.Repository)),
	wire.Bind(new(settlementService.PaymentGateway), new(*ledgerGateway.LedgerGateway)),
	wire.Bind(new(settlementService.OutboxRepository), new(*outboxRepo.Repository)),
	wire.Bind(new(settlementService.TxManager), new(*tx.Manager)),
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	conn *grpc.ClientConn,
	producer *kafka.Producer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		repositorySet,
		settlementSet,

		provideServiceOrder,
		provideServiceBid,
		provideServiceVerification,
		providePickupTokenSigner,
		delivery_code.NewGenerator,
		validation.New,

		provideEventTopics,
		event_publish.NewPublisherFactory,
		relayService.New,

		provideOutboxRelayTask,
		provideSettlementSweepTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Service)),
		wire.Bind(new(ServiceBid), new(*bidService.Service)),
		wire.Bind(new(ServiceVerification), new(*verificationService.Service)),

		wire.Bind(new(orderService.PaymentGateway), new(*ledgerGateway.LedgerGateway)),
		wire.Bind(new(bidService.CodeGenerator), new(*delivery_code.Generator)),
		wire.Bind(new(verificationService.TokenSigner), new(*pickup_token.Signer)),
		wire.Bind(new(verificationService.Settler), new(*settlementService.Service)),

		wire.Bind(new(event_publish.Producer), new(*kafka.Producer)),
		wire.Bind(new(relayService.Repository), new(*outboxRepo.Repository)),
		wire.Bind(new(relayService.PublisherFactory), new(*event_publish.PublisherFactory)),
		wire.Bind(new(relayService.TxManager), new(*tx.Manager)),

		wire.Bind(new(outbox_relay.Service), new(*relayService.Service)),
		wire.Bind(new(settlement_sweep.Service), new(*settlementService.Service)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	SettlementService *settlementService.Service
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-settlement)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	conn *grpc.ClientConn,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		repositorySet,
		settlementSet,

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideLedgerGateway(conn *grpc.ClientConn, cfg *config.Config) *ledgerGateway.LedgerGateway {
	return ledgerGateway.New(conn, cfg.Ledger.CallTimeout)
}

func providePickupTokenSigner(cfg *config.Config) *pickup_token.Signer {
	return pickup_token.NewSigner([]byte(cfg.Verification.PickupTokenSecret), cfg.Verification.PickupTokenTTL)
}

func provideServiceOrder(
	repository *orderRepo.Repository,
	productRepository *productRepo.Repository,
	accountRepository *accountRepo.Repository,
	bidRepository *bidRepo.Repository,
	outboxRepository *outboxRepo.Repository,
	paymentGateway orderService.PaymentGateway,
	txManager *tx.Manager,
) *orderService.Service {
	return orderService.New(
		repository,
		productRepository,
		accountRepository,
		bidRepository,
		outboxRepository,
		paymentGateway,
		txManager,
	)
}

func provideServiceBid(
	repository *bidRepo.Repository,
	orderRepository *orderRepo.Repository,
	outboxRepository *outboxRepo.Repository,
	codeGenerator bidService.CodeGenerator,
	txManager *tx.Manager,
) *bidService.Service {
	return bidService.New(repository, orderRepository, outboxRepository, codeGenerator, txManager)
}

func provideServiceVerification(
	orderRepository *orderRepo.Repository,
	outboxRepository *outboxRepo.Repository,
	tokenSigner verificationService.TokenSigner,
	settler verificationService.Settler,
	txManager *tx.Manager,
) *verificationService.Service {
	return verificationService.New(orderRepository, outboxRepository, tokenSigner, settler, txManager)
}

func provideEventTopics(cfg *config.Config) event_publish.Topics {
	return event_publish.Topics{
		OrderEvents: cfg.Kafka.Topics.OrderEvents,
		Settlement:  cfg.Kafka.Topics.Settlement,
	}
}

func provideOutboxRelayTask(
	log logger.Logger,
	service outbox_relay.Service,
	cfg *config.Config,
) *outbox_relay.OutboxRelay {
	return outbox_relay.NewOutboxRelay(log, service, cfg.Tasks.OutboxRelayInterval, cfg.Tasks.OutboxRelayBatch)
}

func provideSettlementSweepTask(
	log logger.Logger,
	service settlement_sweep.Service,
	cfg *config.Config,
) *settlement_sweep.SettlementSweep {
	return settlement_sweep.NewSettlementSweep(
		log,
		service,
		cfg.Tasks.SettlementSweepInterval,
		cfg.Tasks.SettlementSweepAge,
		cfg.Tasks.SettlementSweepBatch,
	)
}

func provideTaskList(
	outboxRelayTask *outbox_relay.OutboxRelay,
	settlementSweepTask *settlement_sweep.SettlementSweep,
) []background.Task {
	return []background.Task{
		outboxRelayTask,
		settlementSweepTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
