package cmd

import (
	"errors"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/notify"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/ledger"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/retry"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *zap.Logger

	clock         kernel.Clock
	publisher     ports.EventPublisher
	closers       []func() error
	runner        commands.TxRunner
	voucherLedger ledger.VoucherLedger
	walletLedger  ledger.WalletLedger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) *CompositionRoot {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		clock:      kernel.SystemClock{},
	}

	c.publisher = c.newPublisher()
	c.runner = commands.NewTxRunner(retry.Policy{
		MaxAttempts:     config.TxMaxAttempts,
		InitialInterval: config.TxInitialBackoff,
		MaxInterval:     config.TxMaxBackoff,
	}, c.publisher, logger)
	c.voucherLedger = ledger.NewVoucherLedger(c.clock)
	c.walletLedger = ledger.NewWalletLedger(c.clock)
	return c
}

func (c *CompositionRoot) newPublisher() ports.EventPublisher {
	logPublisher := notify.NewLogPublisher(c.logger)
	if len(c.config.KafkaBrokers) == 0 {
		return logPublisher
	}

	kafkaPublisher := notify.NewKafkaPublisher(
		c.config.KafkaOrderEventsTopic, c.config.KafkaPublishTimeout, c.config.KafkaBrokers...)
	c.closers = append(c.closers, kafkaPublisher.Close)
	return notify.NewBreakerPublisher(kafkaPublisher, logPublisher, notify.BreakerSettings{
		ConsecutiveFailures: c.config.KafkaBreakerFailures,
		OpenTimeout:         c.config.KafkaBreakerTimeout,
	}, c.logger)
}

// Close releases the event broker connections.
func (c *CompositionRoot) Close() error {
	var errList []error
	for _, closeFn := range c.closers {
		errList = append(errList, closeFn())
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) cartUoW() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) walletUoW() commands.WalletUoWFactory {
	return FuncWalletUoWFactory(func() commands.WalletUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateShopCommandHandler() commands.CreateShopCommandHandler {
	return commands.NewCreateShopCommandHandler(c.uow(), c.runner)
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	return commands.NewCreateProductCommandHandler(c.uow(), c.runner)
}

func (c *CompositionRoot) CreateCreateVoucherCommandHandler() commands.CreateVoucherCommandHandler {
	return commands.NewCreateVoucherCommandHandler(c.uow(), c.runner)
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.cartUoW(), c.runner, c.clock)
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	return commands.NewRemoveCartItemCommandHandler(c.cartUoW(), c.runner)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	return commands.NewCheckoutCommandHandler(c.uow(), c.runner, c.voucherLedger, c.clock)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.uow(), c.runner, c.walletLedger, c.clock)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.orderUoW(), c.runner, c.clock)
}

func (c *CompositionRoot) CreateSettleDeliveredOrderCommandHandler() commands.SettleDeliveredOrderCommandHandler {
	return commands.NewSettleDeliveredOrderCommandHandler(c.uow(), c.runner, c.walletLedger)
}

func (c *CompositionRoot) CreateRequestPayoutCommandHandler() commands.RequestPayoutCommandHandler {
	minAmount, err := kernel.NewMoney(c.config.PayoutMinAmount)
	if err != nil {
		minAmount, _ = kernel.NewMoney(1)
	}
	return commands.NewRequestPayoutCommandHandler(c.walletUoW(), c.runner, c.walletLedger, minAmount, c.clock)
}

func (c *CompositionRoot) CreateDecidePayoutCommandHandler() commands.DecidePayoutCommandHandler {
	return commands.NewDecidePayoutCommandHandler(c.walletUoW(), c.runner, c.walletLedger, c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListClaimableOrdersQueryHandler() queries.ListClaimableOrdersQueryHandler {
	return queries.NewListClaimableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUnsettledDeliveredOrdersQueryHandler() queries.ListUnsettledDeliveredOrdersQueryHandler {
	return queries.NewListUnsettledDeliveredOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWalletStatementQueryHandler() queries.GetWalletStatementQueryHandler {
	return queries.NewGetWalletStatementQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateFindLedgerDriftQueryHandler() queries.FindLedgerDriftQueryHandler {
	return queries.NewFindLedgerDriftQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateShop:          c.CreateCreateShopCommandHandler(),
		CreateProduct:       c.CreateCreateProductCommandHandler(),
		CreateVoucher:       c.CreateCreateVoucherCommandHandler(),
		AddCartItem:         c.CreateAddCartItemCommandHandler(),
		RemoveCartItem:      c.CreateRemoveCartItemCommandHandler(),
		Checkout:            c.CreateCheckoutCommandHandler(),
		TransitionOrder:     c.CreateTransitionOrderCommandHandler(),
		AcceptOrder:         c.CreateAcceptOrderCommandHandler(),
		RequestPayout:       c.CreateRequestPayoutCommandHandler(),
		DecidePayout:        c.CreateDecidePayoutCommandHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		ListClaimableOrders: c.CreateListClaimableOrdersQueryHandler(),
		GetWalletStatement:  c.CreateGetWalletStatementQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewSettlementJob(
			c.CreateListUnsettledDeliveredOrdersQueryHandler(),
			c.CreateSettleDeliveredOrderCommandHandler(),
			c.logger,
		),
		jobs.NewLedgerAuditJob(c.CreateFindLedgerDriftQueryHandler(), c.logger),
		jobs.Schedules{
			Settlement:  c.config.SettlementJobSpec,
			LedgerAudit: c.config.LedgerAuditSpec,
		},
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncWalletUoWFactory func() commands.WalletUoW

func (f FuncWalletUoWFactory) Create() commands.WalletUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
