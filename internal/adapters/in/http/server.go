package http

import (
	"context"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/shop"
	"marketplace/internal/core/domain/model/voucher"
	"marketplace/internal/core/domain/model/wallet"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler contracts the server depends on. The command and query handlers satisfy them.
type (
	CreateShopHandler interface {
		Handle(ctx context.Context, command commands.CreateShopCommand) (*shop.Shop, error)
	}
	CreateProductHandler interface {
		Handle(ctx context.Context, command commands.CreateProductCommand) (*product.Product, error)
	}
	CreateVoucherHandler interface {
		Handle(ctx context.Context, command commands.CreateVoucherCommand) (*voucher.Voucher, error)
	}
	AddCartItemHandler interface {
		Handle(ctx context.Context, command commands.AddCartItemCommand) (*cart.Cart, error)
	}
	RemoveCartItemHandler interface {
		Handle(ctx context.Context, command commands.RemoveCartItemCommand) (*cart.Cart, error)
	}
	CheckoutHandler interface {
		Handle(ctx context.Context, command commands.CheckoutCommand) (*order.Order, error)
	}
	TransitionOrderHandler interface {
		Handle(ctx context.Context, command commands.TransitionOrderCommand) (*order.Order, error)
	}
	AcceptOrderHandler interface {
		Handle(ctx context.Context, command commands.AcceptOrderCommand) (*order.Order, error)
	}
	RequestPayoutHandler interface {
		Handle(ctx context.Context, command commands.RequestPayoutCommand) (*wallet.PayoutRequest, error)
	}
	DecidePayoutHandler interface {
		Handle(ctx context.Context, command commands.DecidePayoutCommand) (*wallet.PayoutRequest, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.OrderView, error)
	}
	ListClaimableOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListClaimableOrdersQuery) ([]queries.ClaimableOrderView, error)
	}
	GetWalletStatementHandler interface {
		Handle(ctx context.Context, query queries.GetWalletStatementQuery) (*queries.WalletStatement, error)
	}
)

// Handlers groups everything the server delegates to.
type Handlers struct {
	CreateShop          CreateShopHandler
	CreateProduct       CreateProductHandler
	CreateVoucher       CreateVoucherHandler
	AddCartItem         AddCartItemHandler
	RemoveCartItem      RemoveCartItemHandler
	Checkout            CheckoutHandler
	TransitionOrder     TransitionOrderHandler
	AcceptOrder         AcceptOrderHandler
	RequestPayout       RequestPayoutHandler
	DecidePayout        DecidePayoutHandler
	GetOrder            GetOrderHandler
	ListClaimableOrders ListClaimableOrdersHandler
	GetWalletStatement  GetWalletStatementHandler
}

// Server implements ServerInterface. It only translates between JSON and the
// application layer; every rule lives in the command handlers.
type Server struct {
	h      Handlers
	logger *zap.Logger
}

func NewServer(h Handlers, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{h: h, logger: logger.With(zap.String("component", "http"))}
}

// CreateShop handles POST /api/v1/shops.
func (s *Server) CreateShop(ctx echo.Context, actor kernel.Actor) error {
	var body NewShop
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	shipFee, err := kernel.NewMoney(body.ShipFee)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateShopCommand(idOrNew(body.ID), actor, body.Name, shipFee)
	if err != nil {
		return s.fail(ctx, err)
	}
	created, err := s.h.CreateShop.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toShop(created))
}

// CreateProduct handles POST /api/v1/shops/{shopId}/products.
func (s *Server) CreateProduct(ctx echo.Context, actor kernel.Actor, shopID kernel.UUID) error {
	var body NewProduct
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	price, err := kernel.NewMoney(body.Price)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateProductCommand(idOrNew(body.ID), shopID, actor, body.Name, price, body.Stock)
	if err != nil {
		return s.fail(ctx, err)
	}
	created, err := s.h.CreateProduct.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toProduct(created))
}

// CreateVoucher handles POST /api/v1/shops/{shopId}/vouchers.
func (s *Server) CreateVoucher(ctx echo.Context, actor kernel.Actor, shopID kernel.UUID) error {
	var body NewVoucher
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	params, err := body.params(shopID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateVoucherCommand(actor, params)
	if err != nil {
		return s.fail(ctx, err)
	}
	created, err := s.h.CreateVoucher.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toVoucher(created))
}

// AddCartItem handles PUT /api/v1/cart/items.
func (s *Server) AddCartItem(ctx echo.Context, actor kernel.Actor) error {
	var body CartItemRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	productID, err := toKernelID("product_id", body.ProductID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAddCartItemCommand(actor.ID(), productID, body.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}
	c, err := s.h.AddCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toCart(c))
}

// RemoveCartItem handles DELETE /api/v1/cart/items/{productId}.
func (s *Server) RemoveCartItem(ctx echo.Context, actor kernel.Actor, productID kernel.UUID) error {
	cmd, err := commands.NewRemoveCartItemCommand(actor.ID(), productID)
	if err != nil {
		return s.fail(ctx, err)
	}
	c, err := s.h.RemoveCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toCart(c))
}

// Checkout handles POST /api/v1/orders.
func (s *Server) Checkout(ctx echo.Context, actor kernel.Actor) error {
	if actor.Role() != kernel.RoleCustomer {
		return forbidden(ctx, "only customers check out")
	}
	var body CheckoutRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	shopID, err := toKernelID("shop_id", body.ShopID)
	if err != nil {
		return s.fail(ctx, err)
	}
	address, err := kernel.NewAddress(body.Address.Recipient, body.Address.Phone, body.Address.Line, body.Address.City)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCheckoutCommand(idOrNew(body.OrderID), actor.ID(), shopID, address, body.VoucherCode)
	if err != nil {
		return s.fail(ctx, err)
	}
	placed, err := s.h.Checkout.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toOrder(placed))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, _ kernel.Actor, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, fromOrderView(view))
}

// ListClaimableOrders handles GET /api/v1/orders/claimable.
func (s *Server) ListClaimableOrders(ctx echo.Context, _ kernel.Actor, params ListParams) error {
	query, err := queries.NewListClaimableOrdersQuery(params.limit())
	if err != nil {
		return s.fail(ctx, err)
	}
	views, err := s.h.ListClaimableOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]ClaimableOrder, len(views))
	for i, view := range views {
		response[i] = ClaimableOrder{
			ID:      view.ID.String(),
			ShopID:  view.ShopID.String(),
			City:    view.City,
			ShipFee: view.ShipFee,
			Total:   view.Total,
			ReadyAt: view.ReadyAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) TransitionOrder(ctx echo.Context, actor kernel.Actor, orderID kernel.UUID) error {
	var body TransitionRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	target, err := order.ParseStatus(body.Target)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, target, body.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}
	moved, err := s.h.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(moved))
}

// AcceptOrder handles POST /api/v1/orders/{orderId}/accept.
func (s *Server) AcceptOrder(ctx echo.Context, actor kernel.Actor, orderID kernel.UUID) error {
	if actor.Role() != kernel.RoleShipper {
		return forbidden(ctx, "only shippers accept orders")
	}
	cmd, err := commands.NewAcceptOrderCommand(orderID, actor.ID())
	if err != nil {
		return s.fail(ctx, err)
	}
	accepted, err := s.h.AcceptOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(accepted))
}

// GetWalletStatement handles GET /api/v1/wallets/{walletType} for the calling user.
func (s *Server) GetWalletStatement(ctx echo.Context, actor kernel.Actor, walletType wallet.Type, params ListParams) error {
	query, err := queries.NewGetWalletStatementQuery(actor.ID(), walletType, params.limit())
	if err != nil {
		return s.fail(ctx, err)
	}
	statement, err := s.h.GetWalletStatement.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, fromStatement(statement))
}

// RequestPayout handles POST /api/v1/payouts for the calling user.
func (s *Server) RequestPayout(ctx echo.Context, actor kernel.Actor) error {
	var body PayoutRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	walletType, err := wallet.ParseType(body.WalletType)
	if err != nil {
		return s.fail(ctx, err)
	}
	amount, err := kernel.NewMoney(body.Amount)
	if err != nil {
		return s.fail(ctx, err)
	}
	bank := wallet.BankAccount{
		BankName:      body.Bank.BankName,
		AccountNumber: body.Bank.AccountNumber,
		AccountHolder: body.Bank.AccountHolder,
	}

	cmd, err := commands.NewRequestPayoutCommand(idOrNew(body.PayoutID), actor.ID(), walletType, amount, bank)
	if err != nil {
		return s.fail(ctx, err)
	}
	requested, err := s.h.RequestPayout.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toPayout(requested))
}

// DecidePayout handles POST /api/v1/payouts/{payoutId}/decisions.
func (s *Server) DecidePayout(ctx echo.Context, actor kernel.Actor, payoutID kernel.UUID) error {
	var body PayoutDecisionBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	decision, err := commands.ParsePayoutDecision(body.Decision)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDecidePayoutCommand(payoutID, actor, decision, body.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}
	decided, err := s.h.DecidePayout.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toPayout(decided))
}
