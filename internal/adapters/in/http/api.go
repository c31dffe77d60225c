package http

import (
	"fmt"
	"net/http"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

// ServerInterface mirrors the operations of openapi.yaml. Path parameters and the
// calling actor are already bound and validated when a method is called.
type ServerInterface interface {
	CreateShop(ctx echo.Context, actor kernel.Actor) error
	CreateProduct(ctx echo.Context, actor kernel.Actor, shopID kernel.UUID) error
	CreateVoucher(ctx echo.Context, actor kernel.Actor, shopID kernel.UUID) error
	AddCartItem(ctx echo.Context, actor kernel.Actor) error
	RemoveCartItem(ctx echo.Context, actor kernel.Actor, productID kernel.UUID) error
	Checkout(ctx echo.Context, actor kernel.Actor) error
	ListClaimableOrders(ctx echo.Context, actor kernel.Actor, params ListParams) error
	GetOrder(ctx echo.Context, actor kernel.Actor, orderID kernel.UUID) error
	TransitionOrder(ctx echo.Context, actor kernel.Actor, orderID kernel.UUID) error
	AcceptOrder(ctx echo.Context, actor kernel.Actor, orderID kernel.UUID) error
	GetWalletStatement(ctx echo.Context, actor kernel.Actor, walletType wallet.Type, params ListParams) error
	RequestPayout(ctx echo.Context, actor kernel.Actor) error
	DecidePayout(ctx echo.Context, actor kernel.Actor, payoutID kernel.UUID) error
}

// ListParams are the query parameters shared by list endpoints.
type ListParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

func (p ListParams) limit() int {
	if p.Limit == nil {
		return 0
	}
	return *p.Limit
}

// EchoRouter is the subset of echo.Echo and echo.Group used to register routes.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation under baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/shops", w.CreateShop)
	router.POST(baseURL+"/shops/:shopId/products", w.CreateProduct)
	router.POST(baseURL+"/shops/:shopId/vouchers", w.CreateVoucher)
	router.PUT(baseURL+"/cart/items", w.AddCartItem)
	router.DELETE(baseURL+"/cart/items/:productId", w.RemoveCartItem)
	router.POST(baseURL+"/orders", w.Checkout)
	router.GET(baseURL+"/orders/claimable", w.ListClaimableOrders)
	router.GET(baseURL+"/orders/:orderId", w.GetOrder)
	router.POST(baseURL+"/orders/:orderId/transitions", w.TransitionOrder)
	router.POST(baseURL+"/orders/:orderId/accept", w.AcceptOrder)
	router.GET(baseURL+"/wallets/:walletType", w.GetWalletStatement)
	router.POST(baseURL+"/payouts", w.RequestPayout)
	router.POST(baseURL+"/payouts/:payoutId/decisions", w.DecidePayout)
}

// ServerInterfaceWrapper converts echo contexts to typed arguments.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateShop(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	return w.Handler.CreateShop(ctx, actor)
}

func (w *ServerInterfaceWrapper) CreateProduct(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	shopID, err := pathID(ctx, "shopId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.CreateProduct(ctx, actor, shopID)
}

func (w *ServerInterfaceWrapper) CreateVoucher(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	shopID, err := pathID(ctx, "shopId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.CreateVoucher(ctx, actor, shopID)
}

func (w *ServerInterfaceWrapper) AddCartItem(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	return w.Handler.AddCartItem(ctx, actor)
}

func (w *ServerInterfaceWrapper) RemoveCartItem(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	productID, err := pathID(ctx, "productId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.RemoveCartItem(ctx, actor, productID)
}

func (w *ServerInterfaceWrapper) Checkout(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	return w.Handler.Checkout(ctx, actor)
}

func (w *ServerInterfaceWrapper) ListClaimableOrders(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	params, err := listParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.ListClaimableOrders(ctx, actor, params)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.GetOrder(ctx, actor, orderID)
}

func (w *ServerInterfaceWrapper) TransitionOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.TransitionOrder(ctx, actor, orderID)
}

func (w *ServerInterfaceWrapper) AcceptOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.AcceptOrder(ctx, actor, orderID)
}

func (w *ServerInterfaceWrapper) GetWalletStatement(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	walletType, err := wallet.ParseType(ctx.Param("walletType"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	params, err := listParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.GetWalletStatement(ctx, actor, walletType, params)
}

func (w *ServerInterfaceWrapper) RequestPayout(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	return w.Handler.RequestPayout(ctx, actor)
}

func (w *ServerInterfaceWrapper) DecidePayout(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return unauthorized(ctx, err)
	}
	payoutID, err := pathID(ctx, "payoutId")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return w.Handler.DecidePayout(ctx, actor, payoutID)
}

// actorFrom resolves the caller identity placed in the headers by the gateway.
func actorFrom(ctx echo.Context) (kernel.Actor, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", HeaderActorID, ctx.Request().Header.Get(HeaderActorID), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return kernel.Actor{}, errs.NewValueIsRequiredErrorWithCause(HeaderActorID, err)
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.Actor{}, err
	}
	role, err := kernel.ParseRole(ctx.Request().Header.Get(HeaderActorRole))
	if err != nil {
		return kernel.Actor{}, err
	}
	return kernel.NewActor(id, role)
}

func pathID(ctx echo.Context, name string) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return kernel.UUIDFromBytes(raw[:])
}

func listParams(ctx echo.Context) (ListParams, error) {
	var params ListParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return ListParams{}, fmt.Errorf("invalid format for parameter limit: %w", err)
	}
	return params, nil
}

func unauthorized(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: err.Error()})
}
