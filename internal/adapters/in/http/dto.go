package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/shop"
	"marketplace/internal/core/domain/model/voucher"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

// Request bodies.

type NewShop struct {
	ID      *uuid.UUID `json:"id,omitempty"`
	Name    string     `json:"name"`
	ShipFee int64      `json:"ship_fee"`
}

type NewProduct struct {
	ID    *uuid.UUID `json:"id,omitempty"`
	Name  string     `json:"name"`
	Price int64      `json:"price"`
	Stock int        `json:"stock"`
}

type NewVoucher struct {
	ID                *uuid.UUID `json:"id,omitempty"`
	Code              string     `json:"code"`
	DiscountType      string     `json:"discount_type"`
	Value             int64      `json:"value"`
	MaxDiscount       *int64     `json:"max_discount,omitempty"`
	MinOrderAmount    int64      `json:"min_order_amount"`
	UsageLimit        int        `json:"usage_limit"`
	UsageLimitPerUser int        `json:"usage_limit_per_user"`
	ValidFrom         time.Time  `json:"valid_from"`
	ValidTo           time.Time  `json:"valid_to"`
}

func (v NewVoucher) params(shopID kernel.UUID) (voucher.Params, error) {
	discountType, err := voucher.ParseDiscountType(v.DiscountType)
	if err != nil {
		return voucher.Params{}, err
	}
	minOrder, err := kernel.NewMoney(v.MinOrderAmount)
	if err != nil {
		return voucher.Params{}, err
	}
	var maxDiscount *kernel.Money
	if v.MaxDiscount != nil {
		capped, err := kernel.NewMoney(*v.MaxDiscount)
		if err != nil {
			return voucher.Params{}, err
		}
		maxDiscount = &capped
	}
	return voucher.Params{
		ID:                idOrNew(v.ID),
		ShopID:            shopID,
		Code:              v.Code,
		DiscountType:      discountType,
		Value:             v.Value,
		MaxDiscount:       maxDiscount,
		MinOrderAmount:    minOrder,
		UsageLimit:        v.UsageLimit,
		UsageLimitPerUser: v.UsageLimitPerUser,
		ValidFrom:         v.ValidFrom,
		ValidTo:           v.ValidTo,
	}, nil
}

type CartItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type Address struct {
	Recipient string `json:"recipient"`
	Phone     string `json:"phone"`
	Line      string `json:"line"`
	City      string `json:"city"`
}

type CheckoutRequest struct {
	OrderID     *uuid.UUID `json:"order_id,omitempty"`
	ShopID      uuid.UUID  `json:"shop_id"`
	Address     Address    `json:"address"`
	VoucherCode string     `json:"voucher_code,omitempty"`
}

type TransitionRequest struct {
	Target string `json:"target"`
	Reason string `json:"reason,omitempty"`
}

type BankAccount struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountHolder string `json:"account_holder"`
}

type PayoutRequestBody struct {
	PayoutID   *uuid.UUID  `json:"payout_id,omitempty"`
	WalletType string      `json:"wallet_type"`
	Amount     int64       `json:"amount"`
	Bank       BankAccount `json:"bank"`
}

type PayoutDecisionBody struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
}

// Responses.

type Shop struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	ShipFee int64  `json:"ship_fee"`
	Active  bool   `json:"active"`
}

type Product struct {
	ID        string `json:"id"`
	ShopID    string `json:"shop_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Stock     int    `json:"stock"`
	SoldCount int    `json:"sold_count"`
}

type Voucher struct {
	ID                string    `json:"id"`
	ShopID            string    `json:"shop_id"`
	Code              string    `json:"code"`
	DiscountType      string    `json:"discount_type"`
	Value             int64     `json:"value"`
	MaxDiscount       *int64    `json:"max_discount,omitempty"`
	MinOrderAmount    int64     `json:"min_order_amount"`
	UsageLimit        int       `json:"usage_limit"`
	UsageLimitPerUser int       `json:"usage_limit_per_user"`
	CurrentUsage      int       `json:"current_usage"`
	ValidFrom         time.Time `json:"valid_from"`
	ValidTo           time.Time `json:"valid_to"`
	Active            bool      `json:"active"`
}

type CartItem struct {
	ProductID string `json:"product_id"`
	ShopID    string `json:"shop_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type Cart struct {
	CustomerID string     `json:"customer_id"`
	Items      []CartItem `json:"items"`
}

type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type Order struct {
	ID            string      `json:"id"`
	CustomerID    string      `json:"customer_id"`
	ShopID        string      `json:"shop_id"`
	ShipperID     *string     `json:"shipper_id"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"payment_status"`
	Address       Address     `json:"address"`
	Subtotal      int64       `json:"subtotal"`
	Discount      int64       `json:"discount"`
	ShipFee       int64       `json:"ship_fee"`
	Total         int64       `json:"total"`
	VoucherCode   string      `json:"voucher_code,omitempty"`
	PaidOut       bool        `json:"paid_out"`
	PlacedAt      time.Time   `json:"placed_at"`
	CancelReason  string      `json:"cancel_reason,omitempty"`
	Items         []OrderItem `json:"items"`
}

type ClaimableOrder struct {
	ID      string    `json:"id"`
	ShopID  string    `json:"shop_id"`
	City    string    `json:"city"`
	ShipFee int64     `json:"ship_fee"`
	Total   int64     `json:"total"`
	ReadyAt time.Time `json:"ready_at"`
}

type StatementEntry struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Amount       int64     `json:"amount"`
	BalanceAfter int64     `json:"balance_after"`
	OrderID      *string   `json:"order_id"`
	PayoutID     *string   `json:"payout_id"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type WalletStatement struct {
	WalletID       string           `json:"wallet_id"`
	Type           string           `json:"type"`
	Balance        int64            `json:"balance"`
	TotalEarned    int64            `json:"total_earned"`
	TotalWithdrawn int64            `json:"total_withdrawn"`
	LedgerSum      int64            `json:"ledger_sum"`
	Entries        []StatementEntry `json:"entries"`
}

type Payout struct {
	ID           string    `json:"id"`
	WalletID     string    `json:"wallet_id"`
	UserID       string    `json:"user_id"`
	WalletType   string    `json:"wallet_type"`
	Amount       int64     `json:"amount"`
	Status       string    `json:"status"`
	RejectReason string    `json:"reject_reason,omitempty"`
	RequestedAt  time.Time `json:"requested_at"`
}

// idOrNew lets callers pick their own ids, which makes retries of create requests safe.
func idOrNew(raw *uuid.UUID) kernel.UUID {
	if raw == nil {
		return kernel.NewUUID()
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.NewUUID()
	}
	return id
}

func toKernelID(name string, raw uuid.UUID) (kernel.UUID, error) {
	if raw == uuid.Nil {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	return kernel.UUIDFromBytes(raw[:])
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toShop(s *shop.Shop) Shop {
	return Shop{
		ID:      s.ID().String(),
		OwnerID: s.OwnerID().String(),
		Name:    s.Name(),
		ShipFee: s.ShipFee().Amount(),
		Active:  s.IsActive(),
	}
}

func toProduct(p *product.Product) Product {
	return Product{
		ID:        p.ID().String(),
		ShopID:    p.ShopID().String(),
		Name:      p.Name(),
		Price:     p.Price().Amount(),
		Stock:     p.Stock(),
		SoldCount: p.SoldCount(),
	}
}

func toVoucher(v *voucher.Voucher) Voucher {
	var maxDiscount *int64
	if v.MaxDiscount() != nil {
		amount := v.MaxDiscount().Amount()
		maxDiscount = &amount
	}
	return Voucher{
		ID:                v.ID().String(),
		ShopID:            v.ShopID().String(),
		Code:              v.Code(),
		DiscountType:      string(v.DiscountType()),
		Value:             v.Value(),
		MaxDiscount:       maxDiscount,
		MinOrderAmount:    v.MinOrderAmount().Amount(),
		UsageLimit:        v.UsageLimit(),
		UsageLimitPerUser: v.UsageLimitPerUser(),
		CurrentUsage:      v.CurrentUsage(),
		ValidFrom:         v.ValidFrom(),
		ValidTo:           v.ValidTo(),
		Active:            v.IsActive(),
	}
}

func toCart(c *cart.Cart) Cart {
	items := make([]CartItem, 0, len(c.Items()))
	for _, item := range c.Items() {
		items = append(items, CartItem{
			ProductID: item.ProductID.String(),
			ShopID:    item.ShopID.String(),
			Name:      item.Name,
			UnitPrice: item.UnitPrice.Amount(),
			Quantity:  item.Quantity,
		})
	}
	return Cart{CustomerID: c.CustomerID().String(), Items: items}
}

func toOrder(o *order.Order) Order {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItem{
			ProductID: item.ProductID().String(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Amount(),
			Quantity:  item.Quantity(),
		})
	}
	address := o.Address()
	return Order{
		ID:            o.ID().String(),
		CustomerID:    o.CustomerID().String(),
		ShopID:        o.ShopID().String(),
		ShipperID:     idString(o.ShipperID()),
		Status:        o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
		Address:       Address{Recipient: address.Recipient(), Phone: address.Phone(), Line: address.Line(), City: address.City()},
		Subtotal:      o.Subtotal().Amount(),
		Discount:      o.Discount().Amount(),
		ShipFee:       o.ShipFee().Amount(),
		Total:         o.Total().Amount(),
		VoucherCode:   o.VoucherCode(),
		PaidOut:       o.IsPaidOut(),
		PlacedAt:      o.Timestamps().PlacedAt,
		CancelReason:  o.CancelReason(),
		Items:         items,
	}
}

func fromOrderView(v *queries.OrderView) Order {
	items := make([]OrderItem, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, OrderItem{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return Order{
		ID:            v.ID.String(),
		CustomerID:    v.CustomerID.String(),
		ShopID:        v.ShopID.String(),
		ShipperID:     idString(v.ShipperID),
		Status:        v.Status,
		PaymentStatus: v.PaymentStatus,
		Address:       Address{Recipient: v.Recipient, Phone: v.Phone, Line: v.AddressLine, City: v.City},
		Subtotal:      v.Subtotal,
		Discount:      v.Discount,
		ShipFee:       v.ShipFee,
		Total:         v.Total,
		VoucherCode:   v.VoucherCode,
		PaidOut:       v.PaidOut,
		PlacedAt:      v.PlacedAt,
		CancelReason:  v.CancelReason,
		Items:         items,
	}
}

func fromStatement(s *queries.WalletStatement) WalletStatement {
	entries := make([]StatementEntry, 0, len(s.Entries))
	for _, e := range s.Entries {
		entries = append(entries, StatementEntry{
			ID:           e.ID.String(),
			Kind:         string(e.Kind),
			Amount:       e.Amount,
			BalanceAfter: e.BalanceAfter,
			OrderID:      idString(e.OrderID),
			PayoutID:     idString(e.PayoutID),
			Note:         e.Note,
			CreatedAt:    e.CreatedAt,
		})
	}
	return WalletStatement{
		WalletID:       s.WalletID.String(),
		Type:           string(s.Type),
		Balance:        s.Balance,
		TotalEarned:    s.TotalEarned,
		TotalWithdrawn: s.TotalWithdrawn,
		LedgerSum:      s.LedgerSum,
		Entries:        entries,
	}
}

func toPayout(p *wallet.PayoutRequest) Payout {
	return Payout{
		ID:           p.ID().String(),
		WalletID:     p.WalletID().String(),
		UserID:       p.UserID().String(),
		WalletType:   string(p.WalletType()),
		Amount:       p.Amount().Amount(),
		Status:       string(p.Status()),
		RejectReason: p.RejectReason(),
		RequestedAt:  p.RequestedAt(),
	}
}
