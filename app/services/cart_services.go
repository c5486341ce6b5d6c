package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Eswaramoorthy-2004/my-ecom-store/app/models"
	"github.com/Eswaramoorthy-2004/my-ecom-store/app/repositories"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/apperr"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/logger"
	"github.com/Eswaramoorthy-2004/my-ecom-store/pkg/metrics"
)

// TaxBasisPoints is the sales tax applied at checkout (5%).
const TaxBasisPoints = 500

// Quantity actions accepted by UpdateQuantity.
const (
	ActionIncrease = "increase"
	ActionDecrease = "decrease"
)

// Cart is the rendered view of a user's cart.
type Cart struct {
	Items      []models.CartLine
	TotalCents int64
	Total      string
}

// Bill is the checkout summary. Amounts are "%.2f" strings.
type Bill struct {
	Items         []models.CartLine
	SubtotalCents int64
	TaxCents      int64
	FinalCents    int64
	Subtotal      string
	Tax           string
	Final         string
}

// Empty reports whether there is nothing to pay for.
func (b Bill) Empty() bool { return len(b.Items) == 0 }

type CartService struct {
	db       *gorm.DB
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{
		db:       db,
		carts:    repositories.NewCartRepository(db),
		products: repositories.NewProductRepository(db),
	}
}

// View returns the user's cart lines and their total.
func (s *CartService) View(ctx context.Context, userID uint) (Cart, error) {
	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return Cart{}, apperr.E(apperr.Store, "cart.view", err)
	}

	total := sumCents(lines)
	return Cart{Items: lines, TotalCents: total, Total: models.FormatCents(total)}, nil
}

// Add puts one unit of productID into the cart: +1 on an existing row,
// otherwise a new row with quantity 1.
func (s *CartService) Add(ctx context.Context, userID, productID uint) error {
	const op = "cart.add"

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)

		_, err := carts.Find(ctx, userID, productID)
		switch {
		case err == nil:
			return carts.Increment(ctx, userID, productID, 1)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		ok, err := s.products.WithTx(tx).Exists(ctx, productID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.E(apperr.NotFound, op, gorm.ErrRecordNotFound)
		}
		return carts.Insert(ctx, &models.CartItem{UserID: userID, ProductID: productID, Quantity: 1})
	})
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return err
		}
		return apperr.E(apperr.Store, op, err)
	}

	metrics.CartMutations.WithLabelValues("add").Inc()
	logger.WithCtx(ctx).Debug("cart item added", "user_id", userID, "product_id", productID)
	return nil
}

// Remove deletes the product's row regardless of quantity.
func (s *CartService) Remove(ctx context.Context, userID, productID uint) error {
	if err := s.carts.Delete(ctx, userID, productID); err != nil {
		return apperr.E(apperr.Store, "cart.remove", err)
	}
	metrics.CartMutations.WithLabelValues("remove").Inc()
	return nil
}

// UpdateQuantity applies action to the row. "decrease" at quantity 1
// deletes the row. Unknown actions are ignored.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID uint, action string) error {
	const op = "cart.update_quantity"

	var err error
	switch action {
	case ActionIncrease:
		err = s.carts.Increment(ctx, userID, productID, 1)
	case ActionDecrease:
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			carts := s.carts.WithTx(tx)

			item, err := carts.Find(ctx, userID, productID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err == nil && item.Quantity > 1 {
				return carts.Increment(ctx, userID, productID, -1)
			}
			return carts.Delete(ctx, userID, productID)
		})
	default:
		logger.WithCtx(ctx).Debug("cart quantity action ignored", "action", action)
		return nil
	}

	if err != nil {
		return apperr.E(apperr.Store, op, err)
	}
	metrics.CartMutations.WithLabelValues(action).Inc()
	return nil
}

// Checkout prices the cart: 5% tax on the subtotal, computed in cents.
func (s *CartService) Checkout(ctx context.Context, userID uint) (Bill, error) {
	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return Bill{}, apperr.E(apperr.Store, "cart.checkout", err)
	}
	return NewBill(lines), nil
}

// PlaceOrder empties the user's cart. Nothing else is recorded.
func (s *CartService) PlaceOrder(ctx context.Context, userID uint) error {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.carts.WithTx(tx).Clear(ctx, userID)
		removed = n
		return err
	})
	if err != nil {
		return apperr.E(apperr.Store, "cart.place_order", err)
	}

	metrics.OrdersPlaced.Inc()
	logger.WithCtx(ctx).Info("order placed", "user_id", userID, "lines", removed)
	return nil
}

// NewBill totals lines. Tax is rounded half up to the cent, so Final equals
// Subtotal × 1.05 rounded to two places.
func NewBill(lines []models.CartLine) Bill {
	subtotal := sumCents(lines)
	tax := (subtotal*TaxBasisPoints + 5000) / 10000
	final := subtotal + tax

	return Bill{
		Items:         lines,
		SubtotalCents: subtotal,
		TaxCents:      tax,
		FinalCents:    final,
		Subtotal:      models.FormatCents(subtotal),
		Tax:           models.FormatCents(tax),
		Final:         models.FormatCents(final),
	}
}

func sumCents(lines []models.CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.LineCents()
	}
	return total
}
