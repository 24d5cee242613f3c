package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/coldstore/internal/domain/models"
	"github.com/mamadbah2/coldstore/internal/repository/mongodb"
	"github.com/mamadbah2/coldstore/pkg/clients/notify"
)

const listLimit = 1000

// Business rule violations surfaced to the caller as bad requests.
var (
	// ErrInvalidQuantity rejects sale requests carrying a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrCreditToNewClient rejects credit sales to clients that are not
	// registered yet. A credit limit has to exist before credit is extended.
	ErrCreditToNewClient = errors.New("cannot sell on credit to a new client; register the client with a credit limit first")

	// ErrInsufficientStock rejects a line whose quantity exceeds current stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Service records sales: it resolves the buying client, prices each line
// against the catalog, decrements stock and persists the resulting sale.
type Service struct {
	products mongodb.ProductStore
	clients  mongodb.ClientStore
	sales    mongodb.SaleStore
	notifier notify.Client
	logger   *zap.Logger
}

// NewService wires a new sales service instance. notifier may be nil to
// disable low-stock alerting.
func NewService(products mongodb.ProductStore, clients mongodb.ClientStore, sales mongodb.SaleStore, notifier notify.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		products: products,
		clients:  clients,
		sales:    sales,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateSale runs the sale workflow. Lines are processed sequentially and
// stock decrements are applied as each line passes its checks; when a later
// line fails, earlier decrements are not rolled back.
func (s *Service) CreateSale(ctx context.Context, req models.SaleCreate) (*models.Sale, error) {
	clientID, clientName, err := s.resolveClient(ctx, req)
	if err != nil {
		return nil, err
	}

	// Quantities are validated up front so a bad line anywhere in the request
	// aborts before any stock is touched.
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentCash
	}

	items := make([]models.SaleItem, 0, len(req.Items))
	var subtotal float64
	var alerts []notify.LowStockAlert

	for _, line := range req.Items {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, mongodb.ErrNotFound) {
				return nil, fmt.Errorf("product %s: %w", line.ProductID, err)
			}
			return nil, err
		}

		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
		}

		lineTotal := product.Price * line.Quantity
		items = append(items, models.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			TotalPrice:  lineTotal,
		})
		subtotal += lineTotal

		newStock := product.Stock - line.Quantity
		if err := s.products.UpdateStock(ctx, product.ID, newStock, time.Now().UTC()); err != nil {
			return nil, err
		}

		if newStock <= models.LowStockThreshold {
			alerts = append(alerts, notify.LowStockAlert{
				ProductID:   product.ID,
				ProductName: product.Name,
				Stock:       newStock,
				Unit:        product.Unit,
				Threshold:   models.LowStockThreshold,
			})
		}
	}

	now := time.Now().UTC()
	sale := models.Sale{
		ID:            models.NewSaleID(),
		ClientID:      clientID,
		ClientName:    clientName,
		Items:         items,
		Subtotal:      subtotal,
		Discount:      req.Discount,
		Total:         subtotal - req.Discount,
		PaymentMethod: paymentMethod,
		Status:        models.SaleStatusCompleted,
		CreatedAt:     now,
		InvoiceNumber: models.InvoiceNumber(now),
	}

	if err := s.sales.Insert(ctx, sale); err != nil {
		return nil, err
	}

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.String("invoice", sale.InvoiceNumber),
		zap.Float64("total", sale.Total),
		zap.Int("items", len(sale.Items)))

	s.dispatchAlerts(alerts)

	return &sale, nil
}

// resolveClient applies the client resolution policy: a supplied id is used
// as-is, a known name is reused, an unknown name creates a client unless the
// sale is on credit, and the anonymous sentinel leaves the sale unattached.
func (s *Service) resolveClient(ctx context.Context, req models.SaleCreate) (*string, string, error) {
	clientName := strings.TrimSpace(req.ClientName)
	if clientName == "" {
		clientName = models.AnonymousClient
	}

	if req.ClientID != nil {
		return req.ClientID, clientName, nil
	}

	if clientName == models.AnonymousClient {
		return nil, clientName, nil
	}

	existing, err := s.clients.FindByName(ctx, clientName)
	if err == nil {
		return &existing.ID, existing.Name, nil
	}
	if !errors.Is(err, mongodb.ErrNotFound) {
		return nil, "", err
	}

	if req.PaymentMethod == models.PaymentCredit {
		return nil, "", ErrCreditToNewClient
	}

	newClient := models.ClientCreate{Name: clientName}.NewClient(time.Now().UTC())
	if err := s.clients.Insert(ctx, newClient); err != nil {
		return nil, "", err
	}

	s.logger.Info("client auto-created during sale",
		zap.String("client_id", newClient.ID),
		zap.String("client_name", newClient.Name))

	return &newClient.ID, newClient.Name, nil
}

// dispatchAlerts fires low-stock notifications in the background; delivery
// failures are logged and never surfaced to the sale caller.
func (s *Service) dispatchAlerts(alerts []notify.LowStockAlert) {
	if s.notifier == nil || len(alerts) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		for _, alert := range alerts {
			if err := s.notifier.SendLowStockAlert(ctx, alert); err != nil {
				s.logger.Warn("failed to deliver low stock alert",
					zap.String("product_id", alert.ProductID),
					zap.Error(err))
			}
		}
	}()
}

// ListSales returns recorded sales, newest first.
func (s *Service) ListSales(ctx context.Context) ([]models.Sale, error) {
	return s.sales.FindAll(ctx, listLimit)
}

// GetSale fetches a single sale by id.
func (s *Service) GetSale(ctx context.Context, id string) (*models.Sale, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, fmt.Errorf("sale %s: %w", id, err)
		}
		return nil, err
	}
	return sale, nil
}
