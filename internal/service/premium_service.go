package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/companion-service/internal/domain"
	"github.com/spec-kit/companion-service/internal/payment"
	"github.com/spec-kit/companion-service/internal/repository"
)

// Messages shown on the premium page.
const (
	PackagesLoadError = "Det gick inte att ladda token-paket."
	ContentLoadError  = "Det gick inte att ladda sidans innehåll."
	PackageNotFound   = "Valt token-paket kunde inte hittas"
)

var (
	ErrPackageNotFound    = errors.New(PackageNotFound)
	ErrPaymentUnavailable = errors.New("payments are not configured")
)

// PremiumPage is the data behind the premium page. Each half may fail alone.
type PremiumPage struct {
	Packages      []domain.TokenPackage `json:"packages"`
	PackagesError string                `json:"packagesError,omitempty"`
	Content       map[string]string     `json:"content"`
	ContentError  string                `json:"contentError,omitempty"`
}

// PremiumService loads the premium page and starts token checkouts.
type PremiumService struct {
	premium    repository.PremiumRepository
	provider   payment.Provider
	successURL string
	cancelURL  string
	logger     *zap.Logger
}

// NewPremiumService builds the service. provider may be nil when payments are
// not configured.
func NewPremiumService(premium repository.PremiumRepository, provider payment.Provider, publicURL string, logger *zap.Logger) *PremiumService {
	return &PremiumService{
		premium:    premium,
		provider:   provider,
		successURL: publicURL + "/premium?success=true",
		cancelURL:  publicURL + "/premium?canceled=true",
		logger:     logger.Named("premium_service"),
	}
}

// Page loads packages and content concurrently.
func (s *PremiumService) Page(ctx context.Context) PremiumPage {
	page := PremiumPage{
		Packages: []domain.TokenPackage{},
		Content:  map[string]string{},
	}

	var g errgroup.Group
	g.Go(func() error {
		packages, err := s.premium.ListPackages(ctx)
		if err != nil {
			s.logger.Error("Error loading token packages", zap.Error(err))
			page.PackagesError = PackagesLoadError
			return nil
		}
		page.Packages = packages
		return nil
	})
	g.Go(func() error {
		sections, err := s.premium.ListContent(ctx)
		if err != nil {
			s.logger.Error("Error loading premium content", zap.Error(err))
			page.ContentError = ContentLoadError
			return nil
		}
		for _, sec := range sections {
			page.Content[sec.Section] = sec.Content
		}
		return nil
	})
	_ = g.Wait()
	return page
}

// Checkout creates a payment session for packageID and returns its URL.
func (s *PremiumService) Checkout(ctx context.Context, userID, email, packageID string) (string, error) {
	if s.provider == nil {
		return "", ErrPaymentUnavailable
	}
	pkg, err := s.premium.GetPackage(ctx, packageID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrPackageNotFound
	}
	if err != nil {
		return "", err
	}
	return s.provider.CreateCheckout(ctx, payment.CheckoutRequest{
		Package:    *pkg,
		UserID:     userID,
		Email:      email,
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
	})
}
