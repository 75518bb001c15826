package services

import (
	portsrepo "github.com/budgetcr/budget_backend/internal/core/ports/repositories"
	portssvc "github.com/budgetcr/budget_backend/internal/core/ports/services"
	"github.com/budgetcr/budget_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService()
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)
	container.Obligation = NewObligationService(repos.ObligationRepo, repos.PaymentInstanceRepo)
	container.Reporting = NewReportingService(container.Obligation, container.ExchangeRate)
	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(container.User, cfg)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.CurrencySvcFacade     = (*CurrencyService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)
	_ portssvc.ObligationSvcFacade   = (*ObligationService)(nil)
	_ portssvc.ReportingSvcFacade    = (*ReportingService)(nil)
	_ portssvc.UserSvcFacade         = (*UserService)(nil)
	_ portssvc.AuthSvcFacade         = (*AuthService)(nil)
)
