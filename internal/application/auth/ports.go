package auth

import (
	"context"

	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
	"github.com/tu-usuario/negocio-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El alta usuario+negocio depende de esto:
// ningún lector concurrente puede ver la pareja a medio crear.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		businessRepo repository.BusinessRepository,
	) error) error
}

// Mailer envía los correos transaccionales del flujo de autenticación.
type Mailer interface {
	SendWelcome(ctx context.Context, user *entity.User, businessName string) error
	SendPasswordReset(ctx context.Context, user *entity.User, resetToken string) error
}
