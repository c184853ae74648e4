package business

import "github.com/tu-usuario/negocio-pro/internal/domain/entity"

// OwnerReader resuelve la cuenta del dueño para el perfil del negocio.
// Lo satisface repository.UserRepository.
type OwnerReader interface {
	GetByID(id string) (*entity.User, error)
}
