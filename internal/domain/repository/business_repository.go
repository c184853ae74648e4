package repository

import "github.com/tu-usuario/negocio-pro/internal/domain/entity"

// BusinessRepository define el puerto de persistencia para Business (DIP).
// La implementación vive en infrastructure.
type BusinessRepository interface {
	Create(business *entity.Business) error
	GetByID(id string) (*entity.Business, error)
	// GetByOwner busca el negocio cuyo propietario es el usuario dado. Devuelve (nil, nil) si no existe.
	GetByOwner(ownerID string) (*entity.Business, error)
	Update(business *entity.Business) error
	// UpdatePreferences reemplaza el documento de preferencias en una sola escritura.
	UpdatePreferences(businessID string, prefs entity.Preferences) error
}
