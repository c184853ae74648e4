package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/negocio-pro/internal/application/dto"
	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
	"github.com/tu-usuario/negocio-pro/pkg/jwt"
)

// localUser es la key de c.Locals donde queda la cuenta resuelta.
const localUser = "current_user"

// accountResolver es el contrato mínimo que necesita el middleware para
// resolver la cuenta del token. Lo implementa repository.UserRepository;
// la interfaz evita acoplar el middleware al puerto completo.
type accountResolver interface {
	GetByID(id string) (*entity.User, error)
}

// RequireAuth valida el Bearer token y resuelve la cuenta contra la BD en
// cada petición: desactivar una cuenta surte efecto de inmediato aunque su
// token siga vigente. La cuenta resuelta queda en c.Locals para los
// handlers posteriores.
func RequireAuth(jwtSecret string, accounts accountResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, failure, err := resolveAccount(c, jwtSecret, accounts)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("error interno del servidor"))
		}
		if failure != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(failure))
		}
		c.Locals(localUser, user)
		return c.Next()
	}
}

// OptionalAuth intenta la misma resolución pero nunca rechaza: si el token
// falta o no es válido, la petición sigue sin cuenta adjunta.
func OptionalAuth(jwtSecret string, accounts accountResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user, failure, err := resolveAccount(c, jwtSecret, accounts); err == nil && failure == "" {
			c.Locals(localUser, user)
		}
		return c.Next()
	}
}

// resolveAccount extrae el Bearer token, lo verifica y carga la cuenta.
// Devuelve un mensaje de rechazo 401 en failure, o err si falló el store.
func resolveAccount(c *fiber.Ctx, jwtSecret string, accounts accountResolver) (user *entity.User, failure string, err error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return nil, "token de autenticación requerido", nil
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, "formato esperado: Bearer <token>", nil
	}

	userID, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, "token inválido o expirado", nil
	}

	user, err = accounts.GetByID(userID)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !user.Active {
		return nil, "la cuenta ya no existe o está desactivada", nil
	}
	return user, "", nil
}

// RequireRole exige que la cuenta resuelta tenga uno de los roles dados.
// Debe usarse después de RequireAuth.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("no autenticado"))
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail(
			"el rol " + user.Role + " no tiene permisos para esta acción"))
	}
}

// CurrentUser devuelve la cuenta resuelta por RequireAuth, o nil.
func CurrentUser(c *fiber.Ctx) *entity.User {
	user, _ := c.Locals(localUser).(*entity.User)
	return user
}

// CurrentUserID devuelve el id de la cuenta autenticada.
func CurrentUserID(c *fiber.Ctx) string {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}

// CurrentBusinessID devuelve el negocio de la cuenta autenticada.
func CurrentBusinessID(c *fiber.Ctx) string {
	if user := CurrentUser(c); user != nil {
		return user.BusinessID
	}
	return ""
}
