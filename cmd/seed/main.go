// seed crea una cuenta de demostración (dueño + negocio) usando el mismo
// flujo de alta que la API, de modo que el negocio queda con su catálogo
// de preferencias inicial.
//
// Uso: go run ./cmd/seed [email]
// Por defecto usa demo@negociopro.ng. Si la cuenta ya existe no hace nada.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tu-usuario/negocio-pro/internal/application/auth"
	"github.com/tu-usuario/negocio-pro/internal/application/dto"
	"github.com/tu-usuario/negocio-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/negocio-pro/pkg/config"
	"github.com/tu-usuario/negocio-pro/pkg/logger"
)

const demoPassword = "Demo1234"

func main() {
	email := "demo@negociopro.ng"
	if len(os.Args) > 1 {
		email = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Preparar esquema: %v\n", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)

	exists, err := userRepo.ExistsByEmail(email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Consultar cuenta: %v\n", err)
		os.Exit(1)
	}
	if exists {
		fmt.Printf("La cuenta %s ya existe, nada que hacer\n", email)
		return
	}

	// Sin mailer: el alta no depende del correo de bienvenida.
	authUC := auth.NewAuthUseCase(userRepo, businessRepo, postgres.NewTxRunner(pool), nil, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	resp, err := authUC.Register(ctx, dto.RegisterRequest{
		FirstName:    "Demo",
		LastName:     "NegocioPro",
		Email:        email,
		Password:     demoPassword,
		BusinessName: "Negocio de Demostración",
		Industry:     "retail",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear cuenta demo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Cuenta demo creada: %s / %s\n", email, demoPassword)
	fmt.Printf("Negocio: %s (%s)\n", resp.Business.Name, resp.Business.ID)
}
