// seed carga los productos de demostración en un inventario vacío.
//
// Uso: go run ./cmd/seed
// Usa la misma configuración que la API (DB_DRIVER, DATABASE_URL, SQLITE_DSN, ...).
// No hace nada si ya existen productos.
package main

import (
	"context"
	"time"

	"github.com/jhoicas/medsupply-api/internal/infrastructure/seed"
	"github.com/jhoicas/medsupply-api/internal/infrastructure/store"
	"github.com/jhoicas/medsupply-api/pkg/config"
	"github.com/jhoicas/medsupply-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "medsupply-seed"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión al almacenamiento")
	}
	defer st.Close()

	n, err := seed.Demo(ctx, st.Products, time.Now())
	if err != nil {
		log.Error().Err(err).Int("inserted", n).Msg("seed demo")
		return
	}
	if n == 0 {
		log.Info().Msg("el inventario ya tiene productos; no se insertó nada")
		return
	}
	log.Info().Int("inserted", n).Msg("productos demo insertados")
}
