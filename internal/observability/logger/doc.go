// Package logger provides a singleton Zap logger with context-based scoping.
//
// Inicialización (una vez, en el comando serve):
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
// En controllers/services:
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Login"))
//	log.Info("store login", logger.StoreID(id))
//
// Nunca se loguean el secreto de firma, passwords ni tokens crudos.
package logger
