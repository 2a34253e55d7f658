// Package logger provee un logger estructurado (zap) como singleton,
// con propagación por contexto y helpers de campos tipados.
//
// Uso típico:
//
//	logger.Init(logger.Config{Env: "dev", Level: "info", ServiceName: "jwks-server"})
//	defer logger.Sync()
//
//	log := logger.From(ctx).With(logger.Component("issuer"))
//	log.Info("token issued", logger.KID(kid))
package logger
