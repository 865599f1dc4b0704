// Package logger builds configured slog.Logger instances with environment
// presets and context-aware attribute injection.
//
// The factory produces JSON logs at info level by default, suitable for log
// aggregation in production. Development mode switches to human-readable text
// output at debug level. Context extractors allow request-scoped values such
// as request IDs to be attached to every record logged within a request.
//
// Usage:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.AppEnv, "growthlab"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "article fetched", logger.ArticleID(id))
package logger
