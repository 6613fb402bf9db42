// Package logger builds the service's *slog.Logger.
//
// New takes functional options: output format, level, static attributes and
// ContextExtractor callbacks. The extractors run on every record, which is how
// request ids and the runtime environment land in log lines without being
// threaded through call sites.
//
//	log := logger.New(
//		logger.WithEnvironment(env, "timeline"),
//		logger.WithContextExtractors(requestid.LoggerExtractor(), environment.LoggerExtractor()),
//	)
//
// Attribute helpers such as Error, Component and Email keep key names
// consistent. Email masks the local part of an address.
package logger
