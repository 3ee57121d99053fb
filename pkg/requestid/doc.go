// Package requestid tags every HTTP request with a correlation ID.
//
// The middleware reuses a well-formed X-Request-ID header or generates a new
// UUID, echoes it in the response and stores it in the request context. Pair
// it with LoggerExtractor so every log record written with the request
// context carries a request_id attribute:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
