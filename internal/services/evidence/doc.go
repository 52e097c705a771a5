/*
Package evidence gathers external signals about an entity from the
configured lookup sources: corporate registry, adverse media, sanctions
lists, and an AI analysis service.

Sources are queried concurrently, each under its own timeout. A slow or
failing source never blocks the others; whatever was collected is
returned together with a completeness marker (full, partial, none) so
downstream consumers know how much of the picture they have.

Usage:

	agg := evidence.NewAggregator(cfg, logger)
	res := agg.Gather(ctx, entity, activityDigest)
	// res.Items feeds the risk engine, res.Completeness qualifies it.

Only sources with a configured base URL participate; an unconfigured
source is excluded from the completeness denominator rather than counted
as a failure.
*/
package evidence
