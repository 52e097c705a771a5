/*
Package analysis runs the end-to-end assessment pipeline for an entity:
load its profile and transactions, gather external evidence, compute
behavioral statistics, score, and persist the result.

One entity is one unit of work. Batch runs fan out over a bounded worker
group and isolate failures per entity, so one unreachable evidence
source or bad record never sinks the whole batch.
*/
package analysis
