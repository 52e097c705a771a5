/*
Package ingest turns raw transaction data into entities and transaction
rows. It accepts CSV and JSON uploads plus an optional Kafka stream, and
tolerates the field-name drift found in real export files: "from" and
"sender" are the same column, "date" and "timestamp" are the same
column, and a missing transaction id gets one generated.

Entities are created the first time a name is seen; duplicate
transaction references are skipped so re-uploading a file is harmless.
*/
package ingest
