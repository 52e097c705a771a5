// Package report assembles entity dossiers: the profile, the latest
// assessment with its leading factors, gathered evidence grouped by
// source, and a transaction summary. Dossiers are stored as JSON and
// served by the export endpoints.
package report
