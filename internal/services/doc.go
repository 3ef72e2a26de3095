// Package services orchestrates a report run: it loads each configured
// metric file, runs the aggregation and statistical calculations, and writes
// the CSV and JSON artifacts. Metrics are independent and processed
// concurrently; cross-metric views (alignment, correlations) run after all
// metrics have loaded.
package services
