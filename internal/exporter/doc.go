// Package exporter writes report artifacts to disk: CSV tables for the
// aggregate views and a JSON document for the full report. Growth and
// comparison values that are undefined stay blank in CSV and null in JSON,
// never zero.
package exporter
