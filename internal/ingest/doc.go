// Package ingest parses the raw file content a dashboard loads - delimited
// text exports and spreadsheet workbooks - into date-keyed series.
//
// Ingestion is deliberately lenient: real-world exports from power-sector
// portals carry inconsistent date notations, thousands separators, stray
// header variations and the occasional unparseable row. A bad row is
// recorded as a row-indexed error string and skipped; ingestion only fails
// outright when the input holds no rows at all. Later rows for the same date
// replace earlier ones.
package ingest
