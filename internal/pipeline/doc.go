// Package pipeline orchestrates a classification run: source check, catalog
// fetch, taxonomy extraction and threshold, discovery, planning, sequential
// copying, and summary reporting.
//
// Every fatal condition (missing source, failed fetch, too small a taxonomy)
// is detected before the destination tree is touched.
package pipeline
