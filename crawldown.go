// Package crawldown provides a crawler that discovers and retrieves
// textual content reachable from a starting URL, producing a lazy
// stream of (url, markdown) pages for downstream indexing or archival.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// htmltomarkdown/, http/); the crawl engine lives in crawl/.
package crawldown
