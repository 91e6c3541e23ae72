// Package catalog provides the cache-backed, filtered, paginated view over
// the upstream creature catalog. It is the core of the application: every
// list page, detail view, spreadsheet export and email attachment is built
// from its three operations.
//
//   - FetchPage: one filtered page of summaries plus the catalog total
//   - SpeciesNames: all species display names, cached for 6 hours
//   - Detail: the full record for one entry, cached for 30 minutes
//
// Failure policy (intentionally asymmetric):
//
//   - The primary listing call of FetchPage propagates its error.
//   - Per-entry detail failures inside FetchPage are swallowed; the entry
//     is silently dropped from the page.
//   - Species-list fetch failures propagate and are never cached, so a
//     later call retries the live fetch.
//   - A not-found detail lookup is not an error: Detail returns (nil, nil)
//     and the negative result is cached for the full TTL.
//
// Cache values are JSON so the memory and Redis backends share one Store
// contract. Concurrent lookups of the same key are collapsed to a single
// upstream fetch via singleflight.
package catalog
