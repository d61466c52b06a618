// Package types defines the shared wire contract of the food-search engine:
// the dish catalog schema, the structured Query produced by either the local
// extractor or the remote parsing service, and the ranked search results with
// their explanation plan.
//
// Field names and JSON tags are the contract with the remote service. A Query
// produced by the remote parser and one produced by the local QueryBuilder are
// interchangeable; the engine evaluates both identically.
package types
