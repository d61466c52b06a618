// Package parser turns free-form Spanish food-order text into a structured
// query plus an ordered, human-readable extraction trace.
//
// Extractors run in a fixed order and each appends its trace lines to the
// shared plan, so identical input text against identical dictionaries and
// catalog reproduces an identical plan byte for byte. Extraction is total:
// no input ever makes the parser fail, unmatched dimensions simply keep
// their defaults and emit no trace line.
package parser
