// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

/*
Package intent turns conversational shopping queries into structured search
filters using an OpenAI-compatible chat completion endpoint.

The parser is an optional front end to the hybrid search engine. It is
protected by a client-side rate limiter (golang.org/x/time/rate), a circuit
breaker (sony/gobreaker) and a per-call timeout. Every failure path degrades
to a literal search for the raw query, so callers never see an error:

  - no API key: {intent: search, search_term: query, "Searching..."}
  - empty query: {intent: ask_clarification, "How can I help you today?"}
  - upstream error, timeout, open breaker or malformed output:
    {intent: search, search_term: query, "I'm looking into '<q>' for you..."}

Keys missing from a successful answer are filled with the literal-search
defaults. Prices are accepted as JSON numbers or numeric strings.
*/
package intent
