// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

/*
Package api provides the HTTP surface of Shopwise.

Routes are served by a chi router under /api/v1:

	GET  /recommend/user/{userID}?n=10
	GET  /recommend/product/{productID}?n=10
	GET  /search?q=&n=5&min_price=&max_price=&category=&brand=
	GET  /smart-search?q=&history=<json>&n=5
	GET  /model/status
	POST /model/train
	POST /interactions
	GET  /health/live
	GET  /health/ready

Prometheus metrics are exposed at /metrics.

# Response Format

Every endpoint answers with the same envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {
	    "timestamp": "2026-01-02T15:04:05Z",
	    "request_id": "5f0c...",
	    "model_version": 3,
	    "stage": "keyword"
	  }
	}

Errors set status to "error" and carry an error object with a machine
readable code such as VALIDATION_ERROR or MODEL_NOT_READY.

No results is a success with an empty product list. Only malformed input
(400) and a model that has not been published yet (503) are errors.

# Caching

Similar-product and search results are cached through cache.ResultCache.
Keys include the model version, so a retrain makes every earlier entry
unreachable without an explicit flush.
*/
package api
