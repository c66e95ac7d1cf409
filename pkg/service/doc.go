// Package service is the request-facing façade over the dataset cache.
//
// Service exposes the three dataset operations (List, GetByGUID, Health)
// plus an administrative Reload, and the HTTP handlers that map their
// outcomes onto responses:
//
//	svc := service.New(cache)
//	handlers := map[string]http.HandlerFunc{
//	    "GET /{$}":    svc.HandleList,
//	    "GET /{guid}": svc.HandleGet,
//	}
//
// Any data source failure (path, read, parse or schema) is reported as a
// 500 with "Failed to load data: <message>". An empty or whitespace-only
// identifier is a 400 and an unknown identifier a 404.
package service
