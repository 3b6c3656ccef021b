// Package main Shadebar API
//
// order entry and inventory tracking for the sunglasses catalog
//
//   version: 1.0.0
//   title: Shadebar Service
//  Schemes:
//    -http
//    -https
//  Host: localhost:5000
//  BasePath: /
//	Consumes:
//	  - application/json
//  Produces:
//    - application/json
// swagger:meta
package main
