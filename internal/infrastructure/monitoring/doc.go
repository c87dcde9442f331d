/*
Package monitoring provides metrics collection for the shell backend.

# Overview

This package implements Prometheus-based metrics collection, tracking HTTP
requests, shell lifecycle transitions, context menu activity, power
phases and WebSocket connections.

# Features

- HTTP request metrics (latency, throughput, size)
- Lifecycle transition counters (open, close, minimize, focus, ...)
- Open / hidden application gauges
- Context menu and power phase counters
- WebSocket connection metrics
- Uptime

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record shell activity
	metrics.RecordTransition("open")
	metrics.SetApps(2, 1)

A nil *Metrics records nothing.

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
