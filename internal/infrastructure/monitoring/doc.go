/*
Package monitoring provides Prometheus metrics for the autofill service.

# Overview

Metrics cover the HTTP surface (latency, throughput, sizes), fill-script
generation (outcome per cipher type, operations per script), field
qualification, page collection, and remote attribute lookups.

# Usage

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)

	router.Use(monitoring.Middleware(metrics))

	metrics.RecordFillScript("login", monitoring.OutcomeGenerated, len(script.Script))

	timer := monitoring.NewTimer(metrics, "birthday")
	// ... fetch ...
	timer.Stop("ok")

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

Tests register on a fresh prometheus.NewRegistry() so that several
collectors can coexist.
*/
package monitoring
