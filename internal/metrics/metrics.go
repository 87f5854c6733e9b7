// Package metrics holds the Prometheus collectors for the sync engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RemoteFetches counts wishlist list fetches against the remote service.
	RemoteFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wishlist_remote_fetch_total",
			Help: "Total wishlist list fetches against the remote service",
		},
		[]string{"result"},
	)

	// CoalescedWaiters counts Get callers served by an already in-flight fetch.
	CoalescedWaiters = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wishlist_fetch_coalesced_total",
			Help: "Cache readers served by an in-flight fetch instead of a new request",
		},
	)

	// Mutations counts add/remove/merge operations by identity mode and result.
	Mutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wishlist_mutations_total",
			Help: "Wishlist mutations performed by the gateway",
		},
		[]string{"op", "mode", "result"},
	)

	// DetailLookups counts product detail cache fills by outcome.
	DetailLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wishlist_product_detail_total",
			Help: "Product detail lookups performed on cache miss",
		},
		[]string{"result"},
	)

	// WidgetsInitialized counts markers turned into live controllers.
	WidgetsInitialized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wishlist_widgets_initialized_total",
			Help: "Widget markers initialized by the discovery registry",
		},
		[]string{"kind"},
	)
)
