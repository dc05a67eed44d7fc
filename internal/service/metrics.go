package service

import "github.com/prometheus/client_golang/prometheus"

var purchasesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sweetshop_purchases_total",
		Help: "Purchase attempts by result (ok/rejected/error)",
	},
	[]string{"result"},
)

func init() { prometheus.MustRegister(purchasesTotal) }

func observePurchase(result string) { purchasesTotal.WithLabelValues(result).Inc() }
