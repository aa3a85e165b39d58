package main

import (
	"github.com/mpetrik/apogee/pkg/middleware"
)

const (
	RouterEventCapacity = 1024
	MonitorFlags        = middleware.MonitorOrdersRejected
	DefaultConfigPath   = "backtest.yaml"
)
