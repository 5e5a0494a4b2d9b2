package config

import (
	"os"
	"strconv"
	"time"
)

type TransientCfg struct {
	DefaultTTL time.Duration
	QueryTTL   time.Duration
}

func NewTransientCfg() *TransientCfg {
	defSec, err := strconv.Atoi(os.Getenv("TRANSIENT_DEFAULT_TTL_SEC"))
	if err != nil {
		defSec = 300
	}
	querySec, err := strconv.Atoi(os.Getenv("TRANSIENT_QUERY_TTL_SEC"))
	if err != nil {
		querySec = 60
	}
	return &TransientCfg{
		DefaultTTL: time.Duration(defSec) * time.Second,
		QueryTTL:   time.Duration(querySec) * time.Second,
	}
}
