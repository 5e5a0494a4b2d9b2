package config

import (
	"os"
	"strconv"
	"time"
)

type CronCfg struct {
	FireInterval  time.Duration
	PurgeInterval time.Duration
	PurgeAge      time.Duration
	BatchSize     int
}

func NewCronCfg() *CronCfg {
	fireSec, err := strconv.Atoi(os.Getenv("CRON_FIRE_INTERVAL_SEC"))
	if err != nil {
		fireSec = 30
	}
	purgeSec, err := strconv.Atoi(os.Getenv("CRON_PURGE_INTERVAL_SEC"))
	if err != nil {
		purgeSec = 3600
	}
	return &CronCfg{
		FireInterval:  time.Duration(fireSec) * time.Second,
		PurgeInterval: time.Duration(purgeSec) * time.Second,
		PurgeAge:      24 * time.Hour,
		BatchSize:     100,
	}
}
