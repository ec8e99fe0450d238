package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// WebhookSecret signs payment webhook bodies (hex HMAC-SHA256).
	WebhookSecret string

	// OrderClaimTTL is how long a new order stays claimable before the
	// expiry sweep may cancel it.
	OrderClaimTTL time.Duration

	// ExpirySweepSchedule is a robfig/cron expression, e.g. "@every 5m".
	ExpirySweepSchedule string

	// ExpirySweepBatch caps candidates per sweep pass; 0 uses the default.
	ExpirySweepBatch int

	// NotifyFanoutLimit bounds concurrent driver notifications on a paid
	// order; 0 means unbounded.
	NotifyFanoutLimit int

	KafkaHost               string
	KafkaNotificationsTopic string
}
