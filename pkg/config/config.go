package config

import (
	"time"
)

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0" validate:"gte=-4,lte=12"`
	Format     string `envconfig:"FORMAT" default:"text" validate:"oneof=text json logfmt tint"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[converter]"`
}

//revive:disable
type ExchangeRate struct {
	ApiUrl      string        `envconfig:"API_URL" default:"https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1/currencies/usd.json" validate:"required,url"`
	Base        string        `envconfig:"BASE" default:"usd" validate:"required,alpha,len=3,lowercase"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"5s" validate:"gt=0"`
	MaxAge      time.Duration `envconfig:"MAX_AGE" default:"24h" validate:"gt=0"`
}

//revive:enable

type App struct {
	Env          string        `envconfig:"APP_ENV" default:"development" validate:"oneof=development test production"`
	Log          *Log          `envconfig:"LOG"`
	ExchangeRate *ExchangeRate `envconfig:"EXCHANGE_RATE"`
}
