package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"cmsapi/internal/config"
	"cmsapi/internal/mailer"
)

func TestNewDelivery(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want interface{}
	}{
		{"no relay logs mail", config.Config{}, &mailer.LogMailer{}},
		{"relay configured", config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587, MailFrom: "no-reply@example.com"}, &mailer.SMTPSender{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.IsType(t, tt.want, newDelivery(&tt.cfg, zerolog.Nop()))
		})
	}
}
