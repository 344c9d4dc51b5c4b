package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Azure: AzureConfig{
			Endpoint:   "https://example.openai.azure.com",
			APIKey:     "key",
			Deployment: "gpt-4o",
		},
		Google: GoogleConfig{
			CredentialsJSON: `{"type":"service_account"}`,
			CalendarID:      "ops@example.com",
		},
	}
}

// TestValidate checks that every required credential fails fast with a
// message naming the variable to set.
func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantVar string
	}{
		{
			name:    "missing azure endpoint",
			mutate:  func(c *Config) { c.Azure.Endpoint = "" },
			wantVar: "AZURE_OPENAI_ENDPOINT",
		},
		{
			name:    "missing azure key",
			mutate:  func(c *Config) { c.Azure.APIKey = "" },
			wantVar: "AZURE_OPENAI_API_KEY",
		},
		{
			name:    "missing deployment",
			mutate:  func(c *Config) { c.Azure.Deployment = "" },
			wantVar: "AZURE_DEPLOYMENT_NAME",
		},
		{
			name:    "missing google credentials",
			mutate:  func(c *Config) { c.Google.CredentialsJSON = "" },
			wantVar: "GOOGLE_CREDENTIALS_JSON",
		},
		{
			name:    "missing calendar id",
			mutate:  func(c *Config) { c.Google.CalendarID = "" },
			wantVar: "GOOGLE_CALENDAR_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error, got none")
			}
			if !strings.Contains(err.Error(), tt.wantVar) {
				t.Errorf("error %q does not name %s", err, tt.wantVar)
			}
		})
	}
}
