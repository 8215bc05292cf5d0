package config

import (
	"bytes"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse()
	if err != nil {
		t.Fatal(err)
	}
	if c.Rows != 6 || c.Cols != 5 || !c.HelpfulKeyboard {
		t.Errorf("grid defaults = %d×%d helpful=%v", c.Rows, c.Cols, c.HelpfulKeyboard)
	}
	if c.Port != "5175" || c.TokenTTL != 24*time.Hour {
		t.Errorf("port=%q ttl=%v", c.Port, c.TokenTTL)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("WORDGRID_ROWS", "8")
	t.Setenv("WORDGRID_COLS", "6")
	t.Setenv("HELPFUL_KEYBOARD", "false")
	t.Setenv("SESSION_TOKEN_TTL", "90m")

	c, err := Parse()
	if err != nil {
		t.Fatal(err)
	}
	if c.Rows != 8 || c.Cols != 6 || c.HelpfulKeyboard || c.TokenTTL != 90*time.Minute {
		t.Errorf("overrides not applied: %+v", c)
	}
}

func TestValidate(t *testing.T) {
	base := Config{Rows: 6, Cols: 5}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero rows", func(c *Config) { c.Rows = 0 }, true},
		{"too wide", func(c *Config) { c.Cols = 33 }, true},
		{"driver without dsn", func(c *Config) { c.DBDriver = "sqlite3" }, true},
		{"unknown driver", func(c *Config) { c.DBDriver, c.DBDSN = "mysql", "x" }, true},
		{"postgres", func(c *Config) { c.DBDriver, c.DBDSN = "postgres", "postgres://x" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDerivedKeys(t *testing.T) {
	c := Config{Secret: "s3cret"}
	tok, err := c.TokenKey()
	if err != nil {
		t.Fatal(err)
	}
	day, err := c.DailyKey()
	if err != nil {
		t.Fatal(err)
	}
	if len(tok) != 32 || bytes.Equal(tok, day) {
		t.Error("keys should be 32 bytes and distinct per purpose")
	}
	again, _ := c.TokenKey()
	if !bytes.Equal(tok, again) {
		t.Error("derivation is not deterministic")
	}

	c.DailySalt = "fixed"
	if day, _ := c.DailyKey(); string(day) != "fixed" {
		t.Errorf("DAILY_SALT not honoured: %q", day)
	}
}
