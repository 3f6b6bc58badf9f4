package cli

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"top position", func(c *Config) { c.PromptPosition = "top" }, false},
		{"bad position", func(c *Config) { c.PromptPosition = "middle" }, true},
		{"zero idle timeout", func(c *Config) { c.IdleTimeout = 0 }, true},
		{"negative idle warning", func(c *Config) { c.IdleWarning = -1 }, true},
		{"zero idle warning", func(c *Config) { c.IdleWarning = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHandoffBufferNames(t *testing.T) {
	if got := contentBuffer("abc"); got != "flashcopy-content-abc" {
		t.Errorf("contentBuffer = %q", got)
	}
	if got := resultBuffer("abc"); got != "flashcopy-result-abc" {
		t.Errorf("resultBuffer = %q", got)
	}
}
