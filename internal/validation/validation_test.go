package validation

import (
	"testing"
)

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     bool
	}{
		{"empty string", "", false},
		{"single word", "weather", true},
		{"full question", "Who is the mayor of Paris?", true},
		{"whitespace only", "   ", true},
		{"unicode", "東京の天気は?", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateQuestion(tt.question)
			if got != tt.want {
				t.Errorf("ValidateQuestion(%q) = %v, want %v", tt.question, got, tt.want)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		valid   bool
		wantMsg string
	}{
		{"valid https", "https://api.bing.microsoft.com", true, ""},
		{"valid http", "http://localhost:5000", true, ""},
		{"valid with path", "https://example.com/path/to/page", true, ""},
		{"valid with port", "https://example.com:8080", true, ""},
		{"empty string", "", false, "URL is required"},
		{"javascript scheme", "javascript:alert(1)", false, "URL must use http:// or https:// scheme"},
		{"ftp scheme", "ftp://example.com", false, "URL must use http:// or https:// scheme"},
		{"redis scheme", "redis://localhost:6379", false, "URL must use http:// or https:// scheme"},
		{"no scheme", "example.com", false, "URL must use http:// or https:// scheme"},
		{"uppercase scheme", "HTTPS://example.com", true, ""},
		{"scheme only", "https://", false, "URL must have a valid host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := ValidateURL(tt.url)
			if valid != tt.valid {
				t.Errorf("ValidateURL(%q) valid = %v, want %v", tt.url, valid, tt.valid)
			}
			if !valid && msg != tt.wantMsg {
				t.Errorf("ValidateURL(%q) msg = %q, want %q", tt.url, msg, tt.wantMsg)
			}
		})
	}
}

func TestStruct(t *testing.T) {
	type request struct {
		Action string `validate:"required"`
		User   string `validate:"required"`
	}

	tests := []struct {
		name    string
		input   request
		wantErr bool
	}{
		{"all fields set", request{Action: "q", User: "u"}, false},
		{"missing action", request{User: "u"}, true},
		{"missing user", request{Action: "q"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct(%+v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
