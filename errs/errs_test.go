package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "sentinel",
			err:      ErrInvalidInput,
			expected: "INVALID_INPUT: invalid input",
		},
		{
			name:     "missing field carries name",
			err:      MissingField("videoDetails.title"),
			expected: "MISSING_FIELD: missing field (videoDetails.title)",
		},
		{
			name:     "wrapped cause",
			err:      Wrap(CodeNetwork, "fetch page", errors.New("connection refused")),
			expected: "NETWORK_ERROR: fetch page: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("extract: %w", New(CodeDecipherTimeout, "no callback after 7s"))
	if !errors.Is(err, ErrDecipherTimeout) {
		t.Fatal("wrapped timeout should match ErrDecipherTimeout")
	}
	if errors.Is(err, ErrDecipherCallback) {
		t.Fatal("timeout must not match ErrDecipherCallback")
	}
	if !errors.Is(MissingField("author"), ErrMissingField) {
		t.Fatal("MissingField should match ErrMissingField")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := Wrap(CodeNetwork, "fetch page", cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause should be reachable through Unwrap")
	}
}

func TestErrorUniqueness(t *testing.T) {
	errorList := []error{
		ErrInvalidInput,
		ErrNetwork,
		ErrPlayerResponseNotFound,
		ErrMissingField,
		ErrDecipherAssetNotFound,
		ErrDecipherFunctionNotFound,
		ErrDecipherTimeout,
		ErrDecipherCallback,
		ErrNoPlayableFormats,
	}

	for i, err1 := range errorList {
		for j, err2 := range errorList {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Error %d and %d should not be equal", i, j)
			}
		}
	}
}

func TestError_MarshalJSON(t *testing.T) {
	err := MissingField("channelId")

	data, err2 := json.Marshal(err)
	if err2 != nil {
		t.Fatalf("Failed to marshal error: %v", err2)
	}

	var result map[string]any
	if err2 := json.Unmarshal(data, &result); err2 != nil {
		t.Fatalf("Failed to unmarshal error: %v", err2)
	}
	if code, ok := result["code"].(string); !ok || code != CodeMissingField {
		t.Errorf("Wrong code in JSON: %v", result["code"])
	}
	if d, ok := result["details"].(string); !ok || d != "channelId" {
		t.Errorf("Wrong details in JSON: %v", result["details"])
	}
	if errStr, ok := result["error"].(string); !ok || errStr != err.Error() {
		t.Errorf("Wrong error string in JSON: %v", result["error"])
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		parse   bool
		timeout bool
		network bool
		decode  bool
	}{
		{name: "player response", err: ErrPlayerResponseNotFound, parse: true},
		{name: "missing field", err: MissingField("x"), parse: true},
		{name: "asset", err: ErrDecipherAssetNotFound, parse: true},
		{name: "function", err: ErrDecipherFunctionNotFound, parse: true},
		{name: "timeout", err: ErrDecipherTimeout, timeout: true, decode: true},
		{name: "callback", err: ErrDecipherCallback, decode: true},
		{name: "network", err: ErrNetwork, network: true},
		{name: "plain error", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsParse(tt.err); got != tt.parse {
				t.Errorf("IsParse() = %v, want %v", got, tt.parse)
			}
			if got := IsTimeout(tt.err); got != tt.timeout {
				t.Errorf("IsTimeout() = %v, want %v", got, tt.timeout)
			}
			if got := IsNetwork(tt.err); got != tt.network {
				t.Errorf("IsNetwork() = %v, want %v", got, tt.network)
			}
			if got := IsDecipher(tt.err); got != tt.decode {
				t.Errorf("IsDecipher() = %v, want %v", got, tt.decode)
			}
		})
	}
}
