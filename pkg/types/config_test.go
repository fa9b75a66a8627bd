package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty DBPath returns ErrDBPathEmpty",
			config:  Config{DBPath: "", ResetOnStart: true},
			wantErr: ErrDBPathEmpty,
		},
		{
			name:    "seeding without reset returns ErrSeedWithoutReset",
			config:  Config{DBPath: "/tmp/app.db", SeedSampleData: true},
			wantErr: ErrSeedWithoutReset,
		},
		{
			name:    "reset and seed",
			config:  Config{DBPath: "/tmp/app.db", ResetOnStart: true, SeedSampleData: true},
			wantErr: nil,
		},
		{
			name:    "keep existing rows",
			config:  Config{DBPath: "/tmp/app.db"},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
