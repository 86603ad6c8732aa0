package auth

import (
	"testing"
)

func TestLoadECDSAPrivateKey(t *testing.T) {
	tests := []struct {
		name    string
		keyPath string
		wantErr bool
	}{
		{
			name:    "Valid private key file",
			keyPath: validKeyFile,
			wantErr: false,
		},
		{
			name:    "Invalid PEM content",
			keyPath: invalidKeyFile,
			wantErr: true,
		},
		{
			name:    "Nonexistent file",
			keyPath: "does_not_exist.pem",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadECDSAPrivateKey(tt.keyPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadECDSAPrivateKey() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got == nil {
				t.Error("LoadECDSAPrivateKey() returned a nil key without error")
			}
		})
	}
}
