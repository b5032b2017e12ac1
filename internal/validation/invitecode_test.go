package validation

import "testing"

func TestValidateInviteCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"valid uppercase", "ABCD2345", false},
		{"valid lowercase", "abcd2345", false},
		{"valid with surrounding spaces", "  ABCD2345  ", false},
		{"empty", "", true},
		{"only spaces", "   ", true},
		{"too long", "ABCDEFGHJKLMN", true},
		{"max length ok", "ABCDEFGHJKLM", false},
		{"punctuation rejected", "ABCD-234", true},
		{"unicode rejected", "ABCD23Ä5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInviteCode(tt.code, 12)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInviteCode(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
		})
	}
}
