package crypto

import (
	"encoding/hex"
	"testing"
)

func TestSHA256(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "empty input",
			input: []byte{},
			want:  "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:  "hello",
			input: []byte("hello"),
			want:  "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SHA256(tt.input)
			if hex.EncodeToString(got[:]) != tt.want {
				t.Errorf("SHA256(%q) = %x, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestDoubleSHA256(t *testing.T) {
	got := DoubleSHA256([]byte("hello"))
	want := "9595c9df90075148eb06860365df33584b75bff782a510c6cd4883a419833d50"
	if hex.EncodeToString(got[:]) != want {
		t.Errorf("DoubleSHA256(hello) = %x, want %s", got, want)
	}

	first := SHA256([]byte("hello"))
	if SHA256(first[:]) != got {
		t.Error("DoubleSHA256 should equal SHA256 applied twice")
	}
}

func TestHash160(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "b472a266d0bd89c13706a4132ccfb16f7c3b9fcb",
		},
		{
			// Fingerprint source of the BIP-32 test vector 1 master key.
			name:  "bip32 vector 1 master pubkey",
			input: "0339a36013301597daef41fbe593a02cc513d0b55527ec2df1050e2e8ff49c85c2",
			want:  "3442193e1bb70916e914552172cd4e2dbc9df811",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := hex.DecodeString(tt.input)
			if err != nil {
				t.Fatalf("bad hex: %v", err)
			}
			got := Hash160(in)
			if len(got) != Hash160Size {
				t.Fatalf("Hash160() length = %d, want %d", len(got), Hash160Size)
			}
			if hex.EncodeToString(got) != tt.want {
				t.Errorf("Hash160() = %x, want %s", got, tt.want)
			}
		})
	}
}

func TestHMACSHA512(t *testing.T) {
	// RFC 4231 test case 2.
	got := HMACSHA512([]byte("Jefe"), []byte("what do ya want for nothing?"))
	want := "164b7a7bfcf819e2e395fbe73b56e0a387bd64222e831fd610270cd7ea250554" +
		"9758bf75c05a994a6d034f65f8f0e6fdcaeab1a34d4a6b4b636e070a38bce737"
	if hex.EncodeToString(got) != want {
		t.Errorf("HMACSHA512() = %x, want %s", got, want)
	}
}
