package forex

import "testing"

func TestParsePair(t *testing.T) {
	tests := []struct {
		in      string
		want    Pair
		wantErr bool
	}{
		{in: "USD/EUR", want: Pair{Base: "USD", Quote: "EUR"}},
		{in: "usd/jpy", want: Pair{Base: "USD", Quote: "JPY"}},
		{in: " usd / eur ", want: Pair{Base: "USD", Quote: "EUR"}},
		{in: "USDEUR", wantErr: true},
		{in: "USD/", wantErr: true},
		{in: "/EUR", wantErr: true},
		{in: "USD/EUR/JPY", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePair(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePair(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePair(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePair(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPairString(t *testing.T) {
	p := MustParsePair("USD/EUR")
	if p.String() != "USD/EUR" {
		t.Errorf("String() = %q, want USD/EUR", p.String())
	}
}

func TestMustParsePairPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParsePair did not panic on bad input")
		}
	}()
	MustParsePair("not-a-pair")
}
