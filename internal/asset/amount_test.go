package asset

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name    string
		asset   *Asset
		input   string
		wantRaw string
		wantErr bool
	}{
		{name: "one_sol", asset: SOL, input: "1", wantRaw: "1000000000"},
		{name: "fractional_sol", asset: SOL, input: "0.1", wantRaw: "100000000"},
		{name: "one_usdc", asset: USDC, input: "1", wantRaw: "1000000"},
		{name: "usdc_cents", asset: USDC, input: "0.01", wantRaw: "10000"},
		{name: "zero", asset: SOL, input: "0", wantRaw: "0"},
		{name: "negative_rejected", asset: SOL, input: "-1", wantErr: true},
		{name: "too_many_decimals", asset: USDC, input: "0.0000001", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amt, err := ParseString(tt.asset, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseString(%q) expected error, got %s", tt.input, amt)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseString(%q) error: %v", tt.input, err)
			}

			want, _ := new(big.Int).SetString(tt.wantRaw, 10)
			if amt.Raw().Cmp(want) != 0 {
				t.Errorf("Raw = %s, want %s", amt.Raw(), want)
			}

			// Round trip back to decimal
			d := decimal.RequireFromString(tt.input)
			if !amt.ToDecimal().Equal(d) {
				t.Errorf("ToDecimal = %s, want %s", amt.ToDecimal(), d)
			}
		})
	}
}

func TestAmount_SubUnderflow(t *testing.T) {
	a := NewAmountFromUint64(SOL, 100)
	b := NewAmountFromUint64(SOL, 200)

	if _, err := a.Sub(b); err != ErrNegativeResult {
		t.Errorf("Sub underflow error = %v, want ErrNegativeResult", err)
	}
}

func TestAmount_AssetMismatch(t *testing.T) {
	a := NewAmountFromUint64(SOL, 100)
	b := NewAmountFromUint64(USDC, 100)

	if _, err := a.Add(b); err == nil {
		t.Error("Add across assets should fail")
	}
	if a.Equals(b) {
		t.Error("amounts of different assets must not be equal")
	}
}

func TestAmount_ScaleDec(t *testing.T) {
	balance := NewAmountFromUint64(SOL, 10*LamportsPerSOL)

	tenth, err := balance.ScaleDec(decimal.RequireFromString("0.1"))
	if err != nil {
		t.Fatalf("ScaleDec error: %v", err)
	}
	if tenth.Uint64() != LamportsPerSOL {
		t.Errorf("10 SOL * 0.1 = %d lamports, want %d", tenth.Uint64(), uint64(LamportsPerSOL))
	}

	// Truncates, never rounds up
	odd := NewAmountFromUint64(SOL, 3)
	half, _ := odd.ScaleDec(decimal.RequireFromString("0.5"))
	if half.Uint64() != 1 {
		t.Errorf("3 * 0.5 = %d, want 1 (truncated)", half.Uint64())
	}

	if _, err := balance.ScaleDec(decimal.NewFromInt(-1)); err != ErrNegativeAmount {
		t.Errorf("negative factor error = %v, want ErrNegativeAmount", err)
	}
}

func TestAmount_Min(t *testing.T) {
	a := NewAmountFromUint64(SOL, 100)
	b := NewAmountFromUint64(SOL, 200)

	got, err := a.Min(b)
	if err != nil {
		t.Fatalf("Min error: %v", err)
	}
	if !got.Equals(a) {
		t.Errorf("Min = %s, want %s", got, a)
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()

	sol, ok := r.GetBySymbol("SOL")
	if !ok || sol.Mint() != MintSOL {
		t.Fatalf("GetBySymbol(SOL) = %v, %v", sol, ok)
	}

	usdc, ok := r.GetByMint(MintUSDC)
	if !ok || usdc.Symbol() != "USDC" {
		t.Fatalf("GetByMint(USDC mint) = %v, %v", usdc, ok)
	}

	if _, ok := r.GetBySymbol("NOPE"); ok {
		t.Error("unknown symbol should not resolve")
	}

	if r.Count() < 5 {
		t.Errorf("default registry count = %d, want at least the core set", r.Count())
	}
}
