package usecase

import (
	"errors"
	"testing"
)

func TestNormalizeSeason(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw, fallback, want string
		wantErr             bool
	}{
		{raw: "2023", want: "2023"},
		{raw: " ", fallback: "2022", want: "2022"},
		{raw: "", want: DefaultSeason},
		{raw: "2013", wantErr: true},
		{raw: "20x4", wantErr: true},
		{raw: "24", wantErr: true},
	}
	for _, tc := range cases {
		got, err := NormalizeSeason(tc.raw, tc.fallback)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("NormalizeSeason(%q): expected ErrInvalidInput, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("NormalizeSeason(%q, %q)=%q, %v; want %q", tc.raw, tc.fallback, got, err, tc.want)
		}
	}

	if got := SeasonLabel("2024"); got != "2024-2025" {
		t.Fatalf("SeasonLabel=%q", got)
	}
}
