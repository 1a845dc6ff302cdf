package cmd

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineToLines(t *testing.T) {
	tests := []struct {
		sel     string
		total   int
		want    []int
		wantErr bool
	}{
		{"3", 10, []int{3}, false},
		{"1,3,4", 10, []int{1, 3, 4}, false},
		{"3-", 10, []int{3, 4, 5, 6, 7, 8, 9, 10}, false},
		{"-5", 10, []int{1, 2, 3, 4, 5}, false},
		{"3-5", 10, []int{3, 4, 5}, false},
		{"0", 10, nil, true},
		{"11", 10, nil, true},
		{"5-3", 10, nil, true},
		{"1-2-3", 10, nil, true},
		{"x", 10, nil, true},
		{"1,,2", 10, nil, true},
		{"-", 3, []int{1, 2, 3}, false},
		{"9-", 10, []int{9, 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			got, err := lineToLines(tt.sel, tt.total)
			if (err != nil) != tt.wantErr {
				t.Errorf("lineToLines() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("lineToLines() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectLines(t *testing.T) {
	body := "{b}Le Pont Mirabeau{/b}\n\nSous le pont Mirabeau coule la Seine\nEt nos amours"
	got, err := selectLines(body, "3-4,1")
	if err != nil {
		t.Fatal(err)
	}
	want := "Sous le pont Mirabeau coule la Seine\nEt nos amours\n{b}Le Pont Mirabeau{/b}"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("selectLines() mismatch (-want +got):\n%s", diff)
	}
}
