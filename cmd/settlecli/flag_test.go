package main

import (
	"flag"
	"testing"

	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/settletest/assert"
)

func TestTimeFlag(t *testing.T) {
	cases := map[string]struct {
		args    []string
		want    settle.UnixTime
		wantErr bool
	}{
		"unix seconds": {
			args: []string{"-t", "1700000301"},
			want: 1700000301,
		},
		"rfc3339": {
			args: []string{"-t", "2023-11-14T22:18:21Z"},
			want: 1700000301,
		},
		"not set": {
			args: nil,
			want: 0,
		},
		"invalid": {
			args:    []string{"-t", "tomorrow"},
			wantErr: true,
		},
		"before epoch": {
			args:    []string{"-t", "-5"},
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			fl := flag.NewFlagSet("", flag.ContinueOnError)
			fl.SetOutput(nopWriter{})
			got := flTime(fl, "t", "", "")
			err := fl.Parse(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatal("want an error")
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestCoinsFlag(t *testing.T) {
	fl := flag.NewFlagSet("", flag.ContinueOnError)
	fl.SetOutput(nopWriter{})
	got := flCoins(fl, "funds", "")
	if err := fl.Parse([]string{"-funds", "100usd, 5eur", "-funds", "1btc"}); err != nil {
		t.Fatalf("cannot parse: %s", err)
	}
	assert.Equal(t, "100usd, 5eur, 1btc", got.String())

	fl = flag.NewFlagSet("", flag.ContinueOnError)
	fl.SetOutput(nopWriter{})
	flCoins(fl, "funds", "")
	if err := fl.Parse([]string{"-funds", "usd"}); err == nil {
		t.Fatal("want an error for an invalid coin")
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
