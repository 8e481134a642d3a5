package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theconstruct/settle"
	"github.com/theconstruct/settle/errors"
	"github.com/theconstruct/settle/settletest/assert"
)

func TestKeygen(t *testing.T) {
	dir, err := ioutil.TempDir("", "settlecli-keys")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)
	keyPath := filepath.Join(dir, "test.key")

	var output bytes.Buffer
	if err := cmdKeygen(nil, &output, []string{"-key", keyPath}); err != nil {
		t.Fatalf("cannot generate key: %s", err)
	}
	generated := settle.Principal(strings.TrimSpace(output.String()))
	assert.Nil(t, generated.Validate())
	if !generated.IsAddress() {
		t.Fatalf("want an address principal, got %q", generated)
	}

	output.Reset()
	if err := cmdKeyaddr(nil, &output, []string{"-key", keyPath}); err != nil {
		t.Fatalf("cannot read key address: %s", err)
	}
	assert.Equal(t, string(generated), strings.TrimSpace(output.String()))

	err = cmdKeygen(nil, &output, []string{"-key", keyPath})
	assert.IsErr(t, errors.ErrDuplicate, err)

	output.Reset()
	if err := cmdKeygen(nil, &output, []string{"-key", keyPath, "-force"}); err != nil {
		t.Fatalf("cannot overwrite key: %s", err)
	}
	if strings.TrimSpace(output.String()) == string(generated) {
		t.Fatal("a new key must be generated")
	}
}
