package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/gogo/protobuf/proto"
	"github.com/theconstruct/settle/errors"
)

// Example is written out as <Filename>.json and <Filename>.bin.
// Filename should have no path and no extension.
type Example struct {
	Filename string
	Obj      proto.Message
}

// TestGenCmd writes the JSON and protobuf encodings of all examples into
// the directory given as the first argument, or testdata if none is given.
// Clients use these files to test their codecs.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}

	for _, ex := range examples {
		js, err := json.MarshalIndent(ex.Obj, "", "  ")
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidModel, "%s: %s", ex.Filename, err)
		}
		if err := write(outdir, ex.Filename+".json", js); err != nil {
			return err
		}

		pb, err := proto.Marshal(ex.Obj)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidModel, "%s: %s", ex.Filename, err)
		}
		if err := write(outdir, ex.Filename+".bin", pb); err != nil {
			return err
		}
	}
	return nil
}

func write(dir, name string, data []byte) error {
	if err := ioutil.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
