package main

import (
	"encoding/json"
	"io"
	"time"

	"github.com/theconstruct/settle/cmd/settled/client"
	"github.com/theconstruct/settle/errors"
)

// dial returns a client talking to the node at given address. Tests replace
// it with an in-process connection.
var dial = func(nodeAddr string) *client.Client {
	return client.NewClient(client.NewHTTPConnection(nodeAddr))
}

// now and sleep are the local clock.
var (
	now   = time.Now
	sleep = time.Sleep
)

// writeJSON prints the value as indented JSON followed by a new line.
func writeJSON(output io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	raw = append(raw, '\n')
	if _, err := output.Write(raw); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return nil
}
