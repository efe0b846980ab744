// Package encoding offers (de)serialization APIs for facto objects
// (factorization results and proof chains). It uses CBOR and is schema-less;
// every stream carries a version header that is checked on read.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	facto "github.com/corrodedHash/facto"
	"github.com/corrodedHash/facto/logger"
)

var errVersionMismatch = errors.New("trying to deserialize an object serialized with an incompatible facto version")

type header struct {
	Version string `cbor:"version"`
}

// Write serializes object into a file
func Write(path string, from interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Serialize(f, from)
}

// Read reads and deserializes input into object
// provided interface must be a pointer
func Read(path string, into interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Deserialize(f, into)
}

// Serialize writes a version header followed by the CBOR encoding of from.
// *facto.Result and *primality.ProofChain are the intended payloads; any
// CBOR-encodable value works.
func Serialize(w io.Writer, from interface{}) error {
	enc := cbor.NewEncoder(w)
	if err := enc.Encode(header{Version: facto.Version.String()}); err != nil {
		return err
	}
	return enc.Encode(from)
}

// Deserialize checks the stream's version header and decodes the payload
// into the provided pointer. A different major version is an error; a minor
// or patch mismatch only logs a warning, there are no guarantees on
// compatibility.
func Deserialize(r io.Reader, into interface{}) error {
	dec := cbor.NewDecoder(r)
	var h header
	if err := dec.Decode(&h); err != nil {
		return err
	}
	objectVersion, err := semver.Parse(h.Version)
	if err != nil {
		return fmt.Errorf("when parsing object version: %w", err)
	}
	if objectVersion.Major != facto.Version.Major {
		return errVersionMismatch
	}
	if facto.Version.Compare(objectVersion) != 0 {
		log := logger.Logger()
		log.Warn().Str("binary", facto.Version.String()).Str("object", objectVersion.String()).Msg("facto version (binary) mismatch with serialized object")
	}
	return dec.Decode(into)
}
