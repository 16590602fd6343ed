// Package cborenc holds the CBOR modes shared by trace logs and cookie jar
// snapshots, so both formats encode the same way.
package cborenc

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var (
	// EncMode encodes deterministically: canonical map order, definite
	// lengths, nil containers as null and times as RFC 3339 with nanoseconds.
	EncMode = mustEncMode()

	// DecMode accepts duplicate map keys, keeping the last one. Trace files
	// are read best-effort.
	DecMode = mustDecMode(cbor.DupMapKeyQuiet)

	// StrictDecMode rejects duplicate map keys. Snapshots use it.
	StrictDecMode = mustDecMode(cbor.DupMapKeyEnforcedAPF)
)

func mustEncMode() cbor.EncMode {
	em, err := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("cborenc: encoder mode: %v", err))
	}
	return em
}

func mustDecMode(dup cbor.DupMapKeyMode) cbor.DecMode {
	dm, err := cbor.DecOptions{
		DupMapKey:   dup,
		IndefLength: cbor.IndefLengthAllowed,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("cborenc: decoder mode: %v", err))
	}
	return dm
}
