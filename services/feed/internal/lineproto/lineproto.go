// Package lineproto decodes the readings line protocol: one frame per line,
// fields separated by spaces and/or commas, each field K=V with K one of
// T, H, S, P (case-insensitive) and V a plain decimal number or "nan".
// Missing keys are NaN; a duplicate key takes the last value.
package lineproto

import (
	"math"

	"panelcode-go/errcode"
	"panelcode-go/types"
	"panelcode-go/x/strconvx"
)

func isSep(b byte) bool { return b == ' ' || b == '\t' || b == ',' }

// Parse decodes one frame. A frame with no fields yields an all-NaN cycle.
// On any malformed field the whole frame is rejected with an errcode.Code.
func Parse(line []byte) (types.Readings, error) {
	r := types.Undefined()
	i := 0
	for i < len(line) {
		if isSep(line[i]) {
			i++
			continue
		}
		j := i
		for j < len(line) && !isSep(line[j]) {
			j++
		}
		if err := applyField(&r, line[i:j]); err != nil {
			return types.Undefined(), err
		}
		i = j
	}
	return r, nil
}

func applyField(r *types.Readings, f []byte) error {
	eq := -1
	for k := 0; k < len(f); k++ {
		if f[k] == '=' {
			eq = k
			break
		}
	}
	if eq < 0 {
		return errcode.BadField
	}
	if eq != 1 {
		return errcode.UnknownKey
	}
	v, err := parseValue(f[2:])
	if err != nil {
		return err
	}
	switch f[0] | 0x20 { // ASCII lower
	case 't':
		r.Temp = v
	case 'h':
		r.Humid = v
	case 's':
		r.Soil = v
	case 'p':
		r.Pump = v
	default:
		return errcode.UnknownKey
	}
	return nil
}

func parseValue(v []byte) (float32, error) {
	if isNaNWord(v) {
		return float32(math.NaN()), nil
	}
	f, err := strconvx.ParseFloat(string(v), 32)
	if err != nil {
		return 0, errcode.BadNumber
	}
	return float32(f), nil
}

func isNaNWord(v []byte) bool {
	return len(v) == 3 &&
		v[0]|0x20 == 'n' && v[1]|0x20 == 'a' && v[2]|0x20 == 'n'
}
