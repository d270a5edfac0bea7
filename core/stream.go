package core

import (
	"fmt"

	"github.com/tsawler/pdfprobe/internal/filters"
)

// filterStep pairs one filter name with the decode parameters that
// belong to it.
type filterStep struct {
	name  string
	parms Dict
}

// Decode applies the Filter chain declared in the stream dictionary to
// the stream's raw data. Supported filters are FlateDecode,
// ASCIIHexDecode, ASCII85Decode, RunLengthDecode, and CCITTFaxDecode.
// DCTDecode and JPXDecode payloads pass through untouched since they
// are self-contained image formats.
func Decode(s *Stream) ([]byte, error) {
	chain, err := filterChain(s.Dict)
	if err != nil {
		return nil, err
	}
	data := s.Data
	for i, step := range chain {
		data, err = applyFilter(step.name, data, step.parms)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s): %w", i, step.name, err)
		}
	}
	return data, nil
}

// filterChain normalizes the Filter and DecodeParms entries into an
// ordered list of steps. Filter may be a single name or an array of
// names; DecodeParms mirrors that shape, and a single parameter
// dictionary applies to every step of an array.
func filterChain(dict Dict) ([]filterStep, error) {
	filterObj := dict.Get("Filter")
	if filterObj == nil {
		return nil, nil
	}
	parmsObj := dict.Get("DecodeParms")

	switch f := filterObj.(type) {
	case Name:
		return []filterStep{{name: string(f), parms: parmsDict(parmsObj)}}, nil
	case Array:
		chain := make([]filterStep, 0, len(f))
		parmsArray, _ := parmsObj.(Array)
		for i, entry := range f {
			name, ok := entry.(Name)
			if !ok {
				return nil, fmt.Errorf("filter %d is not a name: %T", i, entry)
			}
			step := filterStep{name: string(name)}
			if parmsArray != nil {
				if i < len(parmsArray) {
					step.parms = parmsDict(parmsArray[i])
				}
			} else {
				step.parms = parmsDict(parmsObj)
			}
			chain = append(chain, step)
		}
		return chain, nil
	}
	return nil, fmt.Errorf("invalid Filter type: %T", filterObj)
}

// applyFilter runs one decompression filter over data. Filter names
// may appear in full or abbreviated form.
func applyFilter(name string, data []byte, parms Dict) ([]byte, error) {
	switch name {
	case "FlateDecode", "Fl":
		return filters.FlateDecode(data, liftParams(parms))
	case "ASCIIHexDecode", "AHx":
		return filters.ASCIIHexDecode(data)
	case "ASCII85Decode", "A85":
		return filters.ASCII85Decode(data)
	case "RunLengthDecode", "RL":
		return filters.RunLengthDecode(data)
	case "CCITTFaxDecode", "CCF":
		return filters.CCITTFaxDecode(data, liftParams(parms))
	case "DCTDecode", "DCT", "JPXDecode":
		return data, nil
	case "LZWDecode", "LZW", "JBIG2Decode", "Crypt":
		return nil, fmt.Errorf("filter not supported")
	}
	return nil, fmt.Errorf("unknown filter")
}

// parmsDict narrows a DecodeParms entry to a dictionary. Null and
// anything that is not a dictionary count as no parameters.
func parmsDict(obj Object) Dict {
	if dict, ok := obj.(Dict); ok {
		return dict
	}
	return nil
}

// liftParams reduces a parameter dictionary to the primitive-valued
// map the filters package consumes.
func liftParams(dict Dict) filters.Params {
	if dict == nil {
		return nil
	}
	params := make(filters.Params, len(dict))
	for k, v := range dict {
		switch obj := v.(type) {
		case Int:
			params[k] = int(obj)
		case Real:
			params[k] = float64(obj)
		case Bool:
			params[k] = bool(obj)
		case String:
			params[k] = string(obj)
		case Name:
			params[k] = string(obj)
		default:
			params[k] = v
		}
	}
	return params
}
