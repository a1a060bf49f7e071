package ethproofs

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

var (
	typeOfUint64    = reflect.TypeOf(uint64(0))
	unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
)

// decode parses a success body into R. The body is first read as a generic
// JSON value so that required fields (neither pointers nor omitempty) can be
// checked for presence: encoding/json would silently leave them zeroed.
func decode[R Response](data []byte) (R, error) {
	var out R
	expected := out.responseName()

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return out, &ParseError{Expected: expected, Err: err}
	}
	if err := checkRequired(reflect.TypeOf(out), generic, ""); err != nil {
		return out, &ParseError{Expected: expected, Err: err}
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &ParseError{Expected: expected, Err: err}
	}
	return out, nil
}

// decodeFor decodes the success body of req into its response type.
func decodeFor(req Request, data []byte) (Response, error) {
	switch req.(type) {
	case GetBlockDetailsRequest:
		return decode[GetBlockDetailsResponse](data)
	case CreateClusterRequest:
		return decode[CreateClusterResponse](data)
	case ListClustersRequest:
		return decode[ListClustersResponse](data)
	case ListActiveClustersForATeamRequest:
		return decode[ListActiveClustersForATeamResponse](data)
	case CreateSingleMachineRequest:
		return decode[CreateSingleMachineResponse](data)
	case DownloadProofRequest:
		return decode[DownloadProofResponse](data)
	case DownloadProofsRequest:
		return decode[DownloadProofsResponse](data)
	case ListProofsRequest:
		return decode[ListProofsResponse](data)
	case QueuedProofRequest:
		return decode[QueuedProofResponse](data)
	case ProvingProofRequest:
		return decode[ProvingProofResponse](data)
	case ProvedProofRequest:
		return decode[ProvedProofResponse](data)
	case ListCloudInstancesRequest:
		return decode[ListCloudInstancesResponse](data)
	}
	return nil, &ParseError{Expected: "Response", Err: fmt.Errorf("unsupported request %T", req)}
}

// checkRequired walks t alongside the generic value v and reports the first
// required field that is absent or null. Type mismatches are left for
// json.Unmarshal to report.
func checkRequired(t reflect.Type, v any, path string) error {
	if reflect.PointerTo(t).Implements(unmarshalerType) {
		return nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		if v == nil {
			return nil
		}
		return checkRequired(t.Elem(), v, path)

	case reflect.Struct:
		if v == nil {
			return fmt.Errorf("%s: unexpected null", orRoot(path))
		}
		obj, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, omitempty, skip := jsonField(f)
			if skip {
				continue
			}
			val, present := obj[name]
			if (!present || val == nil) && f.Type.Kind() != reflect.Pointer && !omitempty {
				return fmt.Errorf("missing field `%s`", path+name)
			}
			if present && val != nil {
				if err := checkRequired(f.Type, val, path+name+"."); err != nil {
					return err
				}
			}
		}

	case reflect.Slice, reflect.Array:
		if v == nil {
			return fmt.Errorf("%s: unexpected null", orRoot(path))
		}
		items, ok := v.([]any)
		if !ok {
			return nil
		}
		for i, item := range items {
			if err := checkRequired(t.Elem(), item, fmt.Sprintf("%s[%d].", strings.TrimSuffix(path, "."), i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func jsonField(f reflect.StructField) (name string, omitempty, skip bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	for opt := range strings.SplitSeq(opts, ",") {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty, false
}

func orRoot(path string) string {
	if path == "" {
		return "response"
	}
	return strings.TrimSuffix(path, ".")
}
