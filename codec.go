package fluri

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/golang/protobuf/proto"
	"github.com/mitchellh/mapstructure"
	"github.com/vmihailenco/msgpack"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v2"
)

// formatOf returns the canonical name of the format, which may be given as a
// file name extension.
func formatOf(format string) string {
	switch f := strings.ToLower(strings.TrimPrefix(format, ".")); f {
	case "yml":
		return "yaml"
	case "pb":
		return "protobuf"
	default:
		return f
	}
}

// formatOfFile returns the canonical format of the file name.
func formatOfFile(filename string) string {
	return formatOf(filepath.Ext(filename))
}

// MarshalRecord encodes the r in the format. The supported formats are
// "json", "yaml" ("yml"), "toml", "msgpack" and "protobuf" ("pb"). A protobuf
// record is a `google.protobuf.Struct` keyed like the JSON one.
func MarshalRecord(format string, r Record) ([]byte, error) {
	switch formatOf(format) {
	case "json":
		return json.Marshal(r)
	case "yaml":
		return yaml.Marshal(r)
	case "toml":
		buf := bytes.Buffer{}
		if err := toml.NewEncoder(&buf).Encode(r); err != nil {
			return nil, err
		}

		return buf.Bytes(), nil
	case "msgpack":
		return msgpack.Marshal(r)
	case "protobuf":
		m, err := recordMap(r)
		if err != nil {
			return nil, err
		}

		s, err := structpb.NewStruct(m)
		if err != nil {
			return nil, err
		}

		return proto.Marshal(s)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// UnmarshalRecord decodes the b in the format into a `Record`. See the
// `MarshalRecord()` for the supported formats.
func UnmarshalRecord(format string, b []byte) (Record, error) {
	r := Record{}

	var err error
	switch formatOf(format) {
	case "json":
		err = json.Unmarshal(b, &r)
	case "yaml":
		err = yaml.Unmarshal(b, &r)
	case "toml":
		err = toml.Unmarshal(b, &r)
	case "msgpack":
		err = msgpack.Unmarshal(b, &r)
	case "protobuf":
		s := &structpb.Struct{}
		if err = proto.Unmarshal(b, s); err == nil {
			err = decode(s.AsMap(), &r)
		}
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return r, err
}

// recordMap returns the r as a generic map keyed like its JSON form.
func recordMap(r Record) (map[string]interface{}, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}

	m := map[string]interface{}{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}

	return m, nil
}

// decodeMap decodes the b in the format into a generic map. Besides the
// formats of the `MarshalRecord()`, "ini" is supported: each section becomes
// a nested map and the keys of the default section are kept at the top level.
func decodeMap(format string, b []byte) (map[string]interface{}, error) {
	m := map[string]interface{}{}

	var err error
	switch formatOf(format) {
	case "json":
		err = json.Unmarshal(b, &m)
	case "yaml":
		err = yaml.Unmarshal(b, &m)
	case "toml":
		err = toml.Unmarshal(b, &m)
	case "msgpack":
		err = msgpack.Unmarshal(b, &m)
	case "ini":
		var f *ini.File
		if f, err = ini.Load(b); err != nil {
			break
		}

		for _, s := range f.Sections() {
			kh := s.KeysHash()
			if s.Name() == ini.DEFAULT_SECTION {
				for k, v := range kh {
					m[k] = v
				}

				continue
			}

			sm := make(map[string]interface{}, len(kh))
			for k, v := range kh {
				sm[k] = v
			}

			m[s.Name()] = sm
		}
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return m, err
}

// decode decodes the input, which is usually the result of the `decodeMap()`,
// into the output.
func decode(input, output interface{}) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToQueryFieldsHookFunc(),
			stringToLoggerLevelHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}

	return d.Decode(input)
}

// queryFieldsType is the reflected type of the `[]QueryField`.
var queryFieldsType = reflect.TypeOf([]QueryField{})

// stringToQueryFieldsHookFunc returns a decode hook that decodes strings in
// the form of "a=1&b=2" into the `[]QueryField`.
func stringToQueryFieldsHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		from reflect.Type,
		to reflect.Type,
		data interface{},
	) (interface{}, error) {
		if from.Kind() != reflect.String || to != queryFieldsType {
			return data, nil
		}

		return ParseQueryFields(data.(string)), nil
	}
}

// ParseQueryFields parses the s in the form of "a=1&b=2" into query fields.
// Empty pieces are skipped, a piece without "=" is a name with an empty value
// and a repeated name overwrites the earlier value in place.
func ParseQueryFields(s string) []QueryField {
	u := &HTTPURL{}
	for _, f := range strings.Split(s, "&") {
		if f == "" {
			continue
		}

		name, value, _ := strings.Cut(f, "=")
		u.putQueryField(name, value)
	}

	return u.queryFields
}
