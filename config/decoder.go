package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/zintix-labs/prnglab/errs"
	"gopkg.in/yaml.v3"
)

// decodeYAML 嚴格檢查：多寫/拼錯欄位就報錯
func decodeYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.InvalidArgumentf("config: empty yaml document")
		}
		return errs.WrapCode(err, errs.CodeInvalidArgument, "config: decode yaml failed")
	}
	return nil
}

// decodeJSON 與 decodeYAML 相同的嚴格規則，並拒絕尾隨資料。
func decodeJSON(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return errs.WrapCode(err, errs.CodeInvalidArgument, "config: decode json failed")
	}
	if dec.More() {
		return errs.InvalidArgumentf("config: trailing data after json document")
	}
	return nil
}
