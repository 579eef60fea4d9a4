package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/faizmokh/sugarlog/internal/record"
	"github.com/faizmokh/sugarlog/internal/schedule"
)

// Container keys, kept compatible with files written by earlier versions.
const (
	keyRecords = "registros"
	keyConfig  = "configuracion"
	keyBands   = "franjas_horarias"
)

type window struct {
	Start string `json:"inicio"`
	End   string `json:"fin"`
}

// container is the decoded persisted document. Unknown keys at the top level
// and inside the configuration object are carried through untouched.
type container struct {
	records     []record.Record
	bands       []schedule.Band
	hasBands    bool
	extra       map[string]json.RawMessage
	configExtra map[string]json.RawMessage
}

func decodeContainer(data []byte) (container, error) {
	var c container
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return c, err
	}

	if value, ok := raw[keyRecords]; ok {
		delete(raw, keyRecords)
		if err := json.Unmarshal(value, &c.records); err != nil {
			return c, fmt.Errorf("decode %s: %w", keyRecords, err)
		}
	}

	if value, ok := raw[keyConfig]; ok {
		delete(raw, keyConfig)
		var cfg map[string]json.RawMessage
		if err := json.Unmarshal(value, &cfg); err != nil {
			return c, fmt.Errorf("decode %s: %w", keyConfig, err)
		}
		if bandsRaw, ok := cfg[keyBands]; ok {
			delete(cfg, keyBands)
			var windows map[string]window
			if err := json.Unmarshal(bandsRaw, &windows); err != nil {
				return c, fmt.Errorf("decode %s: %w", keyBands, err)
			}
			c.hasBands = true
			for name, w := range windows {
				c.bands = append(c.bands, schedule.Band{Name: name, Start: w.Start, End: w.End})
			}
			sortBands(c.bands)
		}
		if len(cfg) > 0 {
			c.configExtra = cfg
		}
	}

	if len(raw) > 0 {
		c.extra = raw
	}
	return c, nil
}

// bandSet encodes bands as an object keyed by name, in slice order.
type bandSet []schedule.Band

func (s bandSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(b.Name)
		if err != nil {
			return nil, err
		}
		w, err := json.Marshal(window{Start: b.Start, End: b.End})
		if err != nil {
			return nil, fmt.Errorf("encode band %s: %w", b.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(w)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeContainer(c container) ([]byte, error) {
	cfg := make(map[string]any, len(c.configExtra)+1)
	for k, v := range c.configExtra {
		cfg[k] = v
	}
	cfg[keyBands] = bandSet(c.bands)

	records := c.records
	if records == nil {
		records = []record.Record{}
	}

	doc := make(map[string]any, len(c.extra)+2)
	for k, v := range c.extra {
		doc[k] = v
	}
	doc[keyRecords] = records
	doc[keyConfig] = cfg

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
