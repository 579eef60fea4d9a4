package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// On-disk keys. They keep the names written by earlier versions of the app.
const (
	keyDate        = "fecha"
	keyTime        = "hora"
	keyName        = "nombre_comida"
	keyLegacyName  = "tipo_comida"
	keySugarBefore = "azucar_antes"
	keySugarAfter  = "azucar_despues"
	keyLegacySugar = "nivel_azucar"
	keyFoods       = "alimentos"
	keyPhotoPath   = "foto_path"
	keyTimestamp   = "timestamp"
	keyDateSource  = "fuente_fecha"
)

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON decodes a stored record. Keys it does not know are kept in
// Extra; missing optional keys decode to their zero values.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var (
		out       Record
		timestamp string
		source    string
		photo     *string
	)
	fields := []struct {
		key string
		dst any
	}{
		{keyDate, &out.Date},
		{keyTime, &out.Time},
		{keyName, &out.Name},
		{keySugarBefore, &out.SugarBefore},
		{keySugarAfter, &out.SugarAfter},
		{keyLegacySugar, &out.LegacySugarLevel},
		{keyFoods, &out.Foods},
		{keyPhotoPath, &photo},
		{keyTimestamp, &timestamp},
		{keyDateSource, &source},
	}
	for _, f := range fields {
		value, ok := raw[f.key]
		if !ok {
			continue
		}
		delete(raw, f.key)
		if isNull(value) {
			if f.key == keyLegacySugar {
				out.legacyNull = true
			}
			continue
		}
		if err := json.Unmarshal(value, f.dst); err != nil {
			return fmt.Errorf("decode %s: %w", f.key, err)
		}
	}

	if out.Name == "" {
		if legacy, ok := raw[keyLegacyName]; ok && !isNull(legacy) {
			if err := json.Unmarshal(legacy, &out.Name); err != nil {
				return fmt.Errorf("decode %s: %w", keyLegacyName, err)
			}
		}
	}
	if photo != nil {
		out.PhotoPath = *photo
	}
	out.DateSource = ParseDateSource(source)
	out.Timestamp, out.timestampLayout = parseTimestamp(timestamp, out.Date, out.Time)
	if len(raw) > 0 {
		out.Extra = raw
	}

	*r = out
	return nil
}

// MarshalJSON writes the record with known keys first, in a fixed order,
// followed by preserved unknown keys sorted by name.
func (r Record) MarshalJSON() ([]byte, error) {
	var photo *string
	if r.PhotoPath != "" {
		photo = &r.PhotoPath
	}
	foods := r.Foods
	if foods == nil {
		foods = []string{}
	}

	type pair struct {
		key   string
		value any
	}
	pairs := []pair{
		{keyDate, r.Date},
		{keyTime, r.Time},
		{keyName, r.Name},
		{keySugarBefore, r.SugarBefore},
		{keySugarAfter, r.SugarAfter},
	}
	if r.LegacySugarLevel != nil || r.legacyNull {
		pairs = append(pairs, pair{keyLegacySugar, r.LegacySugarLevel})
	}
	pairs = append(pairs,
		pair{keyFoods, foods},
		pair{keyPhotoPath, photo},
	)
	if !r.Timestamp.IsZero() {
		layout := time.RFC3339Nano
		if r.timestampLayout != "" {
			layout = r.timestampLayout
		}
		pairs = append(pairs, pair{keyTimestamp, r.Timestamp.Format(layout)})
	}
	if r.DateSource != DateSourceUnspecified {
		pairs = append(pairs, pair{keyDateSource, r.DateSource.String()})
	}

	extraKeys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		if isKnownKey(k) {
			continue
		}
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writePair(&buf, p.key, p.value); err != nil {
			return nil, err
		}
	}
	for _, k := range extraKeys {
		buf.WriteByte(',')
		if err := writePair(&buf, k, r.Extra[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writePair(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

func isKnownKey(key string) bool {
	switch key {
	case keyDate, keyTime, keyName, keySugarBefore, keySugarAfter, keyLegacySugar,
		keyFoods, keyPhotoPath, keyTimestamp, keyDateSource:
		return true
	}
	return false
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

// parseTimestamp accepts RFC 3339 and the naive ISO form written by earlier
// versions (read as local time). For naive values it also returns the layout
// that writes the value back unchanged. When neither parses, the instant is
// rebuilt from the stored date and time.
func parseTimestamp(value, date, clock string) (time.Time, string) {
	value = strings.TrimSpace(value)
	if value != "" {
		if t, err := time.ParseInLocation(time.RFC3339Nano, value, time.Local); err == nil {
			return t, ""
		}
		for _, layout := range naiveLayouts {
			if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
				return t, naiveLayoutOf(layout, value)
			}
		}
	}
	if t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, time.Local); err == nil {
		return t, ""
	}
	return time.Time{}, ""
}

// naiveLayoutOf returns the layout that formats a time the way value was
// written, keeping its separator and number of fractional digits.
func naiveLayoutOf(matched, value string) string {
	layout := strings.TrimSuffix(matched, ".999999999")
	if dot := strings.LastIndexByte(value, '.'); dot >= 0 {
		layout += "." + strings.Repeat("0", len(value)-dot-1)
	}
	return layout
}
