// Package metadata resolves when a photo was taken.
package metadata

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"go.uber.org/zap"

	"github.com/faizmokh/sugarlog/internal/record"
)

// captureLayout is the EXIF date/time pattern YYYY:MM:DD HH:MM:SS.
const captureLayout = "2006:01:02 15:04:05"

// captureFields lists the EXIF tags consulted, highest priority first.
var captureFields = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// Resolution is the date/time attached to a new record and where it came from.
type Resolution struct {
	Date      string
	Time      string
	Timestamp time.Time
	Source    record.DateSource
}

// Resolver reads capture timestamps from image metadata.
type Resolver struct {
	now    func() time.Time
	logger *zap.Logger
}

// NewResolver returns a Resolver that falls back to the wall clock.
func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{now: time.Now, logger: logger}
}

// Resolve never fails: when the image has no usable capture time the result
// carries the current time and record.DateSourceCurrentTime.
func (r *Resolver) Resolve(imagePath string) Resolution {
	values, err := r.readCaptureFields(imagePath)
	if err != nil {
		r.logger.Debug("metadata unavailable, using current time",
			zap.String("path", imagePath),
			zap.Error(err),
		)
		return r.fallback()
	}

	if res, ok := fromFields(values); ok {
		return res
	}
	r.logger.Debug("no parseable capture time, using current time", zap.String("path", imagePath))
	return r.fallback()
}

// Now returns the current time tagged record.DateSourceCurrentTime, for
// records created without a photo.
func (r *Resolver) Now() Resolution {
	return r.fallback()
}

func (r *Resolver) fallback() Resolution {
	return newResolution(r.now(), record.DateSourceCurrentTime)
}

func newResolution(t time.Time, source record.DateSource) Resolution {
	return Resolution{
		Date:      t.Format(record.DateLayout),
		Time:      t.Format(record.TimeLayout),
		Timestamp: t,
		Source:    source,
	}
}

// fromFields picks the first field, in priority order, that parses.
func fromFields(values map[exif.FieldName]string) (Resolution, bool) {
	for _, field := range captureFields {
		raw, ok := values[field]
		if !ok {
			continue
		}
		t, err := time.ParseInLocation(captureLayout, cleanValue(raw), time.Local)
		if err != nil {
			continue
		}
		return newResolution(t, record.DateSourceMetadata), true
	}
	return Resolution{}, false
}

// readCaptureFields returns the capture tags present in the image. A broken
// GPS or interoperability sub-IFD does not hide the date tags that decoded.
func (r *Resolver) readCaptureFields(imagePath string) (map[exif.FieldName]string, error) {
	if imagePath == "" {
		return nil, errors.New("no image")
	}
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		if x == nil || exif.IsCriticalError(err) {
			return nil, fmt.Errorf("decode exif: %w", err)
		}
		r.logger.Debug("partial exif data", zap.String("path", imagePath), zap.Error(err))
	}

	values := make(map[exif.FieldName]string, len(captureFields))
	for _, field := range captureFields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		s, err := tag.StringVal()
		if err != nil {
			continue
		}
		values[field] = s
	}
	return values, nil
}

func cleanValue(raw string) string {
	return strings.TrimSpace(strings.TrimRight(raw, "\x00"))
}
