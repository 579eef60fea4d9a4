package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faizmokh/sugarlog/internal/record"
	"github.com/faizmokh/sugarlog/internal/schedule"
)

func TestScheduleListShowsDefaults(t *testing.T) {
	app := newTestApp(t)

	out := executeCommand(t, newScheduleCommand(context.Background(), app), "list")
	assertContains(t, out, "desayuno     06:00-10:00")
	assertContains(t, out, "cena         19:01-23:59")
}

func TestScheduleSetWarnsOnOverlap(t *testing.T) {
	app := newTestApp(t)

	out := executeCommand(t, newScheduleCommand(context.Background(), app), "set", "Brunch", "09:30", "11:00")
	assertContains(t, out, "brunch       09:30-11:00")
	assertContains(t, out, `warning: "desayuno" (06:00-10:00) overlaps "brunch" (09:30-11:00)`)

	found := false
	for _, b := range app.Store.Bands() {
		if b.Name == "brunch" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScheduleSetRejectsInvalidBand(t *testing.T) {
	app := newTestApp(t)

	_, err := runCommand(newScheduleCommand(context.Background(), app), "set", "late", "23:00", "22:00")
	var verr *record.ValidationError
	require.True(t, errors.As(err, &verr), "error = %v", err)
	assert.Equal(t, "end", verr.Field)
	assert.Equal(t, schedule.Defaults(), app.Store.Bands())
}

func TestScheduleRemoveAndReset(t *testing.T) {
	app := newTestApp(t)

	out := executeCommand(t, newScheduleCommand(context.Background(), app), "rm", "MERIENDA")
	assertNotContains(t, out, "merienda")
	assert.Len(t, app.Store.Bands(), 4)

	_, err := runCommand(newScheduleCommand(context.Background(), app), "rm", "merienda")
	assert.ErrorContains(t, err, `band "merienda" not found`)

	out = executeCommand(t, newScheduleCommand(context.Background(), app), "reset")
	assertContains(t, out, "merienda")
	assert.Equal(t, schedule.Defaults(), app.Store.Bands())
}
