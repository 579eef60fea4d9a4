package cli

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/faizmokh/sugarlog/internal/record"
	"github.com/faizmokh/sugarlog/internal/vision"
)

func TestAddCommandSavesRecord(t *testing.T) {
	app := newTestApp(t)

	out := executeCommand(t, newAddCommand(context.Background(), app),
		"--name", "Desayuno",
		"--before", "90",
		"--after", "150",
		"--foods", "Pan, Huevos,  ",
	)
	assertContains(t, out, "Desayuno | before 90 after 150 (+60) [High] | Pan, Huevos")
	assertContains(t, out, "Date source: current time")

	require.Equal(t, 1, app.Store.Len())
	saved := app.Store.All()[0]
	assert.Equal(t, []string{"Pan", "Huevos"}, saved.Foods)
	assert.Equal(t, record.DateSourceCurrentTime, saved.DateSource)
}

func TestAddCommandRejectsMissingFoods(t *testing.T) {
	app := newTestApp(t)

	_, err := runCommand(newAddCommand(context.Background(), app), "--name", "Cena", "--before", "100")
	var verr *record.ValidationError
	require.True(t, errors.As(err, &verr), "error = %v", err)
	assert.Equal(t, record.FieldFoods, verr.Field)
	assert.Zero(t, app.Store.Len())
}

func TestAddCommandRejectsOutOfRangeReading(t *testing.T) {
	app := newTestApp(t)

	_, err := runCommand(newAddCommand(context.Background(), app), "--name", "Cena", "--before", "-5", "--foods", "Sopa")
	var verr *record.ValidationError
	require.True(t, errors.As(err, &verr), "error = %v", err)
	assert.Equal(t, record.FieldSugarBefore, verr.Field)
}

func TestAddCommandIdentifiesFoods(t *testing.T) {
	app := newTestApp(t)
	photo := filepath.Join(t.TempDir(), "meal.jpg")

	identifier := &mockIdentifier{}
	identifier.On("Identify", mock.Anything, photo).Return([]string{"Arroz", "Pollo"}, nil).Once()
	app.Identifier = identifier

	out := executeCommand(t, newAddCommand(context.Background(), app),
		"--photo", photo, "--name", "Comida", "--after", "130", "--identify",
	)
	assertContains(t, out, "Comida | after 130 [Normal] | Arroz, Pollo")
	identifier.AssertExpectations(t)

	saved := app.Store.All()[0]
	assert.Equal(t, photo, saved.PhotoPath)
}

func TestAddCommandIdentifyWithoutService(t *testing.T) {
	app := newTestApp(t)

	_, err := runCommand(newAddCommand(context.Background(), app),
		"--photo", "meal.jpg", "--name", "Comida", "--after", "130", "--identify",
	)
	assert.ErrorIs(t, err, vision.ErrNotConfigured)
}

func TestMetaCommandFallsBackToCurrentTime(t *testing.T) {
	app := newTestApp(t)

	out := executeCommand(t, newMetaCommand(app), filepath.Join(t.TempDir(), "missing.jpg"))
	assertContains(t, out, "Source: current time")
	assertContains(t, out, "Date: ")
}
