package application_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/budgetctl/internal/application"
	"github.com/ericfisherdev/budgetctl/internal/domain/model"
)

func TestToaster_ShowAndHide(t *testing.T) {
	toaster := application.NewToaster(time.Hour)

	toaster.Show("Saved", model.SeveritySuccess)
	assert.Equal(t, model.Toast{Open: true, Message: "Saved", Severity: model.SeveritySuccess}, toaster.Current())

	toaster.Hide()
	assert.False(t, toaster.Current().Open)
}

func TestToaster_AutoHides(t *testing.T) {
	toaster := application.NewToaster(20 * time.Millisecond)

	toaster.Error("Could not save")

	assert.Eventually(t, func() bool { return !toaster.Current().Open }, time.Second, 5*time.Millisecond)
}

func TestToaster_StaleTimerDoesNotHideNewerToast(t *testing.T) {
	toaster := application.NewToaster(200 * time.Millisecond)

	toaster.Show("first", model.SeverityInfo)
	time.Sleep(120 * time.Millisecond)
	toaster.Show("second", model.SeverityWarning)
	time.Sleep(120 * time.Millisecond)

	current := toaster.Current()
	assert.True(t, current.Open)
	assert.Equal(t, "second", current.Message)
}

func TestToaster_Subscribe(t *testing.T) {
	toaster := application.NewToaster(time.Hour)

	var mu sync.Mutex
	var got []model.Toast
	unsubscribe := toaster.Subscribe(func(t model.Toast) {
		mu.Lock()
		got = append(got, t)
		mu.Unlock()
	})

	toaster.Success("one")
	toaster.Hide()
	toaster.Hide()
	unsubscribe()
	toaster.Success("two")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Message)
	assert.True(t, got[0].Open)
	assert.False(t, got[1].Open)
}

func TestToaster_DefaultDuration(t *testing.T) {
	assert.Equal(t, 6*time.Second, application.DefaultToastDuration)
}
