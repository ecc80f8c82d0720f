package validators

import (
	"testing"

	"campy/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title    string   `json:"title" label:"Title" validate:"required,min=5,max=10"`
	Email    string   `json:"email" label:"Email" validate:"omitempty,email"`
	Duration int      `json:"duration" label:"Duration" validate:"min=1"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Level    string   `json:"level" label:"Level" validate:"omitempty,oneof=Beginner Advanced"`
}

func validSample() sample {
	price := 1.0
	return sample{Title: "Hello", Duration: 1, Price: &price}
}

func messageFor(t *testing.T, s sample) string {
	t.Helper()
	err := Struct(&s)
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
	return appErr.Message
}

func TestStructMessages(t *testing.T) {
	assert.NoError(t, Struct(ptr(validSample())))

	s := validSample()
	s.Title = ""
	assert.Equal(t, "Title is required", messageFor(t, s))

	s = validSample()
	s.Title = "Hi"
	assert.Equal(t, "Title must be at least 5 characters", messageFor(t, s))

	s = validSample()
	s.Title = "Far too long a title"
	assert.Equal(t, "Title must be at most 10 characters", messageFor(t, s))

	s = validSample()
	s.Email = "nope"
	assert.Equal(t, "Please provide a valid email", messageFor(t, s))

	s = validSample()
	s.Duration = 0
	assert.Equal(t, "Duration must be at least 1", messageFor(t, s))

	s = validSample()
	s.Price = nil
	assert.Equal(t, "price is required", messageFor(t, s))

	s = validSample()
	s.Level = "Expert"
	assert.Equal(t, "Level must be one of: Beginner, Advanced", messageFor(t, s))
}

func TestTrim(t *testing.T) {
	a, b := "  x ", "y  "
	Trim(&a, nil, &b)
	assert.Equal(t, "x", a)
	assert.Equal(t, "y", b)
}

func ptr(s sample) *sample { return &s }
