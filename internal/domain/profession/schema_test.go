package profession

import (
	"strings"
	"testing"

	"github.com/registro/client/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInputNormalized(t *testing.T) {
	t.Run("trims and uppercases the name", func(t *testing.T) {
		input, err := CreateInput{Name: "  ingeniero civil  "}.Normalized()

		require.NoError(t, err)
		assert.Equal(t, "INGENIERO CIVIL", input.Name)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		_, err := CreateInput{Name: "   "}.Normalized()

		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("rejects a name over 100 characters", func(t *testing.T) {
		_, err := CreateInput{Name: strings.Repeat("a", 101)}.Normalized()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceed 100")
	})

	t.Run("accepts a name of exactly 100 characters", func(t *testing.T) {
		input, err := CreateInput{Name: strings.Repeat("a", 100)}.Normalized()

		require.NoError(t, err)
		assert.Len(t, input.Name, 100)
	})
}

func TestUpdateInputNormalized(t *testing.T) {
	t.Run("normalizes a supplied name", func(t *testing.T) {
		name := " medico "
		input, err := UpdateInput{Name: &name}.Normalized()

		require.NoError(t, err)
		require.NotNil(t, input.Name)
		assert.Equal(t, "MEDICO", *input.Name)
	})

	t.Run("passes through an absent name", func(t *testing.T) {
		input, err := UpdateInput{}.Normalized()

		require.NoError(t, err)
		assert.Nil(t, input.Name)
	})

	t.Run("rejects a supplied blank name", func(t *testing.T) {
		name := "  "
		_, err := UpdateInput{Name: &name}.Normalized()

		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})
}
