package validation

import (
	"strings"
	"testing"

	"sqldojo/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePromptLength(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidatePrompt(""))
	assert.Empty(t, v.ValidatePrompt(strings.Repeat("a", MaxPromptLength)))

	errs := v.ValidatePrompt(strings.Repeat("a", MaxPromptLength+1))
	require.Len(t, errs, 1)
	assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)
	assert.Equal(t, "prompt", errs[0].Field)
}

func TestValidateCheckAnswerRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateCheckAnswerRequest(1, "SELECT 1", ""))

	errs := v.ValidateCheckAnswerRequest(0, "   ", "")
	require.Len(t, errs, 2)
	assert.Equal(t, "context.problem_id", errs[0].Field)
	assert.Equal(t, "context.user_sql", errs[1].Field)
}
