//go:build unit

package entities_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/updaterisk/internal/domain/entities"
)

func TestClassifyBreakingChange(t *testing.T) {
	t.Parallel()

	t.Run("should return unknown with zero confidence for empty text", func(t *testing.T) {
		// when
		verdict := entities.ClassifyBreakingChange("")

		// then
		assert.Equal(t, entities.BreakingUnknown, verdict.Classification)
		assert.Zero(t, verdict.Confidence)
		assert.Empty(t, verdict.Signals.Strong)
		assert.False(t, verdict.Signals.Negated)
	})

	t.Run("should return unknown with zero confidence for whitespace-only text", func(t *testing.T) {
		// when
		verdict := entities.ClassifyBreakingChange("   \n\t  ")

		// then
		assert.Equal(t, entities.BreakingUnknown, verdict.Classification)
		assert.Zero(t, verdict.Confidence)
	})

	t.Run("should confirm an explicit breaking change header", func(t *testing.T) {
		// given
		text := "BREAKING CHANGE: removed the legacy client API"

		// when
		verdict := entities.ClassifyBreakingChange(text)

		// then
		assert.Equal(t, entities.BreakingConfirmed, verdict.Classification)
		assert.InDelta(t, 0.9, verdict.Confidence, 0.001)
		assert.NotEmpty(t, verdict.Signals.Strong)
		assert.False(t, verdict.Signals.Negated)
	})

	t.Run("should classify a lone medium signal as likely", func(t *testing.T) {
		// given
		text := "This release requires migration of your configuration files"

		// when
		verdict := entities.ClassifyBreakingChange(text)

		// then
		assert.Equal(t, entities.BreakingLikely, verdict.Classification)
		assert.InDelta(t, 0.6, verdict.Confidence, 0.001)
		assert.Empty(t, verdict.Signals.Strong)
		assert.NotEmpty(t, verdict.Signals.Medium)
	})

	t.Run("should classify a lone weak signal as possible", func(t *testing.T) {
		// given
		text := "This update breaks older Node versions"

		// when
		verdict := entities.ClassifyBreakingChange(text)

		// then
		assert.Equal(t, entities.BreakingPossible, verdict.Classification)
		assert.InDelta(t, 0.3, verdict.Confidence, 0.001)
		assert.NotEmpty(t, verdict.Signals.Weak)
	})

	t.Run("should suppress signals negated nearby and mark the verdict negated", func(t *testing.T) {
		// given
		text := "No breaking changes in this release"

		// when
		verdict := entities.ClassifyBreakingChange(text)

		// then
		assert.Equal(t, entities.BreakingUnknown, verdict.Classification)
		assert.InDelta(t, 0.1, verdict.Confidence, 0.001)
		assert.Empty(t, verdict.Signals.Strong)
		assert.Empty(t, verdict.Signals.Medium)
		assert.Empty(t, verdict.Signals.Weak)
		assert.True(t, verdict.Signals.Negated)
	})

	t.Run("should keep signals outside the negation window", func(t *testing.T) {
		// given
		text := "not breaking at all. " + strings.Repeat("filler ", 10) +
			"BREAKING CHANGE: removed the old exports"

		// when
		verdict := entities.ClassifyBreakingChange(text)

		// then
		assert.Equal(t, entities.BreakingConfirmed, verdict.Classification)
		assert.NotEmpty(t, verdict.Signals.Strong)
		assert.False(t, verdict.Signals.Negated)
	})

	t.Run("should not double-count a weak match inside a stronger one", func(t *testing.T) {
		// given
		text := "BREAKING CHANGE: removed the legacy client API"

		// when
		verdict := entities.ClassifyBreakingChange(text)

		// then
		assert.Empty(t, verdict.Signals.Weak)
	})

	t.Run("should count a standalone weak match alongside a distant strong one", func(t *testing.T) {
		// given
		text := "BREAKING CHANGE: removed the old exports. " + strings.Repeat("filler ", 10) +
			"This also breaks the plugin interface."

		// when
		verdict := entities.ClassifyBreakingChange(text)

		// then
		assert.Equal(t, entities.BreakingConfirmed, verdict.Classification)
		assert.NotEmpty(t, verdict.Signals.Weak)
		assert.GreaterOrEqual(t, verdict.Confidence, 0.9)
	})

	t.Run("should cap confidence at one", func(t *testing.T) {
		// given
		verdict := entities.ClassifyBreakingChange(
			"BREAKING CHANGE: removed API. " + strings.Repeat("filler ", 10) +
				"This breaks existing integrations.",
		)

		// then
		assert.LessOrEqual(t, verdict.Confidence, 1.0)
	})

	t.Run("should keep snippets valid UTF-8 around multi-byte text", func(t *testing.T) {
		// given
		text := "⚠️ BREAKING " + strings.Repeat("é", 40)

		// when
		verdict := entities.ClassifyBreakingChange(text)

		// then
		assert.Equal(t, entities.BreakingConfirmed, verdict.Classification)
		for _, snippet := range verdict.Signals.Strong {
			assert.True(t, utf8.ValidString(snippet))
		}
		for _, snippet := range verdict.Signals.Medium {
			assert.True(t, utf8.ValidString(snippet))
		}
		for _, snippet := range verdict.Signals.Weak {
			assert.True(t, utf8.ValidString(snippet))
		}
	})

	t.Run("should be deterministic for the same text", func(t *testing.T) {
		// given
		text := "BREAKING CHANGES\nDropped support for Node 14. Migration required."

		// when
		first := entities.ClassifyBreakingChange(text)
		second := entities.ClassifyBreakingChange(text)

		// then
		assert.Equal(t, first, second)
	})
}
