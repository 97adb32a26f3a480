package controller

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
)

func TestUpdateMatchers(t *testing.T) {
	text := &models.Update{Message: &models.Message{Text: "Алгебра"}}
	command := &models.Update{Message: &models.Message{Text: "/week"}}
	document := &models.Update{Message: &models.Message{Document: &models.Document{FileName: "school.ics"}}}
	callback := &models.Update{CallbackQuery: &models.CallbackQuery{Data: "noop"}}

	assert.True(t, isDialogText(text))
	assert.False(t, isDialogText(command))
	assert.False(t, isDialogText(document))
	assert.False(t, isDialogText(callback))

	assert.True(t, isDocument(document))
	assert.False(t, isDocument(text))
	assert.False(t, isDocument(callback))
}
