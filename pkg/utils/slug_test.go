package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "notification-logs", Slugify("Notification Logs"))
	assert.Equal(t, "users", Slugify("  Users!! "))
}
