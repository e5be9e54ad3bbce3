package bootstrap

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetGinMode(t *testing.T) {
	prev := gin.Mode()
	t.Cleanup(func() { gin.SetMode(prev) })

	cases := []struct {
		env  string
		want string
	}{
		{"production", gin.ReleaseMode},
		{"test", gin.TestMode},
		{"development", gin.DebugMode},
	}
	for _, tc := range cases {
		t.Run(tc.env, func(t *testing.T) {
			gin.SetMode(gin.DebugMode)
			SetGinMode(tc.env)
			assert.Equal(t, tc.want, gin.Mode())
		})
	}
}
