package dbtest

import (
	"islands/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_IsolatedPerTest(t *testing.T) {
	for _, name := range []string{"first", "second"} {
		t.Run(name, func(t *testing.T) {
			gdb := Open(t)
			require.NoError(t, gdb.Create(&domain.User{FirstName: "A", LastName: "B", Email: "a@b.c", Password: "x"}).Error)

			var count int64
			require.NoError(t, gdb.Model(&domain.User{}).Count(&count).Error)
			assert.Equal(t, int64(1), count)
		})
	}
}
