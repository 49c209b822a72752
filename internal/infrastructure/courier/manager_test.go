package courier

import (
	"errors"
	"net/http"
	"testing"
	"time"

	infracache "storekit-backend/internal/infrastructure/cache"
	"storekit-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager(t *testing.T) {
	m := NewManager(
		NewShiprocket(ShiprocketConfig{}, infracache.NewMemoryCache(time.Minute, time.Minute)),
		NewDelhivery(DelhiveryConfig{APIToken: "tok", BaseURL: "http://delhivery.test"}),
	)

	p, err := m.Get("delhivery")
	require.NoError(t, err)
	assert.Equal(t, "delhivery", p.Name())

	_, err = m.Get("fedex")
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)

	providers := m.Providers()
	require.Len(t, providers, 2)
	assert.Equal(t, "delhivery", providers[0].Name())
	assert.True(t, providers[0].IsConfigured())
	assert.Equal(t, "shiprocket", providers[1].Name())
	assert.False(t, providers[1].IsConfigured())
}
