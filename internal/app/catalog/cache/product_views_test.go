package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/dto"
	"github.com/murkotick/financial-catalog-service/internal/pkg/viewcache"
)

func TestProductViews_LocaleVariants(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewProductViews(viewcache.New[dto.ProductDTO](client, time.Minute))
	ctx := context.Background()

	c.Put(ctx, "p1", "", &dto.ProductDTO{ID: "p1", Name: "Savings"})
	c.Put(ctx, "p1", "es-ES", &dto.ProductDTO{ID: "p1", Name: "Ahorro", Locale: "es-ES"})

	assert.True(t, mr.Exists("product:p1"))
	fields, err := mr.HKeys("product:p1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"_", "es-ES"}, fields)

	got, ok := c.Get(ctx, "p1", "es-ES")
	require.True(t, ok)
	assert.Equal(t, "Ahorro", got.Name)

	c.Invalidate(ctx, "p1")
	_, ok = c.Get(ctx, "p1", "")
	assert.False(t, ok)
}
