package seeders

import (
	"bytes"
	"context"
	"testing"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAllIsIdempotent(t *testing.T) {
	require.NoError(t, config.Load())
	config.Set("SEED_ADMIN_EMAIL", "root@shop.test")
	config.Set("SEED_ADMIN_PASSWORD", "rootpass")

	db := testkit.DB(t, &models.User{}, &models.Product{})
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, RunAll(ctx, db, &out))
	require.NoError(t, RunAll(ctx, db, &out))
	assert.Contains(t, out.String(), "Running seeder: admin")

	var admin models.User
	require.NoError(t, db.Where("email = ?", "root@shop.test").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, auth.CheckPassword(admin.Password, "rootpass"))

	var products int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	assert.Equal(t, int64(len(sampleProducts)), products)
}

func TestSeedAdminPromotesExistingUser(t *testing.T) {
	require.NoError(t, config.Load())
	config.Set("SEED_ADMIN_EMAIL", "owner@shop.test")

	db := testkit.DB(t, &models.User{})
	require.NoError(t, db.Create(&models.User{FirstName: "O", LastName: "W", Email: "owner@shop.test", Address: "x", Password: "h", Role: models.RoleClient}).Error)

	require.NoError(t, SeedAdmin(context.Background(), db))

	var u models.User
	require.NoError(t, db.Where("email = ?", "owner@shop.test").First(&u).Error)
	assert.Equal(t, models.RoleAdmin, u.Role)
}
