package integration

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewUserRepository(testDB.Pool, "owner-open-id", logger)

	ctx := context.Background()

	t.Run("Upsert creates user with default role", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		name := "Dana Whitfield"
		err := repo.Upsert(ctx, model.UserUpsert{OpenID: "ext-123", Name: &name})
		require.NoError(t, err)

		user, err := repo.GetByOpenID(ctx, "ext-123")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, model.RoleUser, user.Role)
		require.NotNil(t, user.Name)
		assert.Equal(t, "Dana Whitfield", *user.Name)
	})

	t.Run("Upsert is idempotent and leaves nil fields untouched", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		name := "Dana Whitfield"
		email := "dana@example.com"
		require.NoError(t, repo.Upsert(ctx, model.UserUpsert{OpenID: "ext-123", Name: &name, Email: &email}))

		first, err := repo.GetByOpenID(ctx, "ext-123")
		require.NoError(t, err)
		require.NotNil(t, first)

		// Second upsert without name or email must not clear them.
		require.NoError(t, repo.Upsert(ctx, model.UserUpsert{OpenID: "ext-123"}))

		second, err := repo.GetByOpenID(ctx, "ext-123")
		require.NoError(t, err)
		require.NotNil(t, second)
		assert.Equal(t, first.ID, second.ID)
		require.NotNil(t, second.Name)
		assert.Equal(t, "Dana Whitfield", *second.Name)
		require.NotNil(t, second.Email)
		assert.Equal(t, "dana@example.com", *second.Email)
	})

	t.Run("Upsert refreshes last signed in", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		past := time.Now().Add(-24 * time.Hour)
		require.NoError(t, repo.Upsert(ctx, model.UserUpsert{OpenID: "ext-123", LastSignedIn: &past}))

		before, err := repo.GetByOpenID(ctx, "ext-123")
		require.NoError(t, err)

		require.NoError(t, repo.Upsert(ctx, model.UserUpsert{OpenID: "ext-123"}))

		after, err := repo.GetByOpenID(ctx, "ext-123")
		require.NoError(t, err)
		assert.True(t, after.LastSignedIn.After(before.LastSignedIn))
	})

	t.Run("Owner identity is promoted to admin", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		require.NoError(t, repo.Upsert(ctx, model.UserUpsert{OpenID: "owner-open-id"}))

		user, err := repo.GetByOpenID(ctx, "owner-open-id")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, model.RoleAdmin, user.Role)
	})

	t.Run("Owner promotion also applies on the update path", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		// Pre-existing row with the plain role, as if created before the
		// owner id was configured.
		SeedUser(t, testDB.Pool, "owner-open-id", model.RoleUser)

		require.NoError(t, repo.Upsert(ctx, model.UserUpsert{OpenID: "owner-open-id"}))

		user, err := repo.GetByOpenID(ctx, "owner-open-id")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, model.RoleAdmin, user.Role)
	})

	t.Run("Explicit role wins over owner promotion", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		role := model.RoleUser
		require.NoError(t, repo.Upsert(ctx, model.UserUpsert{OpenID: "owner-open-id", Role: &role}))

		user, err := repo.GetByOpenID(ctx, "owner-open-id")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, model.RoleUser, user.Role)
	})

	t.Run("Empty open id is rejected", func(t *testing.T) {
		err := repo.Upsert(ctx, model.UserUpsert{})
		require.Error(t, err)
	})

	t.Run("GetByOpenID returns nil for unknown identity", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		user, err := repo.GetByOpenID(ctx, "ext-999")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("GetAll returns seeded products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		products, err := repo.GetAll(ctx, "")
		require.NoError(t, err)
		assert.Len(t, products, 4)
	})

	t.Run("GetAll filters by category", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		products, err := repo.GetAll(ctx, "kitchen")
		require.NoError(t, err)
		assert.Len(t, products, 2)
		for _, p := range products {
			assert.Equal(t, "kitchen", p.Category)
		}
	})

	t.Run("GetByID returns nil for non-existent product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		product, err := repo.GetByID(ctx, 99999)
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("Create and partial update", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		created, err := repo.Create(ctx, &model.Product{
			Name:     "Cork Yoga Mat",
			Price:    decimal.RequireFromString("64.00"),
			Category: "fitness",
			Stock:    40,
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Positive(t, created.ID)

		newPrice := decimal.RequireFromString("59.00")
		updated, err := repo.Update(ctx, created.ID, model.ProductUpdate{Price: &newPrice})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.True(t, updated.Price.Equal(newPrice))
		// Untouched fields survive the partial update.
		assert.Equal(t, "Cork Yoga Mat", updated.Name)
		assert.Equal(t, 40, updated.Stock)
	})

	t.Run("Update returns nil for non-existent product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		name := "Renamed"
		updated, err := repo.Update(ctx, 99999, model.ProductUpdate{Name: &name})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("Delete and Count", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)

		require.NoError(t, repo.Delete(ctx, ids[0]))

		count, err = repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)

		// Deleting a missing id is not an error.
		require.NoError(t, repo.Delete(ctx, ids[0]))
	})
}

func TestCartRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewCartRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("AddItem merges quantities for the same product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID := SeedUser(t, testDB.Pool, "ext-123", model.RoleUser)
		ids := SeedProducts(t, testDB.Pool)

		first, err := repo.AddItem(ctx, userID, ids[0], 2)
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.Equal(t, 2, first.Quantity)

		second, err := repo.AddItem(ctx, userID, ids[0], 3)
		require.NoError(t, err)
		require.NotNil(t, second)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 5, second.Quantity)

		items, err := repo.GetByUser(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("Carts are isolated per user", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		alice := SeedUser(t, testDB.Pool, "ext-alice", model.RoleUser)
		bob := SeedUser(t, testDB.Pool, "ext-bob", model.RoleUser)
		ids := SeedProducts(t, testDB.Pool)

		_, err := repo.AddItem(ctx, alice, ids[0], 1)
		require.NoError(t, err)

		items, err := repo.GetByUser(ctx, bob)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("UpdateQuantity sets the exact value", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID := SeedUser(t, testDB.Pool, "ext-123", model.RoleUser)
		ids := SeedProducts(t, testDB.Pool)

		item, err := repo.AddItem(ctx, userID, ids[0], 2)
		require.NoError(t, err)

		updated, err := repo.UpdateQuantity(ctx, item.ID, 7)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, 7, updated.Quantity)
	})

	t.Run("UpdateQuantity returns nil for missing row", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		updated, err := repo.UpdateQuantity(ctx, 99999, 2)
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("Remove and Clear", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID := SeedUser(t, testDB.Pool, "ext-123", model.RoleUser)
		ids := SeedProducts(t, testDB.Pool)

		item, err := repo.AddItem(ctx, userID, ids[0], 1)
		require.NoError(t, err)
		_, err = repo.AddItem(ctx, userID, ids[1], 1)
		require.NoError(t, err)

		require.NoError(t, repo.Remove(ctx, item.ID))

		items, err := repo.GetByUser(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, items, 1)

		require.NoError(t, repo.Clear(ctx, userID))

		items, err = repo.GetByUser(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	cartRepo := repository.NewCartRepository(testDB.Pool, logger)
	productRepo := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	newOrder := func(userID int64, total string) *model.Order {
		return &model.Order{
			UserID:          userID,
			TotalAmount:     decimal.RequireFromString(total),
			Status:          model.OrderStatusPending,
			PaymentMethod:   model.PaymentMethodCard,
			CustomerName:    "Dana Whitfield",
			CustomerEmail:   "dana@example.com",
			CustomerPhone:   "+61 400 000 000",
			ShippingAddress: "12 Harbour St",
		}
	}

	t.Run("Checkout transaction persists order, items and clears cart", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID := SeedUser(t, testDB.Pool, "ext-123", model.RoleUser)
		ids := SeedProducts(t, testDB.Pool)

		_, err := cartRepo.AddItem(ctx, userID, ids[0], 2)
		require.NoError(t, err)

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)

		order := newOrder(userID, "49.48")
		require.NoError(t, orderRepo.CreateOrder(ctx, tx, order))
		assert.Positive(t, order.ID)

		items := []model.OrderItem{
			{OrderID: order.ID, ProductID: ids[0], ProductName: "Stoneware Mug", Quantity: 2, Price: decimal.RequireFromString("14.99")},
			{OrderID: order.ID, ProductID: ids[1], ProductName: "Glass Water Carafe", Quantity: 1, Price: decimal.RequireFromString("15.00")},
		}
		require.NoError(t, orderRepo.CreateOrderItems(ctx, tx, items))
		require.NoError(t, cartRepo.ClearTx(ctx, tx, userID))
		require.NoError(t, tx.Commit(ctx))

		stored, err := orderRepo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "49.48", stored.TotalAmount.StringFixed(2))

		storedItems, err := orderRepo.GetItems(ctx, order.ID)
		require.NoError(t, err)
		assert.Len(t, storedItems, 2)

		cartItems, err := cartRepo.GetByUser(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, cartItems)
	})

	t.Run("Line item snapshots survive product edits", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID := SeedUser(t, testDB.Pool, "ext-123", model.RoleUser)
		ids := SeedProducts(t, testDB.Pool)

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)

		order := newOrder(userID, "16.49")
		require.NoError(t, orderRepo.CreateOrder(ctx, tx, order))
		require.NoError(t, orderRepo.CreateOrderItems(ctx, tx, []model.OrderItem{
			{OrderID: order.ID, ProductID: ids[0], ProductName: "Stoneware Mug", Quantity: 1, Price: decimal.RequireFromString("14.99")},
		}))
		require.NoError(t, tx.Commit(ctx))

		// Reprice and rename the product after the order was placed.
		newName := "Stoneware Mug (v2)"
		newPrice := decimal.RequireFromString("19.99")
		_, err = productRepo.Update(ctx, ids[0], model.ProductUpdate{Name: &newName, Price: &newPrice})
		require.NoError(t, err)

		items, err := orderRepo.GetItems(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Stoneware Mug", items[0].ProductName)
		assert.Equal(t, "14.99", items[0].Price.StringFixed(2))
	})

	t.Run("GetByUser returns newest first", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID := SeedUser(t, testDB.Pool, "ext-123", model.RoleUser)

		var lastID int64
		for i := 0; i < 3; i++ {
			tx, err := orderRepo.BeginTx(ctx)
			require.NoError(t, err)
			order := newOrder(userID, "11.06")
			require.NoError(t, orderRepo.CreateOrder(ctx, tx, order))
			require.NoError(t, tx.Commit(ctx))
			lastID = order.ID
			time.Sleep(10 * time.Millisecond)
		}

		orders, err := orderRepo.GetByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, lastID, orders[0].ID)
	})

	t.Run("Transaction rollback leaves no partial state", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID := SeedUser(t, testDB.Pool, "ext-123", model.RoleUser)

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)

		order := newOrder(userID, "11.06")
		require.NoError(t, orderRepo.CreateOrder(ctx, tx, order))
		require.NoError(t, tx.Rollback(ctx))

		stored, err := orderRepo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		userID := SeedUser(t, testDB.Pool, "ext-123", model.RoleUser)

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)
		order := newOrder(userID, "11.06")
		require.NoError(t, orderRepo.CreateOrder(ctx, tx, order))
		require.NoError(t, tx.Commit(ctx))

		updated, err := orderRepo.UpdateStatus(ctx, order.ID, model.OrderStatusShipped)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, model.OrderStatusShipped, updated.Status)

		missing, err := orderRepo.UpdateStatus(ctx, 99999, model.OrderStatusShipped)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}
