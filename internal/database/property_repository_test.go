package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dykeinvestments/estate-backend/internal/models"
)

// newMockDB wraps a sqlmock connection in the sqlx-backed DB so Get and
// Select behave as in production
func newMockDB(t *testing.T) (DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return &PostgresDB{DB: sqlx.NewDb(mockDB, "sqlmock")}, mock
}

var propertyTestColumns = []string{
	"id", "title", "property_type", "location_district", "location_town",
	"location_village", "distance_from_main_road", "has_water", "has_power",
	"has_internet", "size_acres", "size_sqft", "bedrooms", "bathrooms",
	"asking_price", "description", "owner_name", "owner_phone", "owner_email",
	"status", "submitted_by", "approved_by", "approved_at", "created_at", "updated_at",
}

func addPropertyRow(rows *sqlmock.Rows, id uuid.UUID, title, status string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id.String(), title, "house", "Kampala", "Ntinda",
		nil, nil, true, true,
		false, nil, nil, nil, nil,
		250000000.0, nil, "John Okello", "+256700000001", nil,
		status, nil, nil, nil, now, now,
	)
}

var imageTestColumns = []string{
	"id", "property_id", "image_url", "image_order", "is_primary", "created_at",
}

func validProperty() *models.Property {
	return &models.Property{
		Title:            "3 Bedroom House in Ntinda",
		PropertyType:     models.PropertyTypeHouse,
		LocationDistrict: "Kampala",
		LocationTown:     "Ntinda",
		AskingPrice:      250000000,
		OwnerName:        "John Okello",
		OwnerPhone:       "+256700000001",
	}
}

func TestCreateProperty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepository(db)

	t.Run("Success Forces Pending", func(t *testing.T) {
		p := validProperty()
		// Caller-supplied status and approval fields must be discarded
		p.Status = models.PropertyStatusApproved
		approver := uuid.New()
		p.ApprovedBy = &approver

		mock.ExpectExec(`INSERT INTO properties`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		created, err := repo.Create(p)
		require.NoError(t, err)
		assert.Equal(t, models.PropertyStatusPending, created.Status)
		assert.Nil(t, created.ApprovedBy)
		assert.Nil(t, created.ApprovedAt)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.NotNil(t, created.Images)
		assert.Empty(t, created.Images)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Validation Failure Skips Database", func(t *testing.T) {
		p := validProperty()
		p.Title = "   "

		created, err := repo.Create(p)
		assert.Error(t, err)
		assert.True(t, models.IsValidation(err))
		assert.Nil(t, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Non Positive Price Rejected", func(t *testing.T) {
		p := validProperty()
		p.AskingPrice = 0

		_, err := repo.Create(p)
		assert.True(t, models.IsValidation(err))
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO properties`).
			WillReturnError(fmt.Errorf("database error"))

		created, err := repo.Create(validProperty())
		assert.Error(t, err)
		assert.Nil(t, created)
		assert.Contains(t, err.Error(), "failed to create property")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetApproved(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepository(db)

	t.Run("Two Queries Regardless Of Result Size", func(t *testing.T) {
		first := uuid.New()
		second := uuid.New()

		rows := sqlmock.NewRows(propertyTestColumns)
		addPropertyRow(rows, first, "Newest", "approved")
		addPropertyRow(rows, second, "Older", "approved")
		mock.ExpectQuery(`SELECT (.+) FROM properties WHERE status`).
			WithArgs(models.PropertyStatusApproved).
			WillReturnRows(rows)

		now := time.Now()
		imageRows := sqlmock.NewRows(imageTestColumns).
			AddRow(uuid.New().String(), first.String(), "https://img.example.com/a.jpg", 0, true, now).
			AddRow(uuid.New().String(), first.String(), "https://img.example.com/b.jpg", 1, false, now)
		mock.ExpectQuery(`SELECT (.+) FROM property_images WHERE property_id = ANY`).
			WillReturnRows(imageRows)

		properties, err := repo.GetApproved()
		require.NoError(t, err)
		require.Len(t, properties, 2)

		assert.Equal(t, "Newest", properties[0].Title)
		require.Len(t, properties[0].Images, 2)
		assert.True(t, properties[0].Images[0].IsPrimary)

		// A listing without images still carries an empty, non-nil slice
		assert.NotNil(t, properties[1].Images)
		assert.Empty(t, properties[1].Images)

		// ExpectationsWereMet fails on any extra per-property image query
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Inventory Skips Image Query", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM properties WHERE status`).
			WithArgs(models.PropertyStatusApproved).
			WillReturnRows(sqlmock.NewRows(propertyTestColumns))

		properties, err := repo.GetApproved()
		require.NoError(t, err)
		assert.Empty(t, properties)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetPropertyByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepository(db)

	t.Run("Approved Listing Found", func(t *testing.T) {
		id := uuid.New()

		rows := sqlmock.NewRows(propertyTestColumns)
		addPropertyRow(rows, id, "Lakefront Plot", "approved")
		mock.ExpectQuery(`SELECT (.+) FROM properties WHERE id = \$1 AND status = \$2`).
			WithArgs(id, models.PropertyStatusApproved).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT (.+) FROM property_images WHERE property_id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(imageTestColumns))

		property, err := repo.GetByID(id)
		require.NoError(t, err)
		require.NotNil(t, property)
		assert.Equal(t, "Lakefront Plot", property.Title)
		assert.NotNil(t, property.Images)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Or Not Approved Returns Nil", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM properties WHERE id = \$1 AND status = \$2`).
			WithArgs(id, models.PropertyStatusApproved).
			WillReturnRows(sqlmock.NewRows(propertyTestColumns))

		property, err := repo.GetByID(id)
		assert.NoError(t, err)
		assert.Nil(t, property)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Admin Lookup Ignores Status", func(t *testing.T) {
		id := uuid.New()

		rows := sqlmock.NewRows(propertyTestColumns)
		addPropertyRow(rows, id, "Pending Submission", "pending")
		mock.ExpectQuery(`SELECT (.+) FROM properties WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT (.+) FROM property_images WHERE property_id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(imageTestColumns))

		property, err := repo.GetByIDAdmin(id)
		require.NoError(t, err)
		require.NotNil(t, property)
		assert.Equal(t, models.PropertyStatusPending, property.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdatePropertyStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepository(db)

	t.Run("Approve Records Approver And Timestamp", func(t *testing.T) {
		id := uuid.New()
		approver := uuid.New()

		mock.ExpectQuery(`SELECT status FROM properties WHERE id`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
		mock.ExpectExec(`UPDATE properties SET status = \$1, approved_by = \$2`).
			WithArgs(models.PropertyStatusApproved, approver, sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows := sqlmock.NewRows(propertyTestColumns)
		addPropertyRow(rows, id, "Approved Listing", "approved")
		mock.ExpectQuery(`SELECT (.+) FROM properties WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT (.+) FROM property_images`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(imageTestColumns))

		updated, err := repo.UpdateStatus(id, models.PropertyStatusApproved, &approver)
		require.NoError(t, err)
		assert.Equal(t, models.PropertyStatusApproved, updated.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Approve Without Approver Rejected", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectQuery(`SELECT status FROM properties WHERE id`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))

		updated, err := repo.UpdateStatus(id, models.PropertyStatusApproved, nil)
		assert.True(t, models.IsValidation(err))
		assert.Nil(t, updated)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Illegal Transition Rejected", func(t *testing.T) {
		id := uuid.New()
		approver := uuid.New()

		mock.ExpectQuery(`SELECT status FROM properties WHERE id`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("sold"))

		updated, err := repo.UpdateStatus(id, models.PropertyStatusApproved, &approver)
		assert.True(t, models.IsValidation(err))
		assert.Contains(t, err.Error(), "cannot change property status from sold to approved")
		assert.Nil(t, updated)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Id Is Not Found", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectQuery(`SELECT status FROM properties WHERE id`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"status"}))

		updated, err := repo.UpdateStatus(id, models.PropertyStatusWithdrawn, nil)
		assert.True(t, models.IsNotFound(err))
		assert.Nil(t, updated)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Invalid Status String Skips Database", func(t *testing.T) {
		updated, err := repo.UpdateStatus(uuid.New(), "archived", nil)
		assert.True(t, models.IsValidation(err))
		assert.Nil(t, updated)
	})
}

func TestUpdateProperty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepository(db)

	t.Run("Partial Update Leaves Nil Fields Unchanged", func(t *testing.T) {
		id := uuid.New()
		title := "Updated Title"

		mock.ExpectExec(`UPDATE properties SET title = COALESCE`).
			WithArgs(&title, nil, nil, nil, sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rows := sqlmock.NewRows(propertyTestColumns)
		addPropertyRow(rows, id, "Updated Title", "approved")
		mock.ExpectQuery(`SELECT (.+) FROM properties WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT (.+) FROM property_images`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(imageTestColumns))

		updated, err := repo.Update(id, PropertyUpdate{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Updated Title", updated.Title)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Invalid Type Rejected Before Query", func(t *testing.T) {
		badType := "castle"
		updated, err := repo.Update(uuid.New(), PropertyUpdate{PropertyType: &badType})
		assert.True(t, models.IsValidation(err))
		assert.Nil(t, updated)
	})

	t.Run("Unknown Id Is Not Found", func(t *testing.T) {
		id := uuid.New()
		title := "Anything"

		mock.ExpectExec(`UPDATE properties SET title = COALESCE`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := repo.Update(id, PropertyUpdate{Title: &title})
		assert.True(t, models.IsNotFound(err))
		assert.Nil(t, updated)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteProperty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepository(db)

	t.Run("Images Deleted Before Property Row", func(t *testing.T) {
		id := uuid.New()

		// Expectations are ordered: the image delete must come first
		mock.ExpectExec(`DELETE FROM property_images WHERE property_id`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM properties WHERE id`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(id)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Id Is Not Found", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectExec(`DELETE FROM property_images WHERE property_id`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM properties WHERE id`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(id)
		assert.True(t, models.IsNotFound(err))

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSavePropertyImages(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepository(db)

	t.Run("First Image Is Primary", func(t *testing.T) {
		propertyID := uuid.New()
		urls := []string{"https://img.example.com/a.jpg", "https://img.example.com/b.jpg"}

		mock.ExpectExec(`INSERT INTO property_images`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO property_images`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		images, err := repo.SaveImages(propertyID, urls)
		require.NoError(t, err)
		require.Len(t, images, 2)
		assert.True(t, images[0].IsPrimary)
		assert.Equal(t, 0, images[0].ImageOrder)
		assert.False(t, images[1].IsPrimary)
		assert.Equal(t, 1, images[1].ImageOrder)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Images Is A No-Op", func(t *testing.T) {
		images, err := repo.SaveImages(uuid.New(), nil)
		assert.NoError(t, err)
		assert.Empty(t, images)
	})
}

func TestGetPropertyStats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepository(db)

	avg := 185000000.0
	rows := sqlmock.NewRows([]string{
		"total_properties", "pending_properties", "approved_properties",
		"sold_properties", "average_price", "recent_properties",
	}).AddRow(12, 3, 7, 2, avg, 5)
	mock.ExpectQuery(`SELECT (.+) FROM properties`).WillReturnRows(rows)

	stats, err := repo.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalProperties)
	assert.Equal(t, 7, stats.ApprovedProperties)
	require.NotNil(t, stats.AveragePrice)
	assert.Equal(t, avg, *stats.AveragePrice)

	assert.NoError(t, mock.ExpectationsWereMet())
}
