package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dykeinvestments/estate-backend/internal/database"
	"github.com/dykeinvestments/estate-backend/internal/models"
	"github.com/dykeinvestments/estate-backend/internal/services"
	"github.com/dykeinvestments/estate-backend/pkg/notify"
)

// stubPropertyStore is an in-memory services.PropertyStore for handler tests
type stubPropertyStore struct {
	byID     map[uuid.UUID]*models.Property
	approved []*models.Property
}

func (s *stubPropertyStore) Create(p *models.Property) (*models.Property, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.ID = uuid.New()
	p.Status = models.PropertyStatusPending
	p.Images = []models.PropertyImage{}
	return p, nil
}

func (s *stubPropertyStore) GetApproved() ([]*models.Property, error) { return s.approved, nil }
func (s *stubPropertyStore) GetAll() ([]*models.Property, error)      { return s.approved, nil }

func (s *stubPropertyStore) GetByID(id uuid.UUID) (*models.Property, error) {
	return s.byID[id], nil
}

func (s *stubPropertyStore) GetByIDAdmin(id uuid.UUID) (*models.Property, error) {
	return s.byID[id], nil
}

func (s *stubPropertyStore) UpdateStatus(id uuid.UUID, newStatus string, approvedBy *uuid.UUID) (*models.Property, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, models.ErrNotFound("property", id.String())
	}
	if !models.CanTransitionStatus(p.Status, newStatus) {
		return nil, models.ErrInvalidInput("cannot change property status from " + p.Status + " to " + newStatus)
	}
	p.Status = newStatus
	return p, nil
}

func (s *stubPropertyStore) Update(id uuid.UUID, updates database.PropertyUpdate) (*models.Property, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, models.ErrNotFound("property", id.String())
	}
	return p, nil
}

func (s *stubPropertyStore) Delete(id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return models.ErrNotFound("property", id.String())
	}
	delete(s.byID, id)
	return nil
}

func (s *stubPropertyStore) SaveImages(propertyID uuid.UUID, imageURLs []string) ([]models.PropertyImage, error) {
	return nil, nil
}

func (s *stubPropertyStore) GetStats() (*models.PropertyStats, error) {
	return &models.PropertyStats{}, nil
}

// stubEmailLogs satisfies services.EmailLogStore
type stubEmailLogs struct{}

func (s *stubEmailLogs) Record(recipient, subject, emailType, status string, relatedID *uuid.UUID) (*models.EmailLog, error) {
	return &models.EmailLog{}, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newPropertyTestRouter(store *stubPropertyStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	service := services.NewPropertyService(store, nil, notify.NewDevNotifier(), &stubEmailLogs{}, "admin@example.com", quietLogger())
	handler := NewPropertyHandler(service, quietLogger())

	router := gin.New()
	router.POST("/api/v1/properties", handler.Submit)
	router.GET("/api/v1/properties", handler.List)
	router.GET("/api/v1/properties/:id", handler.Get)
	return router
}

func approvedProperty(title, district string) *models.Property {
	return &models.Property{
		ID:               uuid.New(),
		Title:            title,
		PropertyType:     models.PropertyTypeHouse,
		LocationDistrict: district,
		LocationTown:     "Ntinda",
		AskingPrice:      250000000,
		OwnerName:        "John Okello",
		OwnerPhone:       "+256700000001",
		Status:           models.PropertyStatusApproved,
		Images:           []models.PropertyImage{},
	}
}

func TestPropertyHandlerSubmit(t *testing.T) {
	t.Run("Valid Submission Returns 201", func(t *testing.T) {
		router := newPropertyTestRouter(&stubPropertyStore{})

		body, err := json.Marshal(gin.H{
			"title":             "3 Bedroom House in Ntinda",
			"property_type":     "house",
			"location_district": "Kampala",
			"location_town":     "Ntinda",
			"asking_price":      250000000,
			"owner_name":        "John Okello",
			"owner_phone":       "+256700000001",
		})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/v1/properties", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Status   string `json:"status"`
			Property struct {
				Status string `json:"status"`
			} `json:"property"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, "pending", resp.Property.Status)
	})

	t.Run("Missing Required Field Returns 400", func(t *testing.T) {
		router := newPropertyTestRouter(&stubPropertyStore{})

		body, _ := json.Marshal(gin.H{
			"property_type":     "house",
			"location_district": "Kampala",
		})

		req := httptest.NewRequest("POST", "/api/v1/properties", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "title is required")
	})

	t.Run("Malformed JSON Returns 400", func(t *testing.T) {
		router := newPropertyTestRouter(&stubPropertyStore{})

		req := httptest.NewRequest("POST", "/api/v1/properties", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPropertyHandlerList(t *testing.T) {
	store := &stubPropertyStore{approved: []*models.Property{
		approvedProperty("Kampala House", "Kampala"),
		approvedProperty("Wakiso Plot", "Wakiso"),
	}}

	t.Run("No Filters Returns Everything", func(t *testing.T) {
		router := newPropertyTestRouter(store)

		req := httptest.NewRequest("GET", "/api/v1/properties", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("District Filter Applied", func(t *testing.T) {
		router := newPropertyTestRouter(store)

		req := httptest.NewRequest("GET", "/api/v1/properties?district=Wakiso", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)
	})
}

func TestPropertyHandlerGet(t *testing.T) {
	property := approvedProperty("Lakefront Plot", "Wakiso")
	store := &stubPropertyStore{byID: map[uuid.UUID]*models.Property{property.ID: property}}

	t.Run("Found", func(t *testing.T) {
		router := newPropertyTestRouter(store)

		req := httptest.NewRequest("GET", "/api/v1/properties/"+property.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Lakefront Plot")
	})

	t.Run("Unknown Id Returns 404", func(t *testing.T) {
		router := newPropertyTestRouter(store)

		req := httptest.NewRequest("GET", "/api/v1/properties/"+uuid.New().String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Invalid Id Returns 400", func(t *testing.T) {
		router := newPropertyTestRouter(store)

		req := httptest.NewRequest("GET", "/api/v1/properties/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
